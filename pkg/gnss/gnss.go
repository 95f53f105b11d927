// Package gnss contains common constants and type definitions.
package gnss

import "fmt"

// System is a satellite system.
type System int

// Available satellite systems.
const (
	SysGPS System = iota + 1
	SysGLO
	SysGAL
	SysQZSS
	SysBDS
	SysNavIC
	SysSBAS
	SysMIXED
)

func (sys System) String() string {
	return [...]string{"", "GPS", "GLO", "GAL", "QZSS", "BDS", "NavIC", "SBAS", "MIXED"}[sys]
}

// Abbr returns the system's one-letter abbreviation used in RINEX and in
// trace output.
func (sys System) Abbr() string {
	return [...]string{"", "G", "R", "E", "J", "C", "I", "S", "M"}[sys]
}

// SystemFromSSRID maps the 4-bit GNSS ID carried in CSSR and HAS mask
// messages to a satellite system. Undefined IDs are an error.
func SystemFromSSRID(id uint64) (System, error) {
	switch id {
	case 0:
		return SysGPS, nil
	case 1:
		return SysGLO, nil
	case 2:
		return SysGAL, nil
	case 3:
		return SysBDS, nil
	case 4:
		return SysQZSS, nil
	case 5:
		return SysSBAS, nil
	}
	return 0, fmt.Errorf("gnss: undefined GNSS ID %d", id)
}

// A PRN identifies one satellite within a system, e.g. G02 or R17.
type PRN struct {
	Sys System
	Num int
}

func (prn PRN) String() string {
	return fmt.Sprintf("%s%02d", prn.Sys.Abbr(), prn.Num)
}

// Signal-mask index to signal name, per system. The tables follow the
// IS-QZSS-L6 signal mask assignment; empty strings are reserved slots.
var signalNames = map[System][]string{
	SysGPS: {"L1 C/A", "L1 P", "L1 Z-tracking", "L1C(D)", "L1C(P)",
		"L1C(D+P)", "L2 CM", "L2 CL", "L2 CM+CL", "L2 P", "L2 Z-tracking",
		"L5 I", "L5 Q", "L5 I+Q", "", ""},
	SysGLO: {"G1 C/A", "G1 P", "G2 C/A", "G2 P", "G1a(D)", "G1a(P)",
		"G1a(D+P)", "G2a(D)", "G2a(P)", "G2a(D+P)", "G3 I", "G3 Q",
		"G3 I+Q", "", "", ""},
	SysGAL: {"E1 B", "E1 C", "E1 B+C", "E5a I", "E5a Q", "E5a I+Q",
		"E5b I", "E5b Q", "E5b I+Q", "E5 I", "E5 Q", "E5 I+Q",
		"E6 B", "E6 C", "E6 B+C", ""},
	SysBDS: {"B1 I", "B1 Q", "B1 I+Q", "B3 I", "B3 Q", "B3 I+Q",
		"B2 I", "B2 Q", "B2 I+Q", "", "", "", "", "", "", ""},
	SysQZSS: {"L1 C/A", "L1 L1C(D)", "L1 L1C(P)", "L1 L1C(D+P)",
		"L2 L2C(M)", "L2 L2C(L)", "L2 L2C(M+L)", "L5 I", "L5 Q",
		"L5 I+Q", "", "", "", "", "", ""},
	SysSBAS: {"L1 C/A", "L5 I", "L5 Q", "L5 I+Q", "", "", "", "", "", "",
		"", "", "", "", "", ""},
}

// SignalName returns the signal name for a signal-mask bit position.
// Reserved positions yield an empty name. Systems without a signal mask
// assignment are an error.
func SignalName(sys System, maskIndex int) (string, error) {
	names, ok := signalNames[sys]
	if !ok {
		return "", fmt.Errorf("gnss: no signal assignment for system %v", sys)
	}
	if maskIndex < 0 || maskIndex >= len(names) {
		return "", fmt.Errorf("gnss: signal mask index %d out of range for %v", maskIndex, sys)
	}
	return names[maskIndex], nil
}
