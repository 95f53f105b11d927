// Package eph decodes RTCM3 broadcast ephemeris messages for GPS, GLONASS,
// Galileo, QZSS, BeiDou and NavIC.
package eph

import (
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
	"github.com/go-playground/validator/v10"
)

// NavType selects the Galileo navigation message layout.
type NavType int

// Galileo navigation message types.
const (
	NavNone NavType = iota
	NavFNAV         // message type 1045
	NavINAV         // message type 1046
)

func (nt NavType) String() string {
	return [...]string{"", "F/NAV", "I/NAV"}[nt]
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Eph is the interface that wraps some methods for all types of ephemeris.
type Eph interface {
	// Validate checks the decoded ephemeris.
	Validate() error

	// Returns the ephemeris' PRN.
	GetPRN() gnss.PRN

	// Unhealthy reports whether the satellite flags itself as unusable.
	Unhealthy() bool
}

// EphGPS describes a GPS ephemeris (message type 1019).
type EphGPS struct {
	PRN  gnss.PRN
	Week int `validate:"gte=0,lte=1023"`
	URA  int `validate:"gte=0,lte=15"`

	// CodeL2 is the L2 channel code: 1 = P, 2 = C/A, 3 = C.
	CodeL2 uint8

	IDOT float64 // rate of change of inclination angle [rad/s]
	IODE int
	Toc  float64 // clock data reference time [s of week]

	// Clock polynomial
	Af2 float64 // [s/s^2]
	Af1 float64 // [s/s]
	Af0 float64 // [s]

	IODC int

	Crs      float64 // [m]
	DeltaN   float64 // [rad/s]
	M0       float64 // mean anomaly at reference time [rad]
	Cuc      float64 // [rad]
	Ecc      float64 `validate:"gte=0,lt=1"` // eccentricity
	Cus      float64 // [rad]
	SqrtA    float64 `validate:"gte=0"` // [sqrt(m)]
	Toe      float64 // ephemeris reference time [s of week]
	Cic      float64 // [rad]
	Omega0   float64 // [rad]
	Cis      float64 // [rad]
	I0       float64 // [rad]
	Crc      float64 // [m]
	Omega    float64 // argument of perigee [rad]
	OmegaDot float64 // [rad/s]

	TGD         float64 // group delay [s]
	Health      uint8   // DF102 SV health, 6 bit
	L2PFlag     bool
	FitInterval bool
}

func (e *EphGPS) GetPRN() gnss.PRN { return e.PRN }
func (e *EphGPS) Validate() error  { return validate.Struct(e) }
func (e *EphGPS) Unhealthy() bool  { return e.Health != 0 }

// EphGLO describes a GLONASS ephemeris (message type 1020). GLONASS
// broadcasts a Cartesian state vector instead of Keplerian elements; the
// signed fields are sign-magnitude encoded on the wire.
type EphGLO struct {
	PRN      gnss.PRN
	FreqChan int `validate:"gte=0,lte=20"` // DF040 frequency channel, raw (0 = channel -7)

	Health         bool // almanac health, DF104
	AlmHealthAvail bool
	P1             uint8
	Tk             uint16 // raw 12-bit time referencing the frame start
	Bn             bool   // B_n word MSB
	P2             bool
	Tb             int // interval index, 15 min units

	Pos [3]float64 // [m]
	Vel [3]float64 // [m/s]
	Acc [3]float64 // [m/s^2]

	P3    bool
	Gamma float64 // relative frequency bias
	P     uint8
	In3   bool
	Tau   float64 // clock correction [s]
	DTau  float64 // L1/L2 delay difference [s]
	En    int     // age of data [days]

	P4     bool
	Ft     int
	Nt     int // calendar day within four-year period
	M      uint8
	Add    bool // additional data available
	Na     int
	TauC   float64 // [s]
	N4     int
	TauGPS float64 // [s]
	In5    bool
}

func (e *EphGLO) GetPRN() gnss.PRN { return e.PRN }
func (e *EphGLO) Validate() error  { return validate.Struct(e) }
func (e *EphGLO) Unhealthy() bool  { return e.Health }

// TkTime returns the frame time split as printed in trace output.
func (e *EphGLO) TkTime() (hh, mm, ss int) {
	// the subfield split follows the trace convention, MSB first
	hh = int(e.Tk & 0x1F)
	mm = int(e.Tk >> 5 & 0x3F)
	ss = int(e.Tk>>10&0x3) * 15
	return
}

// EphGAL describes a Galileo ephemeris (message types 1045 F/NAV and
// 1046 I/NAV).
type EphGAL struct {
	PRN     gnss.PRN
	NavType NavType
	Week    int `validate:"gte=0"`
	IODnav  int
	SISA    int

	IDOT float64 // [rad/s]
	Toc  float64 // [s of week]
	Af2  float64 // [s/s^2]
	Af1  float64 // [s/s]
	Af0  float64 // [s]

	Crs      float64 // [m]
	DeltaN   float64 // [rad/s]
	M0       float64 // [rad]
	Cuc      float64 // [rad]
	Ecc      float64 `validate:"gte=0,lt=1"`
	Cus      float64 // [rad]
	SqrtA    float64 `validate:"gte=0"` // [sqrt(m)]
	Toe      float64 // [s of week]
	Cic      float64 // [rad]
	Omega0   float64 // [rad]
	Cis      float64 // [rad]
	I0       float64 // [rad]
	Crc      float64 // [m]
	Omega    float64 // [rad]
	OmegaDot float64 // [rad/s]

	BGDE5a float64 // E1-E5a broadcast group delay [s]
	BGDE5b float64 // E1-E5b broadcast group delay [s], I/NAV only

	// F/NAV health
	HealthOS uint8
	ValidOS  bool // data validity status, set = invalid

	// I/NAV health
	HealthE5b uint8
	ValidE5b  bool
	HealthE1B uint8
	ValidE1B  bool
}

func (e *EphGAL) GetPRN() gnss.PRN { return e.PRN }
func (e *EphGAL) Validate() error  { return validate.Struct(e) }

func (e *EphGAL) Unhealthy() bool {
	if e.NavType == NavFNAV {
		return e.HealthOS != 0 || e.ValidOS
	}
	return e.HealthE5b != 0 || e.ValidE5b || e.HealthE1B != 0 || e.ValidE1B
}

// EphQZSS describes a QZSS ephemeris (message type 1044).
type EphQZSS struct {
	PRN  gnss.PRN
	Week int `validate:"gte=0,lte=1023"`
	URA  int `validate:"gte=0,lte=15"`

	Toc float64 // [s of week]
	Af2 float64
	Af1 float64
	Af0 float64

	IODE int
	IODC int

	Crs      float64
	DeltaN   float64
	M0       float64
	Cuc      float64
	Ecc      float64 `validate:"gte=0,lt=1"`
	Cus      float64
	SqrtA    float64 `validate:"gte=0"`
	Toe      float64
	Cic      float64
	Omega0   float64
	Cis      float64
	I0       float64
	Crc      float64
	Omega    float64
	OmegaDot float64
	IDOT     float64

	CodeL2      uint8
	TGD         float64
	Health      uint8 // DF454, 6-bit composite per IS-QZSS-PNT
	FitInterval bool
}

func (e *EphQZSS) GetPRN() gnss.PRN { return e.PRN }
func (e *EphQZSS) Validate() error  { return validate.Struct(e) }

// Unhealthy implements the QZSS composite health rule: the L1C/B bit is a
// signal selector, not a health bit, so only bits 0 and 2-4 of DF454 count.
func (e *EphQZSS) Unhealthy() bool {
	return e.Health&0b100000 != 0 || e.Health&0b001110 != 0
}

// UnhealthySignals lists the signals flagged unusable, empty when healthy.
func (e *EphQZSS) UnhealthySignals() []string {
	if !e.Unhealthy() {
		return nil
	}
	var sigs []string
	for _, b := range []struct {
		bit  uint8
		name string
	}{
		{0b010000, "L1C/A"},
		{0b001000, "L2C"},
		{0b000100, "L5"},
		{0b000010, "L1C"},
		{0b000001, "L1C/B"},
	} {
		if e.Health&b.bit != 0 {
			sigs = append(sigs, b.name)
		}
	}
	return sigs
}

// EphBDS describes a BeiDou ephemeris (message type 1042).
type EphBDS struct {
	PRN  gnss.PRN
	Week int `validate:"gte=0,lte=8191"`
	URA  int `validate:"gte=0,lte=15"`

	IDOT float64
	AODE int
	Toc  float64 // [s of week]
	Af2  float64
	Af1  float64
	Af0  float64
	AODC int

	Crs      float64
	DeltaN   float64
	M0       float64
	Cuc      float64
	Ecc      float64 `validate:"gte=0,lt=1"`
	Cus      float64
	SqrtA    float64 `validate:"gte=0"`
	Toe      float64
	Cic      float64
	Omega0   float64
	Cis      float64
	I0       float64
	Crc      float64
	Omega    float64
	OmegaDot float64

	TGD1   float64 // [s]
	TGD2   float64 // [s]
	Health bool
}

func (e *EphBDS) GetPRN() gnss.PRN { return e.PRN }
func (e *EphBDS) Validate() error  { return validate.Struct(e) }
func (e *EphBDS) Unhealthy() bool  { return e.Health }

// EphNavIC describes a NavIC/IRNSS ephemeris (message type 1041).
type EphNavIC struct {
	PRN  gnss.PRN
	Week int `validate:"gte=0,lte=1023"`
	URA  int `validate:"gte=0,lte=15"`

	Af0 float64
	Af1 float64
	Af2 float64

	Toc    float64 // [s of week]
	TGD    float64
	DeltaN float64
	IODEC  int

	HealthL5 bool
	HealthS  bool

	Cuc float64
	Cus float64
	Cic float64
	Cis float64
	Crc float64
	Crs float64

	IDOT     float64
	M0       float64
	Toe      float64
	Ecc      float64 `validate:"gte=0,lt=1"`
	SqrtA    float64 `validate:"gte=0"`
	Omega0   float64
	Omega    float64
	OmegaDot float64
	I0       float64
}

func (e *EphNavIC) GetPRN() gnss.PRN { return e.PRN }
func (e *EphNavIC) Validate() error  { return validate.Struct(e) }
func (e *EphNavIC) Unhealthy() bool  { return e.HealthL5 || e.HealthS }
