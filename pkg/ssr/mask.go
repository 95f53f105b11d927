package ssr

import (
	"fmt"
	"strings"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// Kind selects between the Compact SSR and the Galileo HAS mask layout.
type Kind int

// Correction stream kinds.
const (
	KindCSSR Kind = iota
	KindHAS
)

func (k Kind) String() string {
	if k == KindHAS {
		return "HAS"
	}
	return "CSSR"
}

// A MaskSystem is the addressing table of one GNSS within a mask message:
// the satellites and signals announced by the bitmasks, plus the cell mask
// selecting the active (satellite, signal) pairs. The cell mask is
// satellite-major, signal-minor; every correction subtype iterates it in
// exactly this order.
type MaskSystem struct {
	Sys      gnss.System
	Sats     []gnss.PRN
	Signals  []string
	CellMask []bool
	NavMsg   int // HAS navigation message index, 0 for CSSR
}

// IODEWidth returns the issue-of-data bit width used by orbit corrections
// for this system.
func (ms *MaskSystem) IODEWidth() int {
	if ms.Sys == gnss.SysGAL {
		return 10
	}
	return 8
}

// A Mask is the satellite/signal/cell addressing context built from a CSSR
// subtype 1 or HAS mask message and consumed by every later correction.
type Mask struct {
	Kind    Kind
	Systems []MaskSystem
}

// DecodeMask reads a mask body from cur. The cursor must be positioned
// after the message header (CSSR) or at the mask body (HAS).
func DecodeMask(cur *bits.Cursor, kind Kind) (*Mask, error) {
	ngnss, err := cur.Uint(4)
	if err != nil {
		return nil, err
	}
	if cur.Pos()+cur.Remaining() < 49+61*int(ngnss) {
		return nil, fmt.Errorf("ssr: mask for %d GNSS: %w", ngnss, bits.ErrInsufficientData)
	}
	m := &Mask{Kind: kind}
	for i := 0; i < int(ngnss); i++ {
		r := bits.NewReader(cur)
		id := r.Uint(4)
		satmask := r.Uint(40)
		sigmask := r.Uint(16)
		cmavail := r.Bit()
		if err := r.Err(); err != nil {
			return nil, err
		}
		sys, err := gnss.SystemFromSSRID(id)
		if err != nil {
			return nil, err
		}
		ms := MaskSystem{Sys: sys}
		for j := 0; j < 40; j++ {
			if satmask>>uint(39-j)&1 != 0 {
				ms.Sats = append(ms.Sats, gnss.PRN{Sys: sys, Num: j + 1})
			}
		}
		for j := 0; j < 16; j++ {
			if sigmask>>uint(15-j)&1 != 0 {
				name, err := gnss.SignalName(sys, j)
				if err != nil {
					return nil, err
				}
				ms.Signals = append(ms.Signals, name)
			}
		}
		ncell := len(ms.Sats) * len(ms.Signals)
		ms.CellMask = make([]bool, ncell)
		if cmavail {
			for j := 0; j < ncell; j++ {
				ms.CellMask[j] = r.Bit()
			}
		} else {
			for j := range ms.CellMask {
				ms.CellMask[j] = true
			}
		}
		if kind == KindHAS {
			ms.NavMsg = int(r.Uint(3))
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		m.Systems = append(m.Systems, ms)
	}
	if kind == KindHAS {
		if err := cur.Skip(6); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// trace renders the per-satellite signal listing of the mask.
func (m *Mask) trace() string {
	prefix := "ST1 "
	if m.Kind == KindHAS {
		prefix = "MASK "
	}
	var b strings.Builder
	for _, ms := range m.Systems {
		posMask := 0
		for _, prn := range ms.Sats {
			b.WriteString(prefix + prn.String())
			for _, sig := range ms.Signals {
				active := ms.CellMask[posMask]
				posMask++
				if !active {
					continue
				}
				b.WriteString(" " + sig)
			}
			b.WriteString("\n")
		}
		if m.Kind == KindHAS && ms.NavMsg != 0 {
			b.WriteString("\nWarning: HAS NM is not zero.")
		}
	}
	return b.String()
}

// counts returns the number of masked satellites and active cells.
func (m *Mask) counts() (nsat, nsig int) {
	for _, ms := range m.Systems {
		nsat += len(ms.Sats)
		for _, active := range ms.CellMask {
			if active {
				nsig++
			}
		}
	}
	return
}
