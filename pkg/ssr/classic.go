package ssr

import (
	"fmt"
	"strings"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// ClassicType identifies one of the per-GNSS SSR message bodies of RTCM
// 10403.3 (messages 1057-1068 and the 1240+ extensions).
type ClassicType int

// Classic SSR message bodies.
const (
	ClassicOrbit ClassicType = iota
	ClassicClock
	ClassicCodeBias
	ClassicCombined
	ClassicURA
	ClassicHRClock
)

func (t ClassicType) String() string {
	return [...]string{"SSR orbit", "SSR clock", "SSR code bias",
		"SSR obt/clk", "SSR URA", "SSR hr clock"}[t]
}

// ClassicHeader is the common SSR message header. The epoch width depends
// on the satellite system (17 bits for GLONASS, 20 otherwise), as does the
// satellite count width (4 bits for QZSS, 6 otherwise).
type ClassicHeader struct {
	Epoch    int
	Interval int
	MMI      bool
	Datum    bool // satellite reference datum, orbit messages only
	IOD      int
	Provider int
	Solution int
	NSat     int
}

// ClassicOrbitCorr is one satellite of an SSR orbit message.
type ClassicOrbitCorr struct {
	PRN                           gnss.PRN
	IODE                          int
	Radial, Along, Cross          float64 // [m]
	DotRadial, DotAlong, DotCross float64 // [m/s]
}

// ClassicClockCorr is one satellite of an SSR clock message.
type ClassicClockCorr struct {
	PRN        gnss.PRN
	C0, C1, C2 float64 // [m], [m/s], [m/s^2]
}

// ClassicCombinedCorr is one satellite of an SSR combined orbit and clock
// message.
type ClassicCombinedCorr struct {
	ClassicOrbitCorr
	C0, C1, C2 float64
}

// ClassicCodeBiasCorr is one satellite's code bias set.
type ClassicCodeBiasCorr struct {
	PRN    gnss.PRN
	Biases []CodeBias
}

// ClassicRecord is a decoded classic SSR message.
type ClassicRecord struct {
	Type   ClassicType
	Sys    gnss.System
	Header ClassicHeader

	Orbits   []ClassicOrbitCorr
	Clocks   []ClassicClockCorr
	Combined []ClassicCombinedCorr
	CodeBias []ClassicCodeBiasCorr
	URA      []URAEntry
	HRClocks []ClockCorrection
}

func classicSatIDWidth(sys gnss.System) int {
	switch sys {
	case gnss.SysQZSS:
		return 4
	case gnss.SysGLO:
		return 5
	}
	return 6
}

func decodeClassicHeader(r *bits.Reader, sys gnss.System, typ ClassicType) ClassicHeader {
	h := ClassicHeader{}
	bw := 20
	if sys == gnss.SysGLO {
		bw = 17
	}
	h.Epoch = int(r.Uint(bw))
	h.Interval = int(r.Uint(4))
	h.MMI = r.Bit()
	if typ == ClassicOrbit || typ == ClassicCombined {
		h.Datum = r.Bit()
	}
	h.IOD = int(r.Uint(4))
	h.Provider = int(r.Uint(16))
	h.Solution = int(r.Uint(4))
	bw = 6
	if sys == gnss.SysQZSS {
		bw = 4
	}
	h.NSat = int(r.Uint(bw))
	return h
}

// DecodeClassic decodes one classic SSR message body. The cursor must be
// positioned after the 12-bit message number; sys and typ are derived from
// it by the caller.
func DecodeClassic(cur *bits.Cursor, sys gnss.System, typ ClassicType) (*Message, error) {
	r := bits.NewReader(cur)
	rec := &ClassicRecord{Type: typ, Sys: sys}
	rec.Header = decodeClassicHeader(r, sys, typ)
	if err := r.Err(); err != nil {
		return nil, err
	}
	var b, sat strings.Builder
	bw := classicSatIDWidth(sys)
	for i := 0; i < rec.Header.NSat; i++ {
		satid := int(r.Uint(bw))
		prn := gnss.PRN{Sys: sys, Num: satid}
		fmt.Fprintf(&sat, "%s ", prn)
		switch typ {
		case ClassicOrbit:
			c := decodeClassicOrbit(r, prn)
			rec.Orbits = append(rec.Orbits, c)
			writeClassicOrbit(&b, c)
		case ClassicClock:
			c := ClassicClockCorr{PRN: prn}
			c.C0, c.C1, c.C2 = decodeClassicClock(r)
			rec.Clocks = append(rec.Clocks, c)
			fmt.Fprintf(&b, "%s c0=%7.3fm, c1=%7.3fm, c2=%7.3fm\n", prn, c.C0, c.C1, c.C2)
		case ClassicCombined:
			c := ClassicCombinedCorr{ClassicOrbitCorr: decodeClassicOrbit(r, prn)}
			c.C0, c.C1, c.C2 = decodeClassicClock(r)
			rec.Combined = append(rec.Combined, c)
			writeClassicOrbit(&b, c.ClassicOrbitCorr)
			fmt.Fprintf(&b, "%s c0=%7.3fm, c1=%7.3fm, c2=%7.3fm\n", prn, c.C0, c.C1, c.C2)
		case ClassicCodeBias:
			c := ClassicCodeBiasCorr{PRN: prn}
			ncb := int(r.Uint(5))
			for j := 0; j < ncb; j++ {
				stmi := int(r.Uint(5))
				cb := float64(r.Int(14)) * 1e-2
				name, err := gnss.SignalName(sys, stmi)
				if err != nil {
					return nil, err
				}
				c.Biases = append(c.Biases, CodeBias{
					PRN: prn, Signal: name, Bias: Value{Val: cb, Valid: true},
				})
				fmt.Fprintf(&b, "%s %-13s code_bias=%7.3fm\n", prn, name, cb)
			}
			rec.CodeBias = append(rec.CodeBias, c)
		case ClassicURA:
			ura := int(r.Uint(6))
			rec.URA = append(rec.URA, URAEntry{PRN: prn, URA: ura})
			fmt.Fprintf(&b, "%s ura=%02d\n", prn, ura)
		case ClassicHRClock:
			hrc := float64(r.Int(22)) * 1e-4
			rec.HRClocks = append(rec.HRClocks, ClockCorrection{
				PRN: prn, C0: Value{Val: hrc, Valid: true},
			})
			fmt.Fprintf(&b, "%s high_rate_clock=%7.3fm\n", prn, hrc)
		default:
			return nil, fmt.Errorf("ssr: unknown classic SSR type %d", typ)
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
	}
	cont := ""
	if rec.Header.MMI {
		cont = " cont."
	}
	summary := fmt.Sprintf("%s(nsat=%d iod=%d%s)", sat.String(), rec.Header.NSat, rec.Header.IOD, cont)
	return &Message{Trace: b.String(), Summary: summary, Record: rec}, nil
}

func decodeClassicOrbit(r *bits.Reader, prn gnss.PRN) ClassicOrbitCorr {
	c := ClassicOrbitCorr{PRN: prn}
	c.IODE = int(r.Uint(8))
	c.Radial = float64(r.Int(22)) * 1e-4
	c.Along = float64(r.Int(20)) * 4e-4
	c.Cross = float64(r.Int(20)) * 4e-5
	c.DotRadial = float64(r.Int(21)) * 1e-6
	c.DotAlong = float64(r.Int(19)) * 4e-6
	c.DotCross = float64(r.Int(19)) * 4e-6
	return c
}

func decodeClassicClock(r *bits.Reader) (c0, c1, c2 float64) {
	c0 = float64(r.Int(22)) * 1e-4
	c1 = float64(r.Int(21)) * 1e-6
	c2 = float64(r.Int(27)) * 2e-9
	return
}

func writeClassicOrbit(b *strings.Builder, c ClassicOrbitCorr) {
	fmt.Fprintf(b, "%s d_radial=%7.4fm d_along=%7.4fm d_cross=%7.4fm dot_d_radial=%7.4fm/s dot_d_along=%7.4fm/s dot_d_cross=%7.4fm/s\n",
		c.PRN, c.Radial, c.Along, c.Cross, c.DotRadial, c.DotAlong, c.DotCross)
}
