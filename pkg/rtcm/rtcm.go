// Package rtcm dispatches framed RTCM3 message payloads to the ephemeris
// and SSR decoders. Frame synchronization and CRC checking belong to the
// transport and must already have happened.
package rtcm

import (
	"errors"
	"fmt"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/eph"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
	"github.com/gnssnet/qzsl6tool/pkg/ssr"
)

// ErrUnsupportedMessage is returned for message numbers without a decoder.
var ErrUnsupportedMessage = errors.New("rtcm: unsupported message number")

// A Result is one decoded message: a one-line summary, the detail trace
// lines and the typed record.
type Result struct {
	MsgNum  int
	Summary string
	Trace   string
	Record  any
}

// A Decoder dispatches message payloads by message number. It owns the
// CSSR session state, so messages of one stream must go through one
// decoder.
type Decoder struct {
	cssr *ssr.Session
}

// NewDecoder returns a Decoder with a fresh CSSR session.
func NewDecoder() *Decoder {
	return &Decoder{cssr: ssr.NewSession(ssr.KindCSSR)}
}

// Stats returns the CSSR bit-usage statistics accumulated so far.
func (d *Decoder) Stats() ssr.Stats { return d.cssr.Stats }

// ephMessage maps ephemeris message numbers to their decode context.
var ephMessage = map[int]struct {
	sys gnss.System
	nav eph.NavType
}{
	1019: {gnss.SysGPS, eph.NavNone},
	1020: {gnss.SysGLO, eph.NavNone},
	1041: {gnss.SysNavIC, eph.NavNone},
	1042: {gnss.SysBDS, eph.NavNone},
	1044: {gnss.SysQZSS, eph.NavNone},
	1045: {gnss.SysGAL, eph.NavFNAV},
	1046: {gnss.SysGAL, eph.NavINAV},
}

// classicBase maps the first message number of each per-GNSS SSR block.
// Within a block the order is orbit, clock, code bias, combined orbit and
// clock, URA, high-rate clock.
var classicBase = map[int]gnss.System{
	1057: gnss.SysGPS,
	1063: gnss.SysGLO,
	1240: gnss.SysGAL,
	1246: gnss.SysQZSS,
	1252: gnss.SysSBAS,
	1258: gnss.SysBDS,
}

func classicMessage(num int) (gnss.System, ssr.ClassicType, bool) {
	for base, sys := range classicBase {
		if num >= base && num < base+6 {
			return sys, ssr.ClassicType(num - base), true
		}
	}
	return 0, 0, false
}

// Decode decodes one message payload. The payload starts with the 12-bit
// message number. A nil result with a nil error is CSSR padding.
func (d *Decoder) Decode(payload []byte) (*Result, error) {
	cur := bits.NewCursor(payload)
	if cur.AllZero() {
		// zero padding, accounted to the CSSR null counter
		_, err := d.cssr.DecodeCSSR(cur)
		return nil, err
	}
	num, err := cur.Uint(12)
	if err != nil {
		return nil, err
	}
	msgnum := int(num)

	if ctx, ok := ephMessage[msgnum]; ok {
		e, trace, err := eph.Decode(cur, ctx.sys, ctx.nav)
		if err != nil {
			return nil, fmt.Errorf("rtcm: message %d: %w", msgnum, err)
		}
		return &Result{
			MsgNum:  msgnum,
			Summary: fmt.Sprintf("RTCM %d EPH %s", msgnum, trace),
			Record:  e,
		}, nil
	}

	if sys, typ, ok := classicMessage(msgnum); ok {
		msg, err := ssr.DecodeClassic(cur, sys, typ)
		if err != nil {
			return nil, fmt.Errorf("rtcm: message %d: %w", msgnum, err)
		}
		return &Result{
			MsgNum:  msgnum,
			Summary: fmt.Sprintf("RTCM %d %s %s %s", msgnum, typ, sys.Abbr(), msg.Summary),
			Trace:   msg.Trace,
			Record:  msg.Record,
		}, nil
	}

	if msgnum == 4073 {
		// the CSSR decoder re-reads the message number itself
		msg, err := d.cssr.DecodeCSSR(bits.NewCursor(payload))
		if err != nil {
			return nil, fmt.Errorf("rtcm: message %d: %w", msgnum, err)
		}
		if msg == nil {
			return nil, nil
		}
		return &Result{
			MsgNum:  msgnum,
			Summary: fmt.Sprintf("RTCM %d CSSR %s", msgnum, msg.Summary),
			Trace:   msg.Trace,
			Record:  msg.Record,
		}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnsupportedMessage, msgnum)
}
