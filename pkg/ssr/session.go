package ssr

import (
	"errors"
	"fmt"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
)

// errors
var (
	// ErrNoMask is returned when a correction message arrives before any
	// mask message established the addressing context.
	ErrNoMask = errors.New("ssr: no mask message received yet")

	// ErrUnknownSubtype is returned for CSSR subtype values outside 1-12.
	ErrUnknownSubtype = errors.New("ssr: unknown CSSR subtype")
)

// Stats accumulates the bit usage of a correction stream, split into
// satellite-, signal-, other- and null-attributed bits. The accumulator
// restarts at every mask message.
type Stats struct {
	NSat, NSig                        int
	BitSat, BitSig, BitOther, BitNull int
}

func (s Stats) String() string {
	total := s.BitSat + s.BitSig + s.BitOther + s.BitNull
	return fmt.Sprintf("stat n_sat %d n_sig %d bit_sat %d bit_sig %d bit_other %d bit_null %d bit_total %d",
		s.NSat, s.NSig, s.BitSat, s.BitSig, s.BitOther, s.BitNull, total)
}

// A Session holds the cross-message state of one correction stream. Only
// the mask survives between messages; the header fields are replaced on
// every decode. CSSR and HAS streams use independent sessions.
type Session struct {
	kind Kind
	mask *Mask

	// header fields of the message decoded last
	MsgNum   int
	Subtype  int
	Epoch    int // GPS epoch time, mask messages only
	HEpoch   int // GNSS hourly epoch
	Interval int
	MMI      bool
	IOD      int

	// compact network ID read by the last subset-mask message
	lastNetworkID int

	Stats Stats
}

// NewSession returns a session in the mask-required state.
func NewSession(kind Kind) *Session {
	return &Session{kind: kind}
}

// Mask returns the current addressing context, nil before the first mask.
func (s *Session) Mask() *Mask { return s.mask }

// A Message is one decoded correction message: the detail trace lines, a
// one-line summary and the typed correction record.
type Message struct {
	Subtype int
	Trace   string
	Summary string
	Record  any
}

// DecodeCSSR decodes one CSSR message payload. A nil message with a nil
// error means zero padding or a foreign message number; those bits are
// accounted to the null counter and decoding continues with the next
// payload.
func (s *Session) DecodeCSSR(cur *bits.Cursor) (*Message, error) {
	total := cur.Pos() + cur.Remaining()
	if cur.AllZero() {
		s.Stats.BitNull += total
		s.Subtype = 0
		return nil, nil
	}
	r := bits.NewReader(cur)
	s.MsgNum = int(r.Uint(12))
	if err := r.Err(); err != nil {
		s.Subtype = 0
		return nil, err
	}
	if s.MsgNum != 4073 {
		s.Stats.BitNull += total
		s.Subtype = 0
		return nil, nil
	}
	s.Subtype = int(r.Uint(4))
	switch {
	case s.Subtype == 1:
		s.Epoch = int(r.Uint(20))
	case s.Subtype == 10:
		// service information has no epoch/interval header
	default:
		s.HEpoch = int(r.Uint(12))
	}
	if s.Subtype != 10 {
		s.Interval = int(r.Uint(4))
		s.MMI = r.Bit()
		s.IOD = int(r.Uint(4))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	if s.Subtype != 1 && s.mask == nil {
		return nil, fmt.Errorf("%w (subtype %d)", ErrNoMask, s.Subtype)
	}

	msg := &Message{Subtype: s.Subtype}
	var err error
	switch s.Subtype {
	case 1:
		err = s.decodeMaskMessage(cur, msg)
	case 2:
		err = s.decodeST2(cur, msg)
	case 3:
		err = s.decodeST3(cur, msg)
	case 4:
		err = s.decodeST4(cur, msg)
	case 5:
		err = s.decodeST5(cur, msg)
	case 6:
		err = s.decodeST6(cur, msg)
	case 7:
		err = s.decodeST7(cur, msg)
	case 8:
		err = s.decodeST8(cur, msg)
	case 9:
		err = s.decodeST9(cur, msg)
	case 10:
		err = s.decodeST10(cur, msg)
	case 11:
		err = s.decodeST11(cur, msg)
	case 12:
		err = s.decodeST12(cur, msg)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSubtype, s.Subtype)
	}
	if err != nil {
		return nil, err
	}
	if s.Subtype == 1 {
		msg.Summary = fmt.Sprintf("ST%-2d epoch=%d iod=%d", s.Subtype, s.Epoch, s.IOD)
	} else {
		msg.Summary = fmt.Sprintf("ST%-2d hepoch=%d iod=%d", s.Subtype, s.HEpoch, s.IOD)
	}
	return msg, nil
}

// decodeMaskMessage installs a new addressing context and restarts the
// bit-usage accumulator.
func (s *Session) decodeMaskMessage(cur *bits.Cursor, msg *Message) error {
	m, err := DecodeMask(cur, s.kind)
	if err != nil {
		return err
	}
	s.mask = m
	msg.Trace = m.trace()
	msg.Record = m
	nsat, nsig := m.counts()
	s.Stats = Stats{NSat: nsat, NSig: nsig, BitOther: cur.Pos()}
	return nil
}
