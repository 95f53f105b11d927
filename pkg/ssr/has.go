package ssr

import (
	"fmt"
	"strings"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// hasValidityInterval maps the 4-bit validity interval index to seconds.
// Index 15 means no validity limit and is shown as 0.
var hasValidityInterval = [16]int{
	5, 10, 15, 20, 30, 60, 90, 120, 180, 240, 300, 600, 900, 1800, 3600, 0,
}

// ValidityInterval returns the validity interval in seconds for a HAS
// validity index.
func ValidityInterval(idx int) (int, error) {
	if idx < 0 || idx >= len(hasValidityInterval) {
		return 0, fmt.Errorf("ssr: validity interval index %d out of range", idx)
	}
	return hasValidityInterval[idx], nil
}

// scaledClock builds a HAS clock Value. The field has two sentinels: the
// most-negative value means not available, the most-positive means the
// satellite shall not be used.
func scaledClock(raw int64, multiplier int) Value {
	if raw == -4096 || raw == 4095 {
		return Value{}
	}
	return Value{Val: float64(raw) * 0.0025 * float64(multiplier), Valid: true}
}

// HASOrbitRecord is a HAS orbit correction body.
type HASOrbitRecord struct {
	ValidityInterval int
	Corrections      []OrbitCorrection
}

// HASClockEntry is one satellite of a HAS full-set clock message.
type HASClockEntry struct {
	PRN        gnss.PRN
	Multiplier int
	C0         Value
}

// HASClockRecord is a HAS full-set clock body.
type HASClockRecord struct {
	ValidityInterval int
	Entries          []HASClockEntry
}

// HASClockSubsetEntry is one GNSS sub-block of a HAS subset clock message.
type HASClockSubsetEntry struct {
	Sys        gnss.System
	Multiplier int
	C0         Value
}

// HASClockSubsetRecord is a HAS subset clock body.
type HASClockSubsetRecord struct {
	ValidityInterval int
	Entries          []HASClockSubsetEntry
}

// HASCodeBiasRecord is a HAS code bias body.
type HASCodeBiasRecord struct {
	ValidityInterval int
	Biases           []CodeBias
}

// HASPhaseBiasRecord is a HAS phase bias body. Biases are in cycles.
type HASPhaseBiasRecord struct {
	ValidityInterval int
	Biases           []PhaseBias
}

// DecodeHASMask installs a new addressing context from a HAS mask body and
// restarts the bit-usage accumulator.
func (s *Session) DecodeHASMask(cur *bits.Cursor) (*Message, error) {
	m, err := DecodeMask(cur, KindHAS)
	if err != nil {
		return nil, err
	}
	s.mask = m
	msg := &Message{Trace: m.trace(), Record: m}
	nsat, nsig := m.counts()
	s.Stats = Stats{NSat: nsat, NSig: nsig, BitOther: cur.Pos()}
	return msg, nil
}

func (s *Session) readValidityInterval(r *bits.Reader) (int, int) {
	idx := int(r.Uint(4))
	return hasValidityInterval[idx], idx
}

// DecodeHASOrbit decodes a HAS orbit correction body.
func (s *Session) DecodeHASOrbit(cur *bits.Cursor) (*Message, error) {
	if s.mask == nil {
		return nil, fmt.Errorf("%w (HAS orbit)", ErrNoMask)
	}
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	vi, idx := s.readValidityInterval(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	rec := &HASOrbitRecord{ValidityInterval: vi}
	var b strings.Builder
	fmt.Fprintf(&b, "ORBIT validity_interval=%ds (%d)\n", vi, idx)
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		bw := ms.IODEWidth()
		for _, prn := range ms.Sats {
			c := OrbitCorrection{PRN: prn}
			c.IODE = int(r.Uint(bw))
			c.Radial = scaled(r.Int(13), -4096, 0.0025)
			c.Along = scaled(r.Int(12), -2048, 0.0080)
			c.Cross = scaled(r.Int(12), -2048, 0.0080)
			if err := r.Err(); err != nil {
				return nil, err
			}
			rec.Corrections = append(rec.Corrections, c)
			fmt.Fprintf(&b, "ORBIT %s IODE=%4d d_radial=%7.4fm d_track=%7.4fm d_cross=%7.4fm\n",
				prn, c.IODE, c.Radial.Val, c.Along.Val, c.Cross.Val)
		}
	}
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return &Message{Trace: b.String(), Record: rec}, nil
}

// DecodeHASClockFull decodes a HAS full-set clock body.
func (s *Session) DecodeHASClockFull(cur *bits.Cursor) (*Message, error) {
	if s.mask == nil {
		return nil, fmt.Errorf("%w (HAS clock)", ErrNoMask)
	}
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	vi, idx := s.readValidityInterval(r)
	multipliers := make([]int, len(s.mask.Systems))
	for i := range multipliers {
		multipliers[i] = int(r.Uint(2)) + 1
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	rec := &HASClockRecord{ValidityInterval: vi}
	var b strings.Builder
	fmt.Fprintf(&b, "CKFUL validity_interval=%ds (%d)\n", vi, idx)
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		for _, prn := range ms.Sats {
			raw := r.Int(13)
			if err := r.Err(); err != nil {
				return nil, err
			}
			e := HASClockEntry{PRN: prn, Multiplier: multipliers[i]}
			e.C0 = scaledClock(raw, e.Multiplier)
			rec.Entries = append(rec.Entries, e)
			fmt.Fprintf(&b, "CKFUL %s d_clock=%7.3fm (multiplier=%d)\n",
				prn, e.C0.Val, e.Multiplier)
		}
	}
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return &Message{Trace: b.String(), Record: rec}, nil
}

// DecodeHASClockSubset decodes a HAS subset clock body.
func (s *Session) DecodeHASClockSubset(cur *bits.Cursor) (*Message, error) {
	if s.mask == nil {
		return nil, fmt.Errorf("%w (HAS clock subset)", ErrNoMask)
	}
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	vi, idx := s.readValidityInterval(r)
	nsub := int(r.Uint(2)) + 1
	if err := r.Err(); err != nil {
		return nil, err
	}
	rec := &HASClockSubsetRecord{ValidityInterval: vi}
	var b strings.Builder
	fmt.Fprintf(&b, "CKFUL validity_interval=%ds (%d), n_sub=%d\n", vi, idx, nsub)
	for i := 0; i < nsub; i++ {
		id := r.Uint(4)
		mult := int(r.Uint(2)) + 1
		raw := r.Int(13)
		if err := r.Err(); err != nil {
			return nil, err
		}
		sys, err := gnss.SystemFromSSRID(id)
		if err != nil {
			return nil, err
		}
		e := HASClockSubsetEntry{Sys: sys, Multiplier: mult}
		e.C0 = scaledClock(raw, mult)
		rec.Entries = append(rec.Entries, e)
		fmt.Fprintf(&b, "CKSUB %s d_clock=%7.3fm (x%d)\n", sys, e.C0.Val, mult)
	}
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return &Message{Trace: b.String(), Record: rec}, nil
}

// DecodeHASCodeBias decodes a HAS code bias body.
func (s *Session) DecodeHASCodeBias(cur *bits.Cursor) (*Message, error) {
	if s.mask == nil {
		return nil, fmt.Errorf("%w (HAS code bias)", ErrNoMask)
	}
	r := bits.NewReader(cur)
	vi, idx := s.readValidityInterval(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	_, nsigsat := s.mask.counts()
	if !cur.HasAtLeast(11 * nsigsat) {
		return nil, fmt.Errorf("ssr: HAS code bias needs %d bits: %w",
			11*nsigsat, bits.ErrInsufficientData)
	}
	statPos := cur.Pos()
	rec := &HASCodeBiasRecord{ValidityInterval: vi}
	var b strings.Builder
	fmt.Fprintf(&b, "CBIAS validity_interval=%ds (%d)\n", vi, idx)
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		posMask := 0
		for _, prn := range ms.Sats {
			for _, sig := range ms.Signals {
				active := ms.CellMask[posMask]
				posMask++
				if !active {
					continue
				}
				cb := scaled(r.Int(11), -1024, 0.02)
				if err := r.Err(); err != nil {
					return nil, err
				}
				rec.Biases = append(rec.Biases, CodeBias{PRN: prn, Signal: sig, Bias: cb})
				fmt.Fprintf(&b, "CBIAS %s %-13s code_bias=%7.3fm\n", prn, sig, cb.Val)
			}
		}
	}
	s.Stats.BitOther += statPos
	s.Stats.BitSig += cur.Pos() - statPos
	return &Message{Trace: b.String(), Record: rec}, nil
}

// DecodeHASPhaseBias decodes a HAS phase bias body.
func (s *Session) DecodeHASPhaseBias(cur *bits.Cursor) (*Message, error) {
	if s.mask == nil {
		return nil, fmt.Errorf("%w (HAS phase bias)", ErrNoMask)
	}
	r := bits.NewReader(cur)
	vi, idx := s.readValidityInterval(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	statPos := cur.Pos()
	rec := &HASPhaseBiasRecord{ValidityInterval: vi}
	var b strings.Builder
	fmt.Fprintf(&b, "PBIAS validity_interval=%ds (%d)\n", vi, idx)
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		posMask := 0
		for _, prn := range ms.Sats {
			for _, sig := range ms.Signals {
				active := ms.CellMask[posMask]
				posMask++
				if !active {
					continue
				}
				pb := scaled(r.Int(11), -1024, 0.01)
				di := int(r.Uint(2))
				if err := r.Err(); err != nil {
					return nil, err
				}
				rec.Biases = append(rec.Biases, PhaseBias{
					PRN: prn, Signal: sig, Bias: pb, Discontinuity: di,
				})
				fmt.Fprintf(&b, "PBIAS %s %-13s phase_bias=%7.3fcycle discont_indicator=%d\n",
					prn, sig, pb.Val, di)
			}
		}
	}
	s.Stats.BitOther += statPos
	s.Stats.BitSig += cur.Pos() - statPos
	return &Message{Trace: b.String(), Record: rec}, nil
}
