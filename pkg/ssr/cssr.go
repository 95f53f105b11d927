package ssr

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// An OrbitCorrection is one satellite's orbit delta in the radial/along/
// cross frame.
type OrbitCorrection struct {
	PRN    gnss.PRN
	IODE   int
	Radial Value
	Along  Value
	Cross  Value
}

// OrbitRecord is a CSSR subtype 2 body.
type OrbitRecord struct {
	Corrections []OrbitCorrection
}

// ClockCorrection is one satellite's clock delta.
type ClockCorrection struct {
	PRN gnss.PRN
	C0  Value
}

// ClockRecord is a CSSR subtype 3 body.
type ClockRecord struct {
	Corrections []ClockCorrection
}

// CodeBias is one (satellite, signal) code bias cell.
type CodeBias struct {
	PRN    gnss.PRN
	Signal string
	Bias   Value
}

// CodeBiasRecord is a CSSR subtype 4 body.
type CodeBiasRecord struct {
	Biases []CodeBias
}

// PhaseBias is one (satellite, signal) phase bias cell with its
// discontinuity indicator.
type PhaseBias struct {
	PRN           gnss.PRN
	Signal        string
	Bias          Value
	Discontinuity int
}

// PhaseBiasRecord is a CSSR subtype 5 body.
type PhaseBiasRecord struct {
	Biases []PhaseBias
}

// NetworkBiasEntry is one cell of a subtype 6 message; the code and phase
// fields are present according to the record's flags.
type NetworkBiasEntry struct {
	PRN           gnss.PRN
	Signal        string
	Code          Value
	Phase         Value
	Discontinuity int
}

// NetworkBiasRecord is a CSSR subtype 6 body.
type NetworkBiasRecord struct {
	CodeBias    bool
	PhaseBias   bool
	NetworkBias bool
	NetworkID   int
	Entries     []NetworkBiasEntry
}

// URAEntry is one satellite's user range accuracy class.
type URAEntry struct {
	PRN gnss.PRN
	URA int
}

// URARecord is a CSSR subtype 7 body.
type URARecord struct {
	Entries []URAEntry
}

// STECEntry carries the ionospheric polynomial of one satellite. Which
// coefficients are present depends on the correction type.
type STECEntry struct {
	PRN                          gnss.PRN
	Quality                      int
	C00, C01, C10, C11, C02, C20 Value
}

// STECRecord is a CSSR subtype 8 body.
type STECRecord struct {
	Type      int
	NetworkID int
	Entries   []STECEntry
}

// GridResidual is one satellite's ionospheric residual at a grid point.
type GridResidual struct {
	PRN      gnss.PRN
	Residual Value
}

// TropGrid is one grid point of a subtype 9 message: vertical delays plus
// the per-satellite STEC residuals.
type TropGrid struct {
	Dry       Value
	Wet       Value
	Residuals []GridResidual
}

// GriddedCorrectionRecord is a CSSR subtype 9 body.
type GriddedCorrectionRecord struct {
	Type      int
	NetworkID int
	Quality   int
	NGrid     int
	Grids     []TropGrid
}

// ServiceInfoRecord is a CSSR subtype 10 auxiliary data frame.
type ServiceInfoRecord struct {
	Counter int
	Data    []byte
}

// CombinedEntry is one satellite of a subtype 11 message.
type CombinedEntry struct {
	PRN                  gnss.PRN
	IODE                 int
	Radial, Along, Cross Value
	C0                   Value
}

// CombinedRecord is a CSSR subtype 11 body.
type CombinedRecord struct {
	Orbit     bool
	Clock     bool
	Network   bool
	NetworkID int
	Entries   []CombinedEntry
}

// AtmosSTEC is the per-satellite ionospheric part of a subtype 12 message.
type AtmosSTEC struct {
	PRN                          gnss.PRN
	Quality                      int
	Type                         int
	C00, C01, C10, C11, C02, C20 Value
	Residuals                    []Value
}

// AtmosRecord is a CSSR subtype 12 body.
type AtmosRecord struct {
	TropoAvail         uint8 // 2 bits: polynomial, residual grid
	STECAvail          uint8
	NetworkID          int
	NGrid              int
	TropoQuality       int
	TropoType          int
	T00, T01, T10, T11 Value
	ResidualOffset     float64
	TropoResiduals     []Value
	STEC               []AtmosSTEC
}

func (s *Session) decodeST2(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &OrbitRecord{}
	var b strings.Builder
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		bw := ms.IODEWidth()
		for _, prn := range ms.Sats {
			c := OrbitCorrection{PRN: prn}
			c.IODE = int(r.Uint(bw))
			c.Radial = scaled(r.Int(15), -16384, 0.0016)
			c.Along = scaled(r.Int(13), -16384, 0.0064)
			c.Cross = scaled(r.Int(13), -16384, 0.0064)
			if err := r.Err(); err != nil {
				return err
			}
			rec.Corrections = append(rec.Corrections, c)
			fmt.Fprintf(&b, "ST2 %s IODE=%4d d_radial=%7.4fm d_along=%7.4fm d_cross=%7.4fm\n",
				prn, c.IODE, c.Radial.Val, c.Along.Val, c.Cross.Val)
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return nil
}

func (s *Session) decodeST3(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &ClockRecord{}
	var b strings.Builder
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		for _, prn := range ms.Sats {
			c0 := scaled(r.Int(15), -16384, 0.0016)
			if err := r.Err(); err != nil {
				return err
			}
			rec.Corrections = append(rec.Corrections, ClockCorrection{PRN: prn, C0: c0})
			fmt.Fprintf(&b, "ST3 %s d_clock=%7.3fm\n", prn, c0.Val)
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return nil
}

func (s *Session) decodeST4(cur *bits.Cursor, msg *Message) error {
	_, nsigsat := s.mask.counts()
	if !cur.HasAtLeast(11 * nsigsat) {
		return fmt.Errorf("ssr: ST4 needs %d bits: %w", 11*nsigsat, bits.ErrInsufficientData)
	}
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &CodeBiasRecord{}
	var b strings.Builder
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
					return err
				}
				rec.Biases = append(rec.Biases, CodeBias{PRN: prn, Signal: sig, Bias: cb})
				fmt.Fprintf(&b, "ST4 %s %-13s code_bias=%7.3fm\n", prn, sig, cb.Val)
			}
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSig += cur.Pos() - statPos
	return nil
}

func (s *Session) decodeST5(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &PhaseBiasRecord{}
	var b strings.Builder
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
				pb := scaled(r.Int(15), -16384, 0.001)
				di := int(r.Uint(2))
				if err := r.Err(); err != nil {
					return err
				}
				rec.Biases = append(rec.Biases, PhaseBias{
					PRN: prn, Signal: sig, Bias: pb, Discontinuity: di,
				})
				fmt.Fprintf(&b, "ST5 %s %-13s phase_bias=%7.3fm discont_indicator=%d\n",
					prn, sig, pb.Val, di)
			}
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSig += cur.Pos() - statPos
	return nil
}

func (s *Session) decodeST6(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &NetworkBiasRecord{}
	rec.CodeBias = r.Bit()
	rec.PhaseBias = r.Bit()
	rec.NetworkBias = r.Bit()
	if err := r.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ST6 code_bias=%s phase_bias=%s network_bias=%s\n",
		onoff(rec.CodeBias), onoff(rec.PhaseBias), onoff(rec.NetworkBias))
	svmask, err := s.readSVMaskIf(r, rec.NetworkBias)
	if err != nil {
		return err
	}
	if rec.NetworkBias {
		rec.NetworkID = s.lastNetworkID
		fmt.Fprintf(&b, "ST6 NID=%d\n", rec.NetworkID)
	}
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		posMask := 0
		for j, prn := range ms.Sats {
			for _, sig := range ms.Signals {
				active := ms.CellMask[posMask]
				posMask++
				if !svmask[i][j] || !active {
					continue
				}
				e := NetworkBiasEntry{PRN: prn, Signal: sig}
				fmt.Fprintf(&b, "ST6 %s %-13s", prn, sig)
				if rec.CodeBias {
					e.Code = scaled(r.Int(11), -1024, 0.02)
					fmt.Fprintf(&b, " code_bias=%7.3fm", e.Code.Val)
				}
				if rec.PhaseBias {
					e.Phase = scaled(r.Int(15), -16384, 0.001)
					e.Discontinuity = int(r.Uint(2))
					fmt.Fprintf(&b, " phase_bias=%7.3fm discont_indi=%d",
						e.Phase.Val, e.Discontinuity)
				}
				if err := r.Err(); err != nil {
					return err
				}
				rec.Entries = append(rec.Entries, e)
				b.WriteString("\n")
			}
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos + 3
	s.Stats.BitSig += cur.Pos() - statPos - 3
	return nil
}

func (s *Session) decodeST7(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &URARecord{}
	var b strings.Builder
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		for _, prn := range ms.Sats {
			ura := int(r.Uint(6))
			if err := r.Err(); err != nil {
				return err
			}
			rec.Entries = append(rec.Entries, URAEntry{PRN: prn, URA: ura})
			fmt.Fprintf(&b, "ST7 %s URA %d\n", prn, ura)
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return nil
}

func (s *Session) decodeST8(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &STECRecord{}
	rec.Type = int(r.Uint(2))
	rec.NetworkID = int(r.Uint(5))
	svmask, err := s.readSVMask(r)
	if err != nil {
		return err
	}
	var b strings.Builder
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		for j, prn := range ms.Sats {
			if !svmask[i][j] {
				continue
			}
			e := STECEntry{PRN: prn}
			e.Quality = int(r.Uint(6))
			e.C00 = scaled(r.Int(14), -8192, 0.05)
			fmt.Fprintf(&b, "ST8 %s c00=%6.3fTECU", prn, e.C00.Val)
			if rec.Type >= 1 {
				e.C01 = scaled(r.Int(12), -2048, 0.02)
				e.C10 = scaled(r.Int(12), -2048, 0.02)
				fmt.Fprintf(&b, " c01=%6.3fTECU/deg c10=%6.3fTECU/deg", e.C01.Val, e.C10.Val)
			}
			if rec.Type >= 2 {
				e.C11 = scaled(r.Int(10), -512, 0.02)
				fmt.Fprintf(&b, " c11=%6.3fTECU/deg^2", e.C11.Val)
			}
			if rec.Type >= 3 {
				e.C02 = scaled(r.Int(8), -128, 0.005)
				e.C20 = scaled(r.Int(8), -128, 0.005)
				fmt.Fprintf(&b, " c02=%6.3fTECU/deg^2 c20=%6.3fTECU/deg^2", e.C02.Val, e.C20.Val)
			}
			if err := r.Err(); err != nil {
				return err
			}
			rec.Entries = append(rec.Entries, e)
			b.WriteString("\n")
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos + 7
	s.Stats.BitSat += cur.Pos() - statPos - 7
	return nil
}

func (s *Session) decodeST9(cur *bits.Cursor, msg *Message) error {
	r := bits.NewReader(cur)
	rec := &GriddedCorrectionRecord{}
	rec.Type = int(r.Uint(2))
	wideRange := r.Bit()
	bw, sentinel := 7, int64(-64)
	if wideRange {
		bw, sentinel = 16, -32767
	}
	rec.NetworkID = int(r.Uint(5))
	svmask, err := s.readSVMask(r)
	if err != nil {
		return err
	}
	rec.Quality = int(r.Uint(6))
	rec.NGrid = int(r.Uint(6))
	if err := r.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ST9 Trop correct_type=%d NID=%d quality=%d ngrid=%d\n",
		rec.Type, rec.NetworkID, rec.Quality, rec.NGrid)
	for i := 0; i < rec.NGrid; i++ {
		g := TropGrid{}
		g.Dry = scaled(r.Int(9), -256, 0.004)
		g.Wet = scaled(r.Int(8), -128, 0.004)
		if err := r.Err(); err != nil {
			return err
		}
		fmt.Fprintf(&b, "ST9 Trop     grid %2d/%2d dry-delay=%6.3fm wet-delay=%6.3fm\n",
			i+1, rec.NGrid, g.Dry.Val, g.Wet.Val)
		for j := range s.mask.Systems {
			ms := &s.mask.Systems[j]
			for k, prn := range ms.Sats {
				if !svmask[j][k] {
					continue
				}
				res := scaled(r.Int(bw), sentinel, 0.04)
				if err := r.Err(); err != nil {
					return err
				}
				g.Residuals = append(g.Residuals, GridResidual{PRN: prn, Residual: res})
				fmt.Fprintf(&b, "ST9 STEC %s grid %2d/%2d residual=%6.3fTECU (%dbit)\n",
					prn, i+1, rec.NGrid, res.Val, bw)
			}
		}
		rec.Grids = append(rec.Grids, g)
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += cur.Pos()
	return nil
}

func (s *Session) decodeST10(cur *bits.Cursor, msg *Message) error {
	r := bits.NewReader(cur)
	rec := &ServiceInfoRecord{}
	rec.Counter = int(r.Uint(3))
	idsize := int(r.Uint(2))
	dsize := (idsize + 1) * 40
	rec.Data = make([]byte, dsize/8)
	for i := range rec.Data {
		rec.Data[i] = byte(r.Uint(8))
	}
	if err := r.Err(); err != nil {
		return err
	}
	msg.Trace = fmt.Sprintf("ST10 %d:%s", rec.Counter, hex.EncodeToString(rec.Data))
	msg.Record = rec
	s.Stats.BitOther += cur.Pos()
	return nil
}

func (s *Session) decodeST11(cur *bits.Cursor, msg *Message) error {
	statPos := cur.Pos()
	r := bits.NewReader(cur)
	rec := &CombinedRecord{}
	rec.Orbit = r.Bit()
	rec.Clock = r.Bit()
	rec.Network = r.Bit()
	if err := r.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ST11 Orb=%s Clk=%s Net=%s\n",
		onoff(rec.Orbit), onoff(rec.Clock), onoff(rec.Network))
	if rec.Network {
		rec.NetworkID = int(r.Uint(5))
		fmt.Fprintf(&b, "ST11 NID=%d\n", rec.NetworkID)
		svmask, err := s.readSVMask(r)
		if err != nil {
			return err
		}
		for i := range s.mask.Systems {
			ms := &s.mask.Systems[i]
			for j, prn := range ms.Sats {
				if !svmask[i][j] {
					continue
				}
				e := CombinedEntry{PRN: prn}
				fmt.Fprintf(&b, "ST11 %s", prn)
				if rec.Orbit {
					e.IODE = int(r.Uint(ms.IODEWidth()))
					e.Radial = scaled(r.Int(15), -16384, 0.0016)
					e.Along = scaled(r.Int(13), -4096, 0.0064)
					e.Cross = scaled(r.Int(13), -4096, 0.0064)
					fmt.Fprintf(&b, " IODE=%4d d_radial=%7.4fm d_along=%7.4fm d_cross=%7.4fm",
						e.IODE, e.Radial.Val, e.Along.Val, e.Cross.Val)
				}
				if rec.Clock {
					e.C0 = scaled(r.Int(15), -16384, 0.0016)
					fmt.Fprintf(&b, " c0=%7.3fm", e.C0.Val)
				}
				if err := r.Err(); err != nil {
					return err
				}
				rec.Entries = append(rec.Entries, e)
				b.WriteString("\n")
			}
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos + 3
	s.Stats.BitSat += cur.Pos() - statPos - 3
	if rec.Network {
		// the network ID was counted as satellite bits above
		s.Stats.BitOther += 5
		s.Stats.BitSat -= 5
	}
	return nil
}

func (s *Session) decodeST12(cur *bits.Cursor, msg *Message) error {
	r := bits.NewReader(cur)
	rec := &AtmosRecord{}
	rec.TropoAvail = uint8(r.Uint(2))
	rec.STECAvail = uint8(r.Uint(2))
	rec.NetworkID = int(r.Uint(5))
	rec.NGrid = int(r.Uint(6))
	if err := r.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ST12 tropo=0b%02b stec=0b%02b NID=%d ngrid=%d\nST12 Trop",
		rec.TropoAvail, rec.STECAvail, rec.NetworkID, rec.NGrid)
	if rec.TropoAvail&0b10 != 0 { // polynomial part
		rec.TropoQuality = int(r.Uint(6))
		rec.TropoType = int(r.Uint(2))
		rec.T00 = scaled(r.Int(9), -256, 0.004)
		fmt.Fprintf(&b, " quality=%d correct_type(0-2)=%d t00=%.3fm",
			rec.TropoQuality, rec.TropoType, rec.T00.Val)
		if rec.TropoType >= 1 {
			rec.T01 = scaled(r.Int(7), -64, 0.002)
			rec.T10 = scaled(r.Int(7), -64, 0.002)
			fmt.Fprintf(&b, " t01=%.3fm/deg t10=%.3fm/deg", rec.T01.Val, rec.T10.Val)
		}
		if rec.TropoType >= 2 {
			rec.T11 = scaled(r.Int(7), -64, 0.001)
			fmt.Fprintf(&b, " t11=%.3fm/deg^2", rec.T11.Val)
		}
		if err := r.Err(); err != nil {
			return err
		}
		b.WriteString("\n")
	}
	if rec.TropoAvail&0b01 != 0 { // residual grid part
		wide := r.Bit()
		bw, sentinel := 6, int64(-32)
		if wide {
			bw, sentinel = 8, -128
		}
		rec.ResidualOffset = float64(r.Uint(4)) * 0.02
		if err := r.Err(); err != nil {
			return err
		}
		fmt.Fprintf(&b, "ST12 Trop offset=%.3fm\n", rec.ResidualOffset)
		if !cur.HasAtLeast(bw * rec.NGrid) {
			return fmt.Errorf("ssr: ST12 residual grid: %w", bits.ErrInsufficientData)
		}
		for i := 0; i < rec.NGrid; i++ {
			tr := scaled(r.Int(bw), sentinel, 0.004)
			rec.TropoResiduals = append(rec.TropoResiduals, tr)
			fmt.Fprintf(&b, "ST12 Trop grid %2d/%2d residual=%7.3fm (%dbit)\n",
				i+1, rec.NGrid, tr.Val, bw)
		}
	}
	statPos := cur.Pos()
	if rec.STECAvail&0b10 != 0 {
		svmask, err := s.readSVMask(r)
		if err != nil {
			return err
		}
		for i := range s.mask.Systems {
			ms := &s.mask.Systems[i]
			for j, prn := range ms.Sats {
				if !svmask[i][j] {
					continue
				}
				e := AtmosSTEC{PRN: prn}
				e.Quality = int(r.Uint(6))
				e.Type = int(r.Uint(2))
				e.C00 = scaled(r.Int(14), -8192, 0.05)
				fmt.Fprintf(&b, "ST12 STEC %s quality=%02x type=%d c00=%6.3fTECU",
					prn, e.Quality, e.Type, e.C00.Val)
				if e.Type >= 1 {
					e.C01 = scaled(r.Int(12), -2048, 0.02)
					e.C10 = scaled(r.Int(12), -2048, 0.02)
					fmt.Fprintf(&b, " c01=%6.3fTECU/deg c10=%6.3fTECU/deg", e.C01.Val, e.C10.Val)
				}
				if e.Type >= 2 {
					e.C11 = scaled(r.Int(10), -512, 0.02)
					fmt.Fprintf(&b, " c11=%6.3fTECU/deg^2", e.C11.Val)
				}
				if e.Type >= 3 {
					e.C02 = scaled(r.Int(8), -128, 0.005)
					e.C20 = scaled(r.Int(8), -128, 0.005)
					fmt.Fprintf(&b, " c02=%6.3fTECU/deg^2 c20=%6.3fTECU/deg^2", e.C02.Val, e.C20.Val)
				}
				b.WriteString("\n")
				srs := int(r.Uint(2))
				bw := [4]int{4, 4, 5, 7}[srs]
				lsb := [4]float64{0.04, 0.12, 0.16, 0.24}[srs]
				sentinel := [4]int64{-8, -8, -16, -64}[srs]
				for k := 0; k < rec.NGrid; k++ {
					sr := scaled(r.Int(bw), sentinel, lsb)
					e.Residuals = append(e.Residuals, sr)
					fmt.Fprintf(&b, "ST12 STEC %s grid %2d/%2d residual=%6.3fTECU (%dbit)\n",
						prn, k+1, rec.NGrid, sr.Val, bw)
				}
				if err := r.Err(); err != nil {
					return err
				}
				rec.STEC = append(rec.STEC, e)
			}
		}
	}
	msg.Trace = b.String()
	msg.Record = rec
	s.Stats.BitOther += statPos
	s.Stats.BitSat += cur.Pos() - statPos
	return nil
}

func onoff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// readSVMask reads one satellite subset mask per masked GNSS, aligned with
// the mask's system order.
func (s *Session) readSVMask(r *bits.Reader) ([][]bool, error) {
	svmask := make([][]bool, len(s.mask.Systems))
	for i := range s.mask.Systems {
		ms := &s.mask.Systems[i]
		svmask[i] = make([]bool, len(ms.Sats))
		for j := range svmask[i] {
			svmask[i][j] = r.Bit()
		}
	}
	return svmask, r.Err()
}

// readSVMaskIf reads the network ID and subset mask when present is set;
// otherwise it synthesizes an all-ones mask so that every masked satellite
// participates.
func (s *Session) readSVMaskIf(r *bits.Reader, present bool) ([][]bool, error) {
	if present {
		s.lastNetworkID = int(r.Uint(5))
		return s.readSVMask(r)
	}
	svmask := make([][]bool, len(s.mask.Systems))
	for i := range s.mask.Systems {
		svmask[i] = make([]bool, len(s.mask.Systems[i].Sats))
		for j := range svmask[i] {
			svmask[i][j] = true
		}
	}
	return svmask, nil
}
