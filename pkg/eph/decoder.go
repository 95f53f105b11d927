package eph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// errors
var (
	// ErrUnknownSystem is returned for satellite systems without a broadcast
	// ephemeris message.
	ErrUnknownSystem = errors.New("eph: unknown satellite system")

	// ErrUnknownNavType is returned when a Galileo decode is requested
	// without a valid navigation message type.
	ErrUnknownNavType = errors.New("eph: unknown Galileo nav message type")
)

// SC2RAD converts semi-circles to radians.
const SC2RAD = 3.1415926535898

// Scale factors per RTCM 10403.3. The table is a literal contract; do not
// re-derive the exponents.
const (
	p2_5  = 0.03125
	p2_6  = 0.015625
	p2_11 = 4.882812500000000e-04
	p2_19 = 1.907348632812500e-06
	p2_20 = 9.536743164062500e-07
	p2_28 = 3.725290298461914e-09
	p2_29 = 1.862645149230957e-09
	p2_30 = 9.313225746154785e-10
	p2_31 = 4.656612873077393e-10
	p2_32 = 2.328306436538696e-10
	p2_33 = 1.164153218269348e-10
	p2_34 = 5.820766091346741e-11
	p2_40 = 9.094947017729282e-13
	p2_41 = 4.547473508864641e-13
	p2_43 = 1.136868377216160e-13
	p2_46 = 1.421085471520200e-14
	p2_50 = 8.881784197001252e-16
	p2_55 = 2.775557561562891e-17
	p2_59 = 1.734723475976807e-18
	p2_66 = 1.355252715606880e-20
)

// Decode reads one broadcast ephemeris from cur. The cursor must be
// positioned after the 12-bit message number. For Galileo the nav type
// selects between the F/NAV and I/NAV layouts; other systems ignore it.
// The returned trace line summarizes the record including health
// annotations for the display collaborator.
func Decode(cur *bits.Cursor, sys gnss.System, nav NavType) (Eph, string, error) {
	switch sys {
	case gnss.SysGPS:
		return decodeGPS(cur)
	case gnss.SysGLO:
		return decodeGLO(cur)
	case gnss.SysGAL:
		return decodeGAL(cur, nav)
	case gnss.SysQZSS:
		return decodeQZSS(cur)
	case gnss.SysBDS:
		return decodeBDS(cur)
	case gnss.SysNavIC:
		return decodeNavIC(cur)
	}
	return nil, "", fmt.Errorf("%w: %v", ErrUnknownSystem, sys)
}

func decodeGPS(cur *bits.Cursor) (Eph, string, error) {
	r := bits.NewReader(cur)
	e := &EphGPS{}
	e.PRN = gnss.PRN{Sys: gnss.SysGPS, Num: int(r.Uint(6))} // DF009
	e.Week = int(r.Uint(10))                                // DF076
	e.URA = int(r.Uint(4))                                  // DF077
	e.CodeL2 = uint8(r.Uint(2))                             // DF078
	e.IDOT = float64(r.Int(14)) * p2_43 * SC2RAD            // DF079
	e.IODE = int(r.Uint(8))                                 // DF071
	e.Toc = float64(r.Uint(16)) * 16                        // DF081
	e.Af2 = float64(r.Int(8)) * p2_55                       // DF082
	e.Af1 = float64(r.Int(16)) * p2_43                      // DF083
	e.Af0 = float64(r.Int(22)) * p2_31                      // DF084
	e.IODC = int(r.Uint(10))                                // DF085
	e.Crs = float64(r.Int(16)) * p2_5                       // DF086
	e.DeltaN = float64(r.Int(16)) * p2_43 * SC2RAD          // DF087
	e.M0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF088
	e.Cuc = float64(r.Int(16)) * p2_29                      // DF089
	e.Ecc = float64(r.Uint(32)) * p2_33                     // DF090
	e.Cus = float64(r.Int(16)) * p2_29                      // DF091
	e.SqrtA = float64(r.Uint(32)) * p2_19                   // DF092
	e.Toe = float64(r.Uint(16)) * 16                        // DF093
	e.Cic = float64(r.Int(16)) * p2_29                      // DF094
	e.Omega0 = float64(r.Int(32)) * p2_31 * SC2RAD          // DF095
	e.Cis = float64(r.Int(16)) * p2_29                      // DF096
	e.I0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF097
	e.Crc = float64(r.Int(16)) * p2_5                       // DF098
	e.Omega = float64(r.Int(32)) * p2_31 * SC2RAD           // DF099
	e.OmegaDot = float64(r.Int(24)) * p2_43 * SC2RAD        // DF100
	e.TGD = float64(r.Int(8)) * p2_31                       // DF101
	e.Health = uint8(r.Uint(6))                             // DF102
	e.L2PFlag = r.Bit()                                     // DF103
	e.FitInterval = r.Bit()                                 // DF137
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("G%02d WN=%d IODE=%-4d IODC=%-4d", e.PRN.Num, e.Week, e.IODE, e.IODC)
	switch e.CodeL2 {
	case 1:
		msg += " L2P"
	case 2:
		msg += " L2C/A"
	case 3:
		msg += " L2C"
	default:
		msg += fmt.Sprintf("unknown L2 code: %d", e.CodeL2)
	}
	if e.Health != 0 {
		msg += fmt.Sprintf(" unhealthy(%02x)", e.Health)
	}
	return e, msg, nil
}

func decodeGLO(cur *bits.Cursor) (Eph, string, error) {
	r := bits.NewReader(cur)
	e := &EphGLO{}
	e.PRN = gnss.PRN{Sys: gnss.SysGLO, Num: int(r.Uint(6))} // DF038
	e.FreqChan = int(r.Uint(5))                             // DF040
	e.Health = r.Bit()                                      // DF104
	e.AlmHealthAvail = r.Bit()                              // DF105
	e.P1 = uint8(r.Uint(2))                                 // DF106
	e.Tk = uint16(r.Uint(12))                               // DF107
	e.Bn = r.Bit()                                          // DF108
	e.P2 = r.Bit()                                          // DF109
	e.Tb = int(r.Uint(7))                                   // DF110
	e.Vel[0] = float64(r.SignMag(24)) * p2_20 * 1e3         // DF111
	e.Pos[0] = float64(r.SignMag(27)) * p2_11 * 1e3         // DF112
	e.Acc[0] = float64(r.SignMag(5)) * 1e3 / (1 << 30)      // DF113
	e.Vel[1] = float64(r.SignMag(24)) * p2_20 * 1e3         // DF114
	e.Pos[1] = float64(r.SignMag(27)) * p2_11 * 1e3         // DF115
	e.Acc[1] = float64(r.SignMag(5)) * 1e3 / (1 << 30)      // DF116
	e.Vel[2] = float64(r.SignMag(24)) * p2_20 * 1e3         // DF117
	e.Pos[2] = float64(r.SignMag(27)) * p2_11 * 1e3         // DF118
	e.Acc[2] = float64(r.SignMag(5)) * 1e3 / (1 << 30)      // DF119
	e.P3 = r.Bit()                                          // DF120
	e.Gamma = float64(r.SignMag(11)) * p2_40                // DF121
	e.P = uint8(r.Uint(2))                                  // DF122
	e.In3 = r.Bit()                                         // DF123
	e.Tau = float64(r.SignMag(22)) * p2_30                  // DF124
	e.DTau = float64(r.SignMag(5)) * p2_30                  // DF125
	e.En = int(r.Uint(5))                                   // DF126
	e.P4 = r.Bit()                                          // DF127
	e.Ft = int(r.Uint(4))                                   // DF128
	e.Nt = int(r.Uint(11))                                  // DF129
	e.M = uint8(r.Uint(2))                                  // DF130
	e.Add = r.Bit()                                         // DF131
	e.Na = int(r.Uint(11))                                  // DF132
	e.TauC = float64(r.SignMag(32)) * p2_31                 // DF133
	e.N4 = int(r.Uint(5))                                   // DF134
	e.TauGPS = float64(r.SignMag(22)) * p2_30               // DF135
	e.In5 = r.Bit()                                         // DF136
	r.Skip(7)                                               // reserved
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	hh, mm, ss := e.TkTime()
	msg := fmt.Sprintf("R%02d f=%02d tk=%02d:%02d:%02d tb=%dmin",
		e.PRN.Num, e.FreqChan, hh, mm, ss, e.Tb*15)
	if e.Health {
		msg += " unhealthy"
	}
	return e, msg, nil
}

func decodeGAL(cur *bits.Cursor, nav NavType) (Eph, string, error) {
	if nav != NavFNAV && nav != NavINAV {
		return nil, "", fmt.Errorf("%w: %d", ErrUnknownNavType, nav)
	}
	r := bits.NewReader(cur)
	e := &EphGAL{NavType: nav}
	e.PRN = gnss.PRN{Sys: gnss.SysGAL, Num: int(r.Uint(6))} // DF252
	e.Week = int(r.Uint(12))                                // DF289
	e.IODnav = int(r.Uint(10))                              // DF290
	e.SISA = int(r.Uint(8))                                 // DF291
	e.IDOT = float64(r.Int(14)) * p2_43 * SC2RAD            // DF292
	e.Toc = float64(r.Uint(14)) * 60                        // DF293
	e.Af2 = float64(r.Int(6)) * p2_59                       // DF294
	e.Af1 = float64(r.Int(21)) * p2_46                      // DF295
	e.Af0 = float64(r.Int(31)) * p2_34                      // DF296
	e.Crs = float64(r.Int(16)) * p2_5                       // DF297
	e.DeltaN = float64(r.Int(16)) * p2_43 * SC2RAD          // DF298
	e.M0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF299
	e.Cuc = float64(r.Int(16)) * p2_29                      // DF300
	e.Ecc = float64(r.Uint(32)) * p2_33                     // DF301
	e.Cus = float64(r.Int(16)) * p2_29                      // DF302
	e.SqrtA = float64(r.Uint(32)) * p2_19                   // DF303
	e.Toe = float64(r.Uint(14)) * 60                        // DF304
	e.Cic = float64(r.Int(16)) * p2_29                      // DF305
	e.Omega0 = float64(r.Int(32)) * p2_31 * SC2RAD          // DF306
	e.Cis = float64(r.Int(16)) * p2_29                      // DF307
	e.I0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF308
	e.Crc = float64(r.Int(16)) * p2_5                       // DF309
	e.Omega = float64(r.Int(32)) * p2_31 * SC2RAD           // DF310
	e.OmegaDot = float64(r.Int(24)) * p2_43 * SC2RAD        // DF311
	e.BGDE5a = float64(r.Int(10)) * p2_32                   // DF312
	switch nav {
	case NavFNAV:
		e.HealthOS = uint8(r.Uint(2)) // DF314
		e.ValidOS = r.Bit()           // DF315
		r.Skip(7)                     // reserved
	case NavINAV:
		e.BGDE5b = float64(r.Int(10)) * p2_32 // DF313
		e.HealthE5b = uint8(r.Uint(2))        // DF316
		e.ValidE5b = r.Bit()                  // DF317
		e.HealthE1B = uint8(r.Uint(2))        // DF287
		e.ValidE1B = r.Bit()                  // DF288
		r.Skip(2)                             // reserved
	}
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("E%02d WN=%d IODnav=%d", e.PRN.Num, e.Week, e.IODnav)
	if nav == NavFNAV {
		if e.HealthOS != 0 {
			msg += fmt.Sprintf(" unhealthy OS (%d)", e.HealthOS)
		}
		if e.ValidOS {
			msg += " invalid OS"
		}
	} else {
		if e.HealthE5b != 0 {
			msg += fmt.Sprintf(" unhealthy E5b (%d)", e.HealthE5b)
		}
		if e.ValidE5b {
			msg += " invalid E5b"
		}
		if e.HealthE1B != 0 {
			msg += fmt.Sprintf(" unhealthy E1b (%d)", e.HealthE1B)
		}
		if e.ValidE1B {
			msg += " invalid E1b"
		}
	}
	return e, msg, nil
}

func decodeQZSS(cur *bits.Cursor) (Eph, string, error) {
	r := bits.NewReader(cur)
	e := &EphQZSS{}
	e.PRN = gnss.PRN{Sys: gnss.SysQZSS, Num: int(r.Uint(4))} // DF429
	e.Toc = float64(r.Uint(16)) * 16                         // DF430
	e.Af2 = float64(r.Int(8)) * p2_55                        // DF431
	e.Af1 = float64(r.Int(16)) * p2_43                       // DF432
	e.Af0 = float64(r.Int(22)) * p2_31                       // DF433
	e.IODE = int(r.Uint(8))                                  // DF434
	e.Crs = float64(r.Int(16)) * p2_5                        // DF435
	e.DeltaN = float64(r.Int(16)) * p2_43 * SC2RAD           // DF436
	e.M0 = float64(r.Int(32)) * p2_31 * SC2RAD               // DF437
	e.Cuc = float64(r.Int(16)) * p2_29                       // DF438
	e.Ecc = float64(r.Uint(32)) * p2_33                      // DF439
	e.Cus = float64(r.Int(16)) * p2_29                       // DF440
	e.SqrtA = float64(r.Uint(32)) * p2_19                    // DF441
	e.Toe = float64(r.Uint(16)) * 16                         // DF442
	e.Cic = float64(r.Int(16)) * p2_29                       // DF443
	e.Omega0 = float64(r.Int(32)) * p2_31 * SC2RAD           // DF444
	e.Cis = float64(r.Int(16)) * p2_29                       // DF445
	e.I0 = float64(r.Int(32)) * p2_31 * SC2RAD               // DF446
	e.Crc = float64(r.Int(16)) * p2_5                        // DF447
	e.Omega = float64(r.Int(32)) * p2_31 * SC2RAD            // DF448
	e.OmegaDot = float64(r.Int(24)) * p2_43 * SC2RAD         // DF449
	e.IDOT = float64(r.Int(14)) * p2_43 * SC2RAD             // DF450
	e.CodeL2 = uint8(r.Uint(2))                              // DF451
	e.Week = int(r.Uint(10))                                 // DF452
	e.URA = int(r.Uint(4))                                   // DF453
	e.Health = uint8(r.Uint(6))                              // DF454
	e.TGD = float64(r.Int(8)) * p2_31                        // DF455
	e.IODC = int(r.Uint(10))                                 // DF456
	e.FitInterval = r.Bit()                                  // DF457
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("J%02d WN=%d IODE=%-4d IODC=%-4d", e.PRN.Num, e.Week, e.IODE, e.IODC)
	if e.Unhealthy() {
		msg += fmt.Sprintf(" unhealthy (%s)", strings.Join(e.UnhealthySignals(), " "))
	} else if e.Health&0b100000 == 0 { // L1 signal is healthy
		if e.Health&0b010000 != 0 {
			msg += " L1C/B" // transmitting L1C/B
		}
		if e.Health&0b000001 != 0 {
			msg += " L1C/A" // transmitting L1C/A
		}
	}
	return e, msg, nil
}

func decodeBDS(cur *bits.Cursor) (Eph, string, error) {
	r := bits.NewReader(cur)
	e := &EphBDS{}
	e.PRN = gnss.PRN{Sys: gnss.SysBDS, Num: int(r.Uint(6))} // DF488
	e.Week = int(r.Uint(13))                                // DF489
	e.URA = int(r.Uint(4))                                  // DF490
	e.IDOT = float64(r.Int(14)) * p2_43 * SC2RAD            // DF491
	e.AODE = int(r.Uint(5))                                 // DF492
	e.Toc = float64(r.Uint(17)) * 8                         // DF493
	e.Af2 = float64(r.Int(11)) * p2_66                      // DF494
	e.Af1 = float64(r.Int(22)) * p2_50                      // DF495
	e.Af0 = float64(r.Int(24)) * p2_33                      // DF496
	e.AODC = int(r.Uint(5))                                 // DF497
	e.Crs = float64(r.Int(18)) * p2_6                       // DF498
	e.DeltaN = float64(r.Int(16)) * p2_43 * SC2RAD          // DF499
	e.M0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF500
	e.Cuc = float64(r.Int(18)) * p2_31                      // DF501
	e.Ecc = float64(r.Uint(32)) * p2_33                     // DF502
	e.Cus = float64(r.Int(18)) * p2_31                      // DF503
	e.SqrtA = float64(r.Uint(32)) * p2_19                   // DF504
	e.Toe = float64(r.Uint(17)) * 8                         // DF505
	e.Cic = float64(r.Int(18)) * p2_31                      // DF506
	e.Omega0 = float64(r.Int(32)) * p2_31 * SC2RAD          // DF507
	e.Cis = float64(r.Int(18)) * p2_31                      // DF508
	e.I0 = float64(r.Int(32)) * p2_31 * SC2RAD              // DF509
	e.Crc = float64(r.Int(18)) * p2_6                       // DF510
	e.Omega = float64(r.Int(32)) * p2_31 * SC2RAD           // DF511
	e.OmegaDot = float64(r.Int(24)) * p2_43 * SC2RAD        // DF512
	e.TGD1 = float64(r.Int(10)) * 1e-10                     // DF513
	e.TGD2 = float64(r.Int(10)) * 1e-10                     // DF514
	e.Health = r.Bit()                                      // DF515
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("C%02d WN=%d AODE=%d", e.PRN.Num, e.Week, e.AODE)
	if e.Health {
		msg += " unhealthy"
	}
	return e, msg, nil
}

func decodeNavIC(cur *bits.Cursor) (Eph, string, error) {
	r := bits.NewReader(cur)
	e := &EphNavIC{}
	e.PRN = gnss.PRN{Sys: gnss.SysNavIC, Num: int(r.Uint(6))} // DF516
	e.Week = int(r.Uint(10))                                  // DF517
	e.Af0 = float64(r.Int(22)) * p2_31                        // DF518
	e.Af1 = float64(r.Int(16)) * p2_43                        // DF519
	e.Af2 = float64(r.Int(8)) * p2_55                         // DF520
	e.URA = int(r.Uint(4))                                    // DF521
	e.Toc = float64(r.Uint(16)) * 16                          // DF522
	e.TGD = float64(r.Int(8)) * p2_31                         // DF523
	e.DeltaN = float64(r.Int(22)) * p2_41 * SC2RAD            // DF524
	e.IODEC = int(r.Uint(8))                                  // DF525
	r.Skip(10)                                                // reserved, DF526
	e.HealthL5 = r.Bit()                                      // DF527
	e.HealthS = r.Bit()                                       // DF528
	e.Cuc = float64(r.Int(15)) * p2_28                        // DF529
	e.Cus = float64(r.Int(15)) * p2_28                        // DF530
	e.Cic = float64(r.Int(15)) * p2_28                        // DF531
	e.Cis = float64(r.Int(15)) * p2_28                        // DF532
	e.Crc = float64(r.Int(15)) * 0.0625                       // DF533
	e.Crs = float64(r.Int(15)) * 0.0625                       // DF534
	e.IDOT = float64(r.Int(14)) * p2_43 * SC2RAD              // DF535
	e.M0 = float64(r.Int(32)) * p2_31 * SC2RAD                // DF536
	e.Toe = float64(r.Uint(16)) * 16                          // DF537
	e.Ecc = float64(r.Uint(32)) * p2_33                       // DF538
	e.SqrtA = float64(r.Uint(32)) * p2_19                     // DF539
	e.Omega0 = float64(r.Int(32)) * p2_31 * SC2RAD            // DF540
	e.Omega = float64(r.Int(32)) * p2_31 * SC2RAD             // DF541
	e.OmegaDot = float64(r.Int(22)) * p2_41 * SC2RAD          // DF542
	e.I0 = float64(r.Int(32)) * p2_31 * SC2RAD                // DF543
	r.Skip(2)                                                 // spare, DF544
	r.Skip(2)                                                 // spare, DF545
	if err := r.Err(); err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("I%02d WN=%d IODEC=%-4d", e.PRN.Num, e.Week, e.IODEC)
	if e.HealthL5 || e.HealthS {
		msg += " unhealthy"
		if e.HealthL5 {
			msg += " L5"
		}
		if e.HealthS {
			msg += " S"
		}
	}
	return e, msg, nil
}
