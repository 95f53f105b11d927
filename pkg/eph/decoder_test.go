package eph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
)

// bitBuilder assembles MSB-first bit-packed payloads for tests.
type bitBuilder struct {
	buf  []byte
	nbit int
}

func (b *bitBuilder) put(v uint64, n int) *bitBuilder {
	for i := n - 1; i >= 0; i-- {
		if b.nbit%8 == 0 {
			b.buf = append(b.buf, 0)
		}
		if v>>uint(i)&1 != 0 {
			b.buf[b.nbit/8] |= 1 << uint(7-b.nbit%8)
		}
		b.nbit++
	}
	return b
}

// sm encodes a sign-magnitude value into its n-bit wire form.
func sm(v int64, n int) uint64 {
	if v < 0 {
		return 1<<uint(n-1) | uint64(-v)
	}
	return uint64(v)
}

func buildGPS(svh uint64) []byte {
	b := &bitBuilder{}
	b.put(1, 6)            // svid
	b.put(1000, 10)        // week
	b.put(0, 4)            // URA
	b.put(1, 2)            // L2 code: P
	b.put(0, 14)           // IDOT
	b.put(17, 8)           // IODE
	b.put(100, 16)         // toc
	b.put(0, 8)            // af2
	b.put(0, 16)           // af1
	b.put(1<<22-1, 22)     // af0 = -1 raw
	b.put(33, 10)          // IODC
	b.put(0, 16)           // crs
	b.put(0, 16)           // dn
	b.put(0, 32)           // m0
	b.put(0, 16)           // cuc
	b.put(1<<31, 32)       // e
	b.put(0, 16)           // cus
	b.put(0, 32)           // sqrtA
	b.put(0, 16)           // toe
	b.put(0, 16).put(0, 32) // cic, omg0
	b.put(0, 16).put(0, 32) // cis, i0
	b.put(0, 16).put(0, 32) // crc, omg
	b.put(0, 24)           // omgd
	b.put(0, 8)            // tgd
	b.put(svh, 6)          // health
	b.put(0, 1).put(0, 1)  // L2P flag, fit interval
	return b.buf
}

func TestDecodeGPS(t *testing.T) {
	cur := bits.NewCursor(buildGPS(0))
	e, msg, err := Decode(cur, gnss.SysGPS, NavNone)
	assert.NoError(t, err)
	assert.Equal(t, 476, cur.Pos())
	assert.Equal(t, "G01 WN=1000 IODE=17   IODC=33   L2P", msg)

	g := e.(*EphGPS)
	assert.Equal(t, "G01", g.GetPRN().String())
	assert.Equal(t, 1000, g.Week)
	assert.Equal(t, 17, g.IODE)
	assert.Equal(t, 1600.0, g.Toc)
	assert.Equal(t, -p2_31, g.Af0, "raw -1 scales, it is not a sentinel")
	assert.InDelta(t, 0.25, g.Ecc, 1e-9)
	assert.False(t, g.Unhealthy())
	assert.NoError(t, g.Validate())
}

func TestDecodeGPS_Unhealthy(t *testing.T) {
	cur := bits.NewCursor(buildGPS(0x2a))
	e, msg, err := Decode(cur, gnss.SysGPS, NavNone)
	assert.NoError(t, err)
	assert.Equal(t, "G01 WN=1000 IODE=17   IODC=33   L2P unhealthy(2a)", msg)
	assert.True(t, e.Unhealthy())
}

func TestDecodeGPS_Truncated(t *testing.T) {
	full := buildGPS(0)
	cur := bits.NewCursor(full[:len(full)-2])
	_, _, err := Decode(cur, gnss.SysGPS, NavNone)
	assert.ErrorIs(t, err, bits.ErrInsufficientData)
}

func TestDecodeGLO(t *testing.T) {
	b := &bitBuilder{}
	b.put(5, 6)   // svid
	b.put(12, 5)  // freq channel
	b.put(1, 1)   // almanac health: unhealthy
	b.put(0, 1)   // almanac health availability
	b.put(0, 2)   // P1
	b.put(3153, 12) // tk
	b.put(0, 1)   // B_n
	b.put(0, 1)   // P2
	b.put(4, 7)   // tb
	b.put(sm(2, 24), 24)  // x vel
	b.put(sm(-1, 27), 27) // x pos
	b.put(0, 5)           // x acc
	b.put(0, 24).put(0, 27).put(0, 5) // y
	b.put(0, 24).put(0, 27).put(0, 5) // z
	b.put(0, 1)            // P3
	b.put(sm(-1, 11), 11)  // gamma
	b.put(0, 2).put(0, 1)  // P, ln
	b.put(0, 22).put(0, 5) // tau, dtau
	b.put(0, 5).put(0, 1).put(0, 4) // En, P4, Ft
	b.put(0, 11).put(0, 2).put(0, 1).put(0, 11) // Nt, M, add, Na
	b.put(0, 32).put(0, 5).put(0, 22).put(0, 1) // tauC, N4, tauGPS, ln
	b.put(0, 7) // reserved

	cur := bits.NewCursor(b.buf)
	e, msg, err := Decode(cur, gnss.SysGLO, NavNone)
	assert.NoError(t, err)
	assert.Equal(t, 348, cur.Pos())
	assert.Equal(t, "R05 f=12 tk=17:34:45 tb=60min unhealthy", msg)

	g := e.(*EphGLO)
	assert.Equal(t, 2*p2_20*1e3, g.Vel[0])
	assert.Equal(t, -p2_11*1e3, g.Pos[0], "sign-magnitude, not two's complement")
	assert.Equal(t, -p2_40, g.Gamma)
	assert.True(t, g.Unhealthy())
}

func buildGALFNAV(osh, osv uint64) []byte {
	b := &bitBuilder{}
	b.put(3, 6)    // svid
	b.put(900, 12) // week
	b.put(77, 10)  // IODnav
	b.put(100, 8)  // SISA
	b.put(0, 14)   // IDOT
	b.put(10, 14)  // toc
	b.put(0, 6).put(0, 21).put(0, 31) // af2, af1, af0
	b.put(0, 16).put(0, 16).put(0, 32) // crs, dn, m0
	b.put(0, 16).put(0, 32).put(0, 16) // cuc, e, cus
	b.put(0, 32).put(0, 14)            // sqrtA, toe
	b.put(0, 16).put(0, 32)            // cic, omg0
	b.put(0, 16).put(0, 32)            // cis, i0
	b.put(0, 16).put(0, 32).put(0, 24) // crc, omg, omgd
	b.put(0, 10)                       // BGD E5a
	b.put(osh, 2).put(osv, 1)          // OS health, OS validity
	b.put(0, 7)                        // reserved
	return b.buf
}

func TestDecodeGAL_FNAV(t *testing.T) {
	cur := bits.NewCursor(buildGALFNAV(0, 0))
	e, msg, err := Decode(cur, gnss.SysGAL, NavFNAV)
	assert.NoError(t, err)
	assert.Equal(t, 484, cur.Pos())
	assert.Equal(t, "E03 WN=900 IODnav=77", msg)

	g := e.(*EphGAL)
	assert.Equal(t, NavFNAV, g.NavType)
	assert.Equal(t, 600.0, g.Toc)
	assert.False(t, g.Unhealthy())

	cur = bits.NewCursor(buildGALFNAV(1, 1))
	e, msg, err = Decode(cur, gnss.SysGAL, NavFNAV)
	assert.NoError(t, err)
	assert.Equal(t, "E03 WN=900 IODnav=77 unhealthy OS (1) invalid OS", msg)
	assert.True(t, e.Unhealthy())
}

func TestDecodeGAL_UnknownNavType(t *testing.T) {
	cur := bits.NewCursor(buildGALFNAV(0, 0))
	_, _, err := Decode(cur, gnss.SysGAL, NavNone)
	assert.ErrorIs(t, err, ErrUnknownNavType)
}

func buildQZSS(svh uint64) []byte {
	b := &bitBuilder{}
	b.put(1, 4)                                  // svid
	b.put(0, 16).put(0, 8).put(0, 16).put(0, 22) // toc, af2, af1, af0
	b.put(240, 8)                                // IODE
	b.put(0, 16).put(0, 16).put(0, 32)           // crs, dn, m0
	b.put(0, 16).put(0, 32).put(0, 16)           // cuc, e, cus
	b.put(0, 32).put(0, 16)                      // sqrtA, toe
	b.put(0, 16).put(0, 32)                      // cic, omg0
	b.put(0, 16).put(0, 32)                      // cis, i0
	b.put(0, 16).put(0, 32).put(0, 24)           // crc, omg, omgd
	b.put(0, 14)                                 // idot
	b.put(0, 2)                                  // L2 code
	b.put(800, 10)                               // week
	b.put(0, 4)                                  // URA
	b.put(svh, 6)                                // health
	b.put(0, 8)                                  // tgd
	b.put(240, 10)                               // IODC
	b.put(0, 1)                                  // fit interval
	return b.buf
}

func TestDecodeQZSS_Health(t *testing.T) {
	tests := []struct {
		name string
		svh  uint64
		want string
	}{
		{"healthy", 0, "J01 WN=800 IODE=240  IODC=240 "},
		{"L1CA and L2C unusable", 0b011000,
			"J01 WN=800 IODE=240  IODC=240  unhealthy (L1C/A L2C)"},
		{"L1 unusable, no signal listed", 0b100000,
			"J01 WN=800 IODE=240  IODC=240  unhealthy ()"},
		{"healthy, transmitting L1C/B", 0b010000,
			"J01 WN=800 IODE=240  IODC=240  L1C/B"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cur := bits.NewCursor(buildQZSS(tc.svh))
			_, msg, err := Decode(cur, gnss.SysQZSS, NavNone)
			assert.NoError(t, err)
			assert.Equal(t, 473, cur.Pos())
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestDecodeBDS(t *testing.T) {
	b := &bitBuilder{}
	b.put(6, 6)    // svid
	b.put(700, 13) // week
	b.put(0, 4)    // URA index
	b.put(0, 14)   // IDOT
	b.put(11, 5)   // AODE
	b.put(10, 17)  // toc
	b.put(0, 11).put(0, 22).put(0, 24) // af2, af1, af0
	b.put(0, 5)                        // AODC
	b.put(0, 18).put(0, 16).put(0, 32) // crs, dn, m0
	b.put(0, 18).put(0, 32).put(0, 18) // cuc, e, cus
	b.put(0, 32).put(0, 17)            // sqrtA, toe
	b.put(0, 18).put(0, 32)            // cic, omg0
	b.put(0, 18).put(0, 32)            // cis, i0
	b.put(0, 18).put(0, 32).put(0, 24) // crc, omg, omgd
	b.put(0, 10).put(0, 10)            // tgd1, tgd2
	b.put(1, 1)                        // health

	cur := bits.NewCursor(b.buf)
	e, msg, err := Decode(cur, gnss.SysBDS, NavNone)
	assert.NoError(t, err)
	assert.Equal(t, 499, cur.Pos())
	assert.Equal(t, "C06 WN=700 AODE=11 unhealthy", msg)
	assert.Equal(t, 80.0, e.(*EphBDS).Toc)
}

func TestDecodeNavIC(t *testing.T) {
	b := &bitBuilder{}
	b.put(2, 6)    // svid
	b.put(123, 10) // week
	b.put(0, 22).put(0, 16).put(0, 8) // af0, af1, af2
	b.put(0, 4)    // URA
	b.put(0, 16)   // toc
	b.put(0, 8)    // tgd
	b.put(0, 22)   // dn
	b.put(200, 8)  // IODEC
	b.put(0, 10)   // reserved
	b.put(0, 1).put(0, 1) // L5, S health
	b.put(0, 15).put(0, 15).put(0, 15).put(0, 15) // cuc, cus, cic, cis
	b.put(0, 15).put(0, 15)                       // crc, crs
	b.put(0, 14).put(0, 32).put(0, 16)            // idot, m0, toe
	b.put(0, 32).put(0, 32)                       // e, sqrtA
	b.put(0, 32).put(0, 32).put(0, 22).put(0, 32) // omg0, omg, omgd, i0
	b.put(0, 2).put(0, 2)                         // spare

	cur := bits.NewCursor(b.buf)
	e, msg, err := Decode(cur, gnss.SysNavIC, NavNone)
	assert.NoError(t, err)
	assert.Equal(t, 470, cur.Pos())
	assert.Equal(t, "I02 WN=123 IODEC=200 ", msg)
	assert.False(t, e.Unhealthy())
}

func TestDecode_UnknownSystem(t *testing.T) {
	cur := bits.NewCursor(make([]byte, 64))
	_, _, err := Decode(cur, gnss.SysSBAS, NavNone)
	assert.ErrorIs(t, err, ErrUnknownSystem)
}
