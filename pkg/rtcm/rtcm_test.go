package rtcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnssnet/qzsl6tool/pkg/bits"
	"github.com/gnssnet/qzsl6tool/pkg/eph"
	"github.com/gnssnet/qzsl6tool/pkg/gnss"
	"github.com/gnssnet/qzsl6tool/pkg/ssr"
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

func (b *bitBuilder) putInt(v int64, n int) *bitBuilder {
	return b.put(uint64(v)&(1<<uint(n)-1), n)
}

func gpsEphPayload() []byte {
	b := &bitBuilder{}
	b.put(1019, 12)
	b.put(1, 6)             // svid
	b.put(1000, 10)         // week
	b.put(0, 4)             // URA
	b.put(1, 2)             // L2 code: P
	b.put(0, 14)            // IDOT
	b.put(17, 8)            // IODE
	b.put(100, 16)          // toc
	b.put(0, 8)             // af2
	b.put(0, 16)            // af1
	b.put(0, 22)            // af0
	b.put(33, 10)           // IODC
	b.put(0, 16)            // crs
	b.put(0, 16)            // dn
	b.put(0, 32)            // m0
	b.put(0, 16)            // cuc
	b.put(0, 32)            // e
	b.put(0, 16)            // cus
	b.put(0, 32)            // sqrtA
	b.put(0, 16)            // toe
	b.put(0, 16).put(0, 32) // cic, omg0
	b.put(0, 16).put(0, 32) // cis, i0
	b.put(0, 16).put(0, 32) // crc, omg
	b.put(0, 24)            // omgd
	b.put(0, 8)             // tgd
	b.put(0, 6)             // health
	b.put(0, 1).put(0, 1)   // L2P flag, fit interval
	return b.buf
}

func TestDecode_GPSEphemeris(t *testing.T) {
	d := NewDecoder()
	res, err := d.Decode(gpsEphPayload())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1019, res.MsgNum)
	assert.Equal(t, "RTCM 1019 EPH G01 WN=1000 IODE=17   IODC=33   L2P", res.Summary)

	g := res.Record.(*eph.EphGPS)
	assert.Equal(t, "G01", g.GetPRN().String())
	assert.Equal(t, 1000, g.Week)
}

func TestDecode_EphemerisTruncated(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(gpsEphPayload()[:20])
	assert.ErrorIs(t, err, bits.ErrInsufficientData)
}

func TestDecode_ClassicClockGLONASS(t *testing.T) {
	b := &bitBuilder{}
	b.put(1064, 12)
	b.put(100, 17) // epoch
	b.put(5, 4)    // update interval
	b.put(0, 1)    // multiple message indicator
	b.put(8, 4)    // IOD SSR
	b.put(256, 16) // provider
	b.put(1, 4)    // solution
	b.put(1, 6)    // nsat
	b.put(3, 5)    // satellite ID
	b.putInt(10000, 22).putInt(0, 21).putInt(0, 27)

	d := NewDecoder()
	res, err := d.Decode(b.buf)
	require.NoError(t, err)
	assert.Equal(t, 1064, res.MsgNum)
	assert.Equal(t, "RTCM 1064 SSR clock R R03 (nsat=1 iod=8)", res.Summary)
	assert.Contains(t, res.Trace, "R03 c0=  1.000m")

	rec := res.Record.(*ssr.ClassicRecord)
	assert.Equal(t, gnss.SysGLO, rec.Sys)
	assert.Equal(t, ssr.ClassicClock, rec.Type)
	require.Len(t, rec.Clocks, 1)
	assert.InDelta(t, 1.0, rec.Clocks[0].C0, 1e-9)
}

func TestClassicMessage(t *testing.T) {
	tests := []struct {
		num int
		sys gnss.System
		typ ssr.ClassicType
		ok  bool
	}{
		{1057, gnss.SysGPS, ssr.ClassicOrbit, true},
		{1062, gnss.SysGPS, ssr.ClassicHRClock, true},
		{1063, gnss.SysGLO, ssr.ClassicOrbit, true},
		{1068, gnss.SysGLO, ssr.ClassicHRClock, true},
		{1069, 0, 0, false},
		{1240, gnss.SysGAL, ssr.ClassicOrbit, true},
		{1248, gnss.SysQZSS, ssr.ClassicCodeBias, true},
		{1257, gnss.SysSBAS, ssr.ClassicHRClock, true},
		{1263, gnss.SysBDS, ssr.ClassicHRClock, true},
		{1264, 0, 0, false},
	}
	for _, tc := range tests {
		sys, typ, ok := classicMessage(tc.num)
		assert.Equal(t, tc.ok, ok, "message %d", tc.num)
		if tc.ok {
			assert.Equal(t, tc.sys, sys, "message %d", tc.num)
			assert.Equal(t, tc.typ, typ, "message %d", tc.num)
		}
	}
}

// cssrMask is an ST1 mask with G01 x L1 C/A.
func cssrMask() []byte {
	b := &bitBuilder{}
	b.put(4073, 12)
	b.put(1, 4)     // subtype
	b.put(7200, 20) // epoch
	b.put(5, 4)     // update interval
	b.put(0, 1)     // multiple message indicator
	b.put(3, 4)     // IOD SSR
	b.put(1, 4)     // ngnss
	b.put(0, 4)     // GPS
	b.put(1<<39, 40)
	b.put(1<<15, 16)
	b.put(0, 1) // no cell mask
	return b.buf
}

func TestDecode_CSSR(t *testing.T) {
	d := NewDecoder()
	res, err := d.Decode(cssrMask())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 4073, res.MsgNum)
	assert.Equal(t, "RTCM 4073 CSSR ST1  epoch=7200 iod=3", res.Summary)
	assert.Equal(t, "ST1 G01 L1 C/A\n", res.Trace)

	// the session keeps the mask, so a correction message decodes now
	b := &bitBuilder{}
	b.put(4073, 12)
	b.put(7, 4) // subtype
	b.put(600, 12)
	b.put(5, 4)
	b.put(0, 1)
	b.put(3, 4)
	b.put(20, 6) // URA of G01
	res, err = d.Decode(b.buf)
	require.NoError(t, err)
	assert.Equal(t, "RTCM 4073 CSSR ST7  hepoch=600 iod=3", res.Summary)
	assert.Equal(t, 6, d.Stats().BitSat)
}

func TestDecode_CSSRWithoutMask(t *testing.T) {
	b := &bitBuilder{}
	b.put(4073, 12)
	b.put(7, 4)
	b.put(600, 12)
	b.put(5, 4).put(0, 1).put(3, 4)
	b.put(20, 6)
	d := NewDecoder()
	_, err := d.Decode(b.buf)
	assert.ErrorIs(t, err, ssr.ErrNoMask)
}

func TestDecode_Padding(t *testing.T) {
	d := NewDecoder()
	res, err := d.Decode(make([]byte, 16))
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 128, d.Stats().BitNull)
}

func TestDecode_Unsupported(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode((&bitBuilder{}).put(1074, 12).put(0, 52).buf)
	assert.ErrorIs(t, err, ErrUnsupportedMessage)
}
