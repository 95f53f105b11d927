package gnss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem_Strings(t *testing.T) {
	assert.Equal(t, "GAL", SysGAL.String())
	assert.Equal(t, "BDS", SysBDS.String())
	assert.Equal(t, "E", SysGAL.Abbr())
	assert.Equal(t, "C", SysBDS.Abbr())
}

func TestSystemFromSSRID(t *testing.T) {
	tests := []struct {
		id   uint64
		want System
	}{
		{0, SysGPS}, {1, SysGLO}, {2, SysGAL}, {3, SysBDS}, {4, SysQZSS}, {5, SysSBAS},
	}
	for _, tc := range tests {
		sys, err := SystemFromSSRID(tc.id)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, sys)
	}

	_, err := SystemFromSSRID(6)
	assert.Error(t, err, "undefined GNSS ID must fail")
	_, err = SystemFromSSRID(15)
	assert.Error(t, err)
}

func TestPRN_String(t *testing.T) {
	assert.Equal(t, "G02", PRN{SysGPS, 2}.String())
	assert.Equal(t, "R17", PRN{SysGLO, 17}.String())
	assert.Equal(t, "J195", PRN{SysQZSS, 195}.String())
}

func TestSignalName(t *testing.T) {
	name, err := SignalName(SysGPS, 0)
	assert.NoError(t, err)
	assert.Equal(t, "L1 C/A", name)

	name, err = SignalName(SysGAL, 14)
	assert.NoError(t, err)
	assert.Equal(t, "E6 B+C", name)

	// reserved slot yields an empty name, not an error
	name, err = SignalName(SysBDS, 9)
	assert.NoError(t, err)
	assert.Equal(t, "", name)

	_, err = SignalName(SysNavIC, 0)
	assert.Error(t, err, "NavIC has no SSR signal assignment")

	_, err = SignalName(SysGPS, 16)
	assert.Error(t, err)
}
