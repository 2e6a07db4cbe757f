package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modes1090/pkg/modes"
)

func TestDecodeAirbornePositionV0KnownFrame(t *testing.T) {
	env, err := modes.ParseHex("8D40621D58C382D690C8AC2863A7", false)
	require.NoError(t, err)

	msg, err := DecodeAirbornePositionV0(env)
	require.NoError(t, err)

	assert.True(t, msg.HasAltitude())
	assert.Equal(t, 38000, msg.Altitude())
	assert.Equal(t, AltitudeBarometric, msg.AltitudeType)
	assert.Equal(t, uint8(0), msg.CPRFormat)
	assert.Equal(t, uint32(93000), msg.LatCPR)
	assert.Equal(t, uint32(51372), msg.LonCPR)
}

func TestDecodeAirbornePositionV0RejectsWrongTypeCode(t *testing.T) {
	env, err := modes.ParseHex("8D4840D6202CC371C32CE0", true) // identification, TFC4
	require.NoError(t, err)

	_, err = DecodeAirbornePositionV0(env)
	assert.Error(t, err)
}

func TestDecodeSurfacePositionMovement(t *testing.T) {
	tests := []struct {
		movement uint32
		wantOK   bool
		want     float64
	}{
		{0, false, 0},
		{1, true, 0},
		{2, true, 0.125},
		{124, true, 175},
		{125, false, 0},
	}
	for _, tt := range tests {
		got, ok := decodeSurfaceMovement(tt.movement)
		assert.Equal(t, tt.wantOK, ok)
		if ok {
			assert.InDelta(t, tt.want, got, 0.001)
		}
	}
}
