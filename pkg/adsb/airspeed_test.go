package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modes1090/pkg/modes"
)

func envWithME(df uint8, addr uint32, me [7]byte) modes.Envelope {
	frame := make([]byte, 11)
	frame[0] = df << 3
	frame[1] = byte(addr >> 16)
	frame[2] = byte(addr >> 8)
	frame[3] = byte(addr)
	copy(frame[4:], me[:])
	env, err := modes.ParseFrame(frame, true)
	if err != nil {
		panic(err)
	}
	return env
}

func TestDecodeAirspeedHeadingSupersonic(t *testing.T) {
	// Subtype 4 (supersonic), true airspeed raw=1 -> reported (1-1)*4=0kt.
	env := envWithME(17, 0x40621D, [7]byte{0x9C, 0x00, 0x04, 0x80, 0x20, 0x00, 0x00})

	msg, err := DecodeAirspeedHeading(env)
	require.NoError(t, err)

	assert.True(t, msg.IsSupersonic())
	assert.True(t, msg.IsTrueAirspeed())
	assert.True(t, msg.HasAirspeed())
	assert.Equal(t, 0, msg.Airspeed())
}

func TestDecodeAirspeedHeadingUnavailableWhenRawZero(t *testing.T) {
	env := envWithME(17, 0x40621D, [7]byte{0x9C, 0x00, 0x04, 0x80, 0x00, 0x00, 0x00})

	msg, err := DecodeAirspeedHeading(env)
	require.NoError(t, err)

	assert.False(t, msg.HasAirspeed())
}

func TestDecodeAirspeedHeadingRejectsWrongSubtype(t *testing.T) {
	env := envWithME(17, 0x40621D, [7]byte{0x99, 0, 0, 0, 0, 0, 0}) // TC19 subtype1
	_, err := DecodeAirspeedHeading(env)
	assert.Error(t, err)
}

func TestDecodeVelocityOverGroundSubsonic(t *testing.T) {
	// subtype1: EW sign=0, EW vel=44 (raw), NS sign=0, NS vel=1 (raw)
	// yields ew=43, ns=0 knots along each axis.
	env := envWithME(17, 0x40621D, [7]byte{0x99, 0x00, 0x2C, 0x00, 0x2C, 0x00, 0x00})

	msg, err := DecodeVelocityOverGround(env)
	require.NoError(t, err)
	assert.True(t, msg.HasVelocity())
	assert.False(t, msg.Supersonic)
}
