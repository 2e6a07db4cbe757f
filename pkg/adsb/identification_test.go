package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modes1090/pkg/modes"
)

func TestDecodeIdentificationKnownFrame(t *testing.T) {
	env, err := modes.ParseHex("8D4840D6202CC371C32CE0", true)
	require.NoError(t, err)

	msg, err := DecodeIdentification(env)
	require.NoError(t, err)

	assert.Equal(t, "KLM1017 ", msg.Callsign)
	assert.Equal(t, uint8(4), msg.Category.Set)
}

func TestDecodeIdentificationRejectsWrongTypeCode(t *testing.T) {
	env, err := modes.ParseHex("8D40621D58C382D690C8AC2863A7", false) // TFC11
	require.NoError(t, err)

	_, err = DecodeIdentification(env)
	assert.Error(t, err)
}
