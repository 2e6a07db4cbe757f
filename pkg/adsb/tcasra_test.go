package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBits writes value (width bits, MSB first) into buf starting at bit
// offset, using the same bit-0-is-MSB-of-byte-0 convention as pkg/bits.
func setBits(buf []byte, offset, width int, value uint32) {
	for i := 0; i < width; i++ {
		bit := (value >> uint(width-1-i)) & 1
		pos := offset + i
		byteIdx := pos / 8
		shift := 7 - uint(pos%8)
		if bit == 1 {
			buf[byteIdx] |= 1 << shift
		}
	}
}

func tcasRAFrame(tc, subtype uint32, ara, rac uint32, terminated, multi bool, tti, identity uint32) [7]byte {
	var me [7]byte
	setBits(me[:], 0, 5, tc)
	setBits(me[:], 5, 3, subtype)
	setBits(me[:], 8, 14, ara)
	setBits(me[:], 22, 4, rac)
	if terminated {
		setBits(me[:], 26, 1, 1)
	}
	if multi {
		setBits(me[:], 27, 1, 1)
	}
	setBits(me[:], 28, 2, tti)
	setBits(me[:], 30, 26, identity)
	return me
}

func TestDecodeTCASResolutionAdvisory(t *testing.T) {
	// ARA bit 0 (climb RA) set, RAC clear, ICAO24 threat identity.
	identity := uint32(0x40621D) << 2
	me := tcasRAFrame(28, 2, 1<<13, 0, false, false, 1, identity)
	env := envWithME(17, 0xABCDEF, me)

	msg, err := DecodeTCASResolutionAdvisory(env)
	require.NoError(t, err)

	ras := msg.ActiveResolutionAdvisories()
	assert.True(t, ras[0])
	for i := 1; i < 14; i++ {
		assert.False(t, ras[i])
	}
	assert.False(t, msg.RATerminated)
	assert.False(t, msg.MultiThreat)
	assert.Equal(t, ThreatTypeICAO24, msg.ThreatType)

	addr, ok := msg.ThreatICAO24()
	require.True(t, ok)
	assert.Equal(t, uint32(0x40621D), addr)
}

func TestDecodeTCASResolutionAdvisoryTerminatedAndComplements(t *testing.T) {
	me := tcasRAFrame(28, 2, 0, 0b1010, true, true, 0, 0)
	env := envWithME(17, 0x40621D, me)

	msg, err := DecodeTCASResolutionAdvisory(env)
	require.NoError(t, err)

	assert.True(t, msg.RATerminated)
	assert.True(t, msg.MultiThreat)
	assert.Equal(t, ThreatTypeNone, msg.ThreatType)
	assert.Equal(t, [4]bool{true, false, true, false}, msg.ResolutionAdvisoryComplements())
}

func TestDecodeTCASResolutionAdvisoryRejectsWrongSubtype(t *testing.T) {
	me := tcasRAFrame(28, 1, 0, 0, false, false, 0, 0)
	env := envWithME(17, 0x40621D, me)
	_, err := DecodeTCASResolutionAdvisory(env)
	assert.Error(t, err)
}

func TestDecodeTCASResolutionAdvisoryRejectsWrongTypeCode(t *testing.T) {
	me := tcasRAFrame(19, 2, 0, 0, false, false, 0, 0)
	env := envWithME(17, 0x40621D, me)
	_, err := DecodeTCASResolutionAdvisory(env)
	assert.Error(t, err)
}

func TestThreatICAO24OnlyValidForICAOThreatType(t *testing.T) {
	msg := TCASResolutionAdvisoryMsg{ThreatType: ThreatTypeAltitudeRangeBearing, ThreatIdentity: 0x123456}
	_, ok := msg.ThreatICAO24()
	assert.False(t, ok)
}
