package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameIdentification(t *testing.T) {
	env, err := ParseHex("8D4840D6202CC371C32CE0", true)
	require.NoError(t, err)
	assert.Equal(t, uint8(17), env.DownlinkFormat)
	assert.Equal(t, uint32(0x4840D6), env.Address)
	assert.Equal(t, QualifierICAO24, env.Qualifier)
	require.Len(t, env.ME, 7)
	assert.Equal(t, uint8(4), env.TypeCode())
}

func TestParseFrameAirbornePosition(t *testing.T) {
	env, err := ParseHex("8D40621D58C382D690C8AC2863A7", false)
	require.NoError(t, err)
	assert.Equal(t, uint8(17), env.DownlinkFormat)
	assert.Equal(t, uint32(0x40621D), env.Address)
	assert.Equal(t, uint8(11), env.TypeCode())
}

func TestParseFrameShortLengthMismatch(t *testing.T) {
	_, err := ParseFrame(make([]byte, 7), false)
	assert.NoError(t, err)

	_, err = ParseFrame(make([]byte, 6), false)
	assert.ErrorIs(t, err, ErrFrameTooShort)
}

func TestParseFrameLongRequiresFourteenBytes(t *testing.T) {
	long := make([]byte, 14)
	long[0] = 17 << 3
	_, err := ParseFrame(long, false)
	assert.NoError(t, err)

	short := make([]byte, 7)
	short[0] = 17 << 3
	_, err = ParseFrame(short, false)
	assert.ErrorIs(t, err, ErrFrameTooShort)
}

func TestParseFrameNonExtendedAddressFromParityField(t *testing.T) {
	// DF4 (altitude reply): AP field occupies the last 3 bytes.
	frame := []byte{4 << 3, 0x00, 0x00, 0x00, 0xAB, 0xCD, 0xEF}
	env, err := ParseFrame(frame, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCDEF), env.Address)
	assert.Nil(t, env.ME)
}

func TestAddressQualifierForDF18(t *testing.T) {
	cases := []struct {
		cf   uint8
		want AddressQualifier
	}{
		{0, QualifierICAO24},
		{1, QualifierICAO24},
		{2, QualifierTISBICAO},
		{3, QualifierTISBOther},
		{4, QualifierTISBOther},
		{5, QualifierTISBOther},
		{6, QualifierADSR},
		{7, QualifierTISBOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, addressQualifierForCF(c.cf))
	}
}

func TestParseFrameNoCRCShortensExtendedSquitter(t *testing.T) {
	full := make([]byte, 14)
	full[0] = 17 << 3
	_, err := ParseFrame(full, true)
	assert.ErrorIs(t, err, ErrFrameTooShort, "noCRC frame should be 11 bytes, not 14")

	stripped := make([]byte, 11)
	stripped[0] = 17 << 3
	env, err := ParseFrame(stripped, true)
	require.NoError(t, err)
	require.Len(t, env.ME, 7)
}

func TestParseFrameNoCRCDoesNotShortenNonAddressFormats(t *testing.T) {
	// DF4 has no separate CRC field to strip: its last 3 bytes are the
	// address itself, so noCRC must not change the expected length.
	frame := make([]byte, 7)
	frame[0] = 4 << 3
	_, err := ParseFrame(frame, true)
	assert.NoError(t, err)
}

func TestParseHexInvalid(t *testing.T) {
	_, err := ParseHex("not-hex", false)
	assert.Error(t, err)
}
