package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintAcrossByteBoundary(t *testing.T) {
	// 0x58 0xC3 -> bits8-19 should reproduce dump1090's AC12 example (0xC38).
	r := NewReader([]byte{0x58, 0xC3, 0x82})
	v, err := r.Uint(8, 12)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xC38), v)
}

func TestUintSingleByte(t *testing.T) {
	r := NewReader([]byte{0b01011000})
	v, err := r.Uint(0, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0b01011), v)
}

func TestIntSignExtension(t *testing.T) {
	// 7-bit value 0x7F (all ones) sign-extends to -1.
	r := NewReader([]byte{0xFE})
	v, err := r.Int(0, 7)
	assert.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestIntPositive(t *testing.T) {
	r := NewReader([]byte{0x32})
	v, err := r.Int(0, 7)
	assert.NoError(t, err)
	assert.Equal(t, int32(0x19), v)
}

func TestBit(t *testing.T) {
	r := NewReader([]byte{0b00000001})
	v, err := r.Bit(7)
	assert.NoError(t, err)
	assert.True(t, v)

	v, err = r.Bit(0)
	assert.NoError(t, err)
	assert.False(t, v)
}

func TestFrameTooShort(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01})
	_, err := r.Uint(12, 8)
	assert.ErrorIs(t, err, ErrFrameTooShort)

	_, err = r.Bytes(1, 5)
	assert.ErrorIs(t, err, ErrFrameTooShort)
}

func TestBytes(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB, 0xCC})
	b, err := r.Bytes(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xBB, 0xCC}, b)
}

func TestPanicsOnBadWidth(t *testing.T) {
	r := NewReader([]byte{0x00})
	assert.Panics(t, func() { _, _ = r.Uint(0, 0) })
	assert.Panics(t, func() { _, _ = r.Uint(0, 33) })
}
