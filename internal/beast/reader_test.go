package beast

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modes1090/pkg/adsb"
	"modes1090/pkg/decoder"
)

func beastFrame(messageType byte, ticks uint64, signal byte, payload []byte) []byte {
	buf := []byte{SyncByte, messageType}
	for i := 5; i >= 0; i-- {
		buf = append(buf, byte(ticks>>(8*uint(i))))
	}
	buf = append(buf, signal)
	buf = append(buf, payload...)
	return buf
}

func TestReaderRunDecodesAirbornePosition(t *testing.T) {
	payload, err := hex.DecodeString("8D40621D58C382D690C8AC2863A7")
	require.NoError(t, err)

	src := bytes.NewBuffer(beastFrame(ModeSLong, 1_000_000, 0x20, payload))

	dec := decoder.New(nil)
	reader := NewReader(src, dec, nil, testLogger())

	out := make(chan Decoded, 4)
	err = reader.Run(context.Background(), out)
	assert.Error(t, err) // returns the underlying EOF once the buffer drains

	require.Len(t, out, 1)
	d := <-out
	msg, ok := d.Variant.(adsb.AirbornePositionV0Msg)
	require.True(t, ok, "expected AirbornePositionV0Msg, got %T", d.Variant)
	assert.True(t, msg.HasAltitude())
	assert.Equal(t, 38000, msg.Altitude())
}

func TestReaderRunSkipsModeACMessages(t *testing.T) {
	src := bytes.NewBuffer(beastFrame(ModeAC, 1, 0x10, []byte{0x02, 0x34}))

	dec := decoder.New(nil)
	reader := NewReader(src, dec, nil, testLogger())

	out := make(chan Decoded, 4)
	_ = reader.Run(context.Background(), out)

	assert.Empty(t, out)
}

func TestReaderRunStopsOnContextCancel(t *testing.T) {
	src := bytes.NewBuffer(nil) // never returns data or EOF on its own via a plain pipe would block; buffer returns EOF immediately

	dec := decoder.New(nil)
	reader := NewReader(src, dec, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan Decoded, 1)
	err := reader.Run(ctx, out)
	assert.Error(t, err)
}
