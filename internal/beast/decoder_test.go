package beast

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestFramerFeedValidMessages(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		messageType byte
	}{
		{
			name: "Mode S short",
			input: []byte{
				0x1A, 0x32,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
				0x02,
				0x5D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78,
			},
			messageType: ModeS,
		},
		{
			name: "Mode S long",
			input: []byte{
				0x1A, 0x33,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
				0x03,
				0x8D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78, 0x9A,
				0xBC, 0xDE, 0xF0, 0x12, 0x34, 0x56,
			},
			messageType: ModeSLong,
		},
		{
			name: "Mode A/C",
			input: []byte{
				0x1A, 0x31,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x03,
				0x04,
				0x02, 0x34,
			},
			messageType: ModeAC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFramer(testLogger())
			messages, err := f.Feed(tt.input)
			require.NoError(t, err)
			require.Len(t, messages, 1)

			msg := messages[0]
			assert.Equal(t, tt.messageType, msg.MessageType)
			assert.False(t, msg.ReceivedAt.IsZero())
			assert.Equal(t, tt.input[8], msg.Signal)
			assert.NotEmpty(t, msg.Data)
		})
	}
}

func TestFramerFeedSkipsUnknownMessageType(t *testing.T) {
	f := NewFramer(testLogger())
	messages, err := f.Feed([]byte{0x1A, 0x99, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestFramerFeedDiscardsGarbageWithNoSyncByte(t *testing.T) {
	f := NewFramer(testLogger())
	messages, err := f.Feed([]byte{0x00, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestFramerFeedAcrossChunks(t *testing.T) {
	full := []byte{
		0x1A, 0x32,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x02,
		0x5D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78,
	}

	f := NewFramer(testLogger())
	messages, err := f.Feed(full[:5])
	require.NoError(t, err)
	assert.Empty(t, messages)

	messages, err = f.Feed(full[5:])
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, byte(ModeS), messages[0].MessageType)
}

func TestFramerFeedUnescapesSyncByteInPayload(t *testing.T) {
	// A Mode S short payload with 0x1A appearing mid-frame, escaped as
	// 0x1A 0x1A on the wire.
	input := []byte{
		0x1A, 0x32,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x02,
		0x5D, 0x1A, 0x1A, 0x12, 0x34, 0x56, 0x78, 0x00,
	}

	f := NewFramer(testLogger())
	messages, err := f.Feed(input)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, byte(0x1A), messages[0].Data[1])
}

func TestMessageIsModeS(t *testing.T) {
	assert.True(t, (&Message{MessageType: ModeS}).IsModeS())
	assert.True(t, (&Message{MessageType: ModeSLong}).IsModeS())
	assert.False(t, (&Message{MessageType: ModeAC}).IsModeS())
	assert.False(t, (&Message{MessageType: ModeStatus}).IsModeS())
}

func TestMessageIsValid(t *testing.T) {
	assert.True(t, (&Message{MessageType: ModeS, Data: make([]byte, 7)}).IsValid())
	assert.False(t, (&Message{MessageType: ModeS, Data: make([]byte, 6)}).IsValid())
	assert.True(t, (&Message{MessageType: ModeSLong, Data: make([]byte, 14)}).IsValid())
	assert.False(t, (&Message{MessageType: ModeAC, Data: nil}).IsValid())
}

func TestMessageGetSquawk(t *testing.T) {
	msg := &Message{MessageType: ModeAC, Data: []byte{0x02, 0x34}}
	assert.NotPanics(t, func() { msg.GetSquawk() })

	nonAC := &Message{MessageType: ModeS, Data: []byte{0x02, 0x34}}
	assert.Equal(t, uint16(0), nonAC.GetSquawk())
}
