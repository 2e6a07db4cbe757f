// Package beast reads the Beast binary protocol dump1090/readsb speak over
// TCP: a stream of sync-byte-framed messages, each carrying a receiver
// timestamp, a signal level, and a raw Mode S (or Mode A/C) payload with
// 0x1A bytes escaped as 0x1A 0x1A. It feeds the unwrapped Mode S payloads
// into pkg/decoder, keeping the wire framing entirely separate from
// bitfield decoding.
package beast

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Framer reassembles Beast protocol messages out of a byte stream that may
// arrive in arbitrary-sized chunks.
type Framer struct {
	logger *logrus.Logger
	buffer []byte
}

// NewFramer creates a Framer.
func NewFramer(logger *logrus.Logger) *Framer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Framer{
		logger: logger,
		buffer: make([]byte, 0, 4096),
	}
}

// Feed appends data to the framer's internal buffer and returns every
// complete message that can now be extracted from it.
func (f *Framer) Feed(data []byte) ([]*Message, error) {
	f.buffer = append(f.buffer, data...)

	var messages []*Message

	for {
		syncIndex := -1
		for i, b := range f.buffer {
			if b == SyncByte {
				syncIndex = i
				break
			}
		}

		if syncIndex == -1 {
			f.buffer = f.buffer[:0]
			break
		}

		if syncIndex > 0 {
			f.buffer = f.buffer[syncIndex:]
		}

		if len(f.buffer) < 2 {
			break
		}

		messageType := f.buffer[1]
		messageLen := f.messageLength(messageType)

		if messageLen == 0 {
			f.logger.WithField("message_type", fmt.Sprintf("0x%02x", messageType)).Debug("modes1090/beast: unknown message type, skipping")
			f.buffer = f.buffer[1:]
			continue
		}

		if len(f.buffer) < messageLen {
			break
		}

		raw := make([]byte, messageLen)
		copy(raw, f.buffer[:messageLen])

		msg, err := f.decodeMessage(raw)
		if err != nil {
			f.logger.WithError(err).Debug("modes1090/beast: failed to decode message")
			f.buffer = f.buffer[1:]
			continue
		}

		messages = append(messages, msg)
		f.buffer = f.buffer[messageLen:]
	}

	if len(f.buffer) > 2048 {
		f.buffer = f.buffer[:0]
	}

	return messages, nil
}

// messageLength returns the full wire length (sync + type + timestamp +
// signal + payload) of a Beast message of the given type, or 0 if the
// type is unrecognized.
func (f *Framer) messageLength(messageType byte) int {
	switch messageType {
	case ModeAC:
		return 11 // 1 sync + 1 type + 6 timestamp + 1 signal + 2 data
	case ModeS:
		return 16 // 1 sync + 1 type + 6 timestamp + 1 signal + 7 data
	case ModeSLong:
		return 23 // 1 sync + 1 type + 6 timestamp + 1 signal + 14 data
	case ModeStatus:
		return 11 // 1 sync + 1 type + 6 timestamp + 1 signal + 2 data
	default:
		return 0
	}
}

func (f *Framer) decodeMessage(data []byte) (*Message, error) {
	if len(data) < 9 {
		return nil, fmt.Errorf("beast: message too short: %d bytes", len(data))
	}
	if data[0] != SyncByte {
		return nil, fmt.Errorf("beast: invalid sync byte: 0x%02x", data[0])
	}

	messageType := data[1]

	var ticks uint64
	for i := 0; i < 6; i++ {
		ticks = (ticks << 8) | uint64(data[2+i])
	}
	signal := data[8]

	expectedLen := f.messageLength(messageType)
	if len(data) < expectedLen {
		return nil, fmt.Errorf("beast: incomplete message: got %d bytes, expected %d", len(data), expectedLen)
	}

	payload := unescapeData(data[9:expectedLen])

	return &Message{
		MessageType: messageType,
		ClockTicks:  ticks,
		Signal:      signal,
		Data:        payload,
		Raw:         data,
		ReceivedAt:  time.Now(),
	}, nil
}

// unescapeData removes Beast protocol 0x1A escaping from a payload slice.
func unescapeData(data []byte) []byte {
	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == 0x1A && i+1 < len(data) {
			result = append(result, data[i+1])
			i++
		} else {
			result = append(result, data[i])
		}
	}
	return result
}
