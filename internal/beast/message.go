package beast

import (
	"time"
)

// Beast mode message types.
const (
	SyncByte   = 0x1A // Beast mode sync byte
	ModeAC     = 0x31 // Mode A/C
	ModeS      = 0x32 // Mode S Short (56 bits)
	ModeSLong  = 0x33 // Mode S Long (112 bits)
	ModeStatus = 0x34 // Status
)

// clockHz is the frequency of the Beast protocol's 48-bit timestamp counter.
const clockHz = 12_000_000

// Message represents a decoded Beast mode message. ClockTicks is the raw
// 48-bit receiver-clock counter carried on the wire; it wraps roughly every
// 271 days and carries no epoch, so callers needing an absolute
// or monotonic millisecond timestamp should route it through a Clock
// (see clock.go) rather than reading ClockTicks directly.
type Message struct {
	MessageType byte
	ClockTicks  uint64
	Signal      byte
	Data        []byte
	Raw         []byte
	ReceivedAt  time.Time
}

// GetSquawk extracts the squawk code from a Mode A/C message. Mode A/C
// carries no Mode S envelope, so this has no counterpart in pkg/modes.
func (msg *Message) GetSquawk() uint16 {
	if msg.MessageType != ModeAC {
		return 0
	}
	if len(msg.Data) < 2 {
		return 0
	}

	data := (uint16(msg.Data[0]) << 8) | uint16(msg.Data[1])

	squawk := uint16(0)
	squawk |= (data & 0x1000) >> 9  // A1
	squawk |= (data & 0x0800) >> 7  // A2
	squawk |= (data & 0x0400) >> 5  // A4
	squawk |= (data & 0x0200) >> 3  // B1
	squawk |= (data & 0x0100) >> 1  // B2
	squawk |= (data & 0x0080) << 1  // B4
	squawk |= (data & 0x0040) << 3  // C1
	squawk |= (data & 0x0020) << 5  // C2
	squawk |= (data & 0x0010) << 7  // C4
	squawk |= (data & 0x0008) << 9  // D1
	squawk |= (data & 0x0004) << 11 // D2
	squawk |= (data & 0x0002) << 13 // D4

	return squawk
}

// IsModeS reports whether the message carries a Mode S payload (short or
// long), i.e. one that pkg/modes.ParseFrame can accept.
func (msg *Message) IsModeS() bool {
	return msg.MessageType == ModeS || msg.MessageType == ModeSLong
}

// IsValid performs basic length validation on the message.
func (msg *Message) IsValid() bool {
	if len(msg.Data) == 0 {
		return false
	}

	switch msg.MessageType {
	case ModeAC:
		return len(msg.Data) >= 2
	case ModeS:
		return len(msg.Data) >= 7
	case ModeSLong:
		return len(msg.Data) >= 14
	case ModeStatus:
		return len(msg.Data) >= 2
	default:
		return false
	}
}
