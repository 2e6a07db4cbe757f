package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// CommDExtendedLengthMsg is a DF24-31 Comm-D extended length message,
// used for multi-segment uplink/downlink data exchanges. All formats
// >=24 share this shape; ControlField holds the single bit at offset 5 of
// byte 0, and the segment framing is otherwise opaque to this decoder.
type CommDExtendedLengthMsg struct {
	modes.Envelope

	ControlField uint8
	MD           [10]byte
}

// DecodeCommDExtendedLength decodes a DF>=24 reply from its full 14-byte
// frame.
func DecodeCommDExtendedLength(env modes.Envelope) (CommDExtendedLengthMsg, error) {
	if env.DownlinkFormat < 24 {
		return CommDExtendedLengthMsg{}, badFormat("comm-d extended length: downlink format %d < 24", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	ke, err := r.Uint(5, 1)
	if err != nil {
		return CommDExtendedLengthMsg{}, err
	}
	md, err := r.Bytes(1, 10)
	if err != nil {
		return CommDExtendedLengthMsg{}, err
	}

	msg := CommDExtendedLengthMsg{Envelope: env, ControlField: uint8(ke)}
	copy(msg.MD[:], md)
	return msg, nil
}
