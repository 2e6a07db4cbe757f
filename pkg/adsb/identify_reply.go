package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// IdentifyReplyMsg is a DF5 surveillance identity reply, carrying the
// aircraft's Mode A squawk code.
type IdentifyReplyMsg struct {
	modes.Envelope

	FlightStatus uint8
	DownlinkReq  uint8
	UtilityMsg   uint8
	Squawk       int
}

// DecodeIdentifyReply decodes a DF5 reply from its full 7-byte frame.
func DecodeIdentifyReply(env modes.Envelope) (IdentifyReplyMsg, error) {
	if env.DownlinkFormat != 5 {
		return IdentifyReplyMsg{}, badFormat("identify reply: downlink format %d != 5", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	fs, err := r.Uint(5, 3)
	if err != nil {
		return IdentifyReplyMsg{}, err
	}
	dr, err := r.Uint(8, 5)
	if err != nil {
		return IdentifyReplyMsg{}, err
	}
	um, err := r.Uint(13, 6)
	if err != nil {
		return IdentifyReplyMsg{}, err
	}
	id, err := r.Uint(19, 13)
	if err != nil {
		return IdentifyReplyMsg{}, err
	}

	return IdentifyReplyMsg{
		Envelope:     env,
		FlightStatus: uint8(fs),
		DownlinkReq:  uint8(dr),
		UtilityMsg:   uint8(um),
		Squawk:       decodeSquawk(id),
	}, nil
}
