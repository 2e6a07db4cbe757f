package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// AllCallReplyMsg is a DF11 all-call reply, transmitted in response to a
// Mode S all-call interrogation to announce an aircraft's ICAO24 address.
type AllCallReplyMsg struct {
	modes.Envelope

	Capability uint8
}

// DecodeAllCallReply decodes a DF11 reply from its full 7-byte frame. The
// ICAO24 address is already available on the embedded Envelope.
func DecodeAllCallReply(env modes.Envelope) (AllCallReplyMsg, error) {
	if env.DownlinkFormat != 11 {
		return AllCallReplyMsg{}, badFormat("all-call reply: downlink format %d != 11", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	ca, err := r.Uint(5, 3)
	if err != nil {
		return AllCallReplyMsg{}, err
	}

	return AllCallReplyMsg{Envelope: env, Capability: uint8(ca)}, nil
}
