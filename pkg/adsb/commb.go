package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// CommBAltitudeReplyMsg is a DF20 Comm-B altitude reply: a DF4-shaped
// surveillance reply with a 56-bit Comm-B message field (MB) instead of a
// second copy of the parity field.
type CommBAltitudeReplyMsg struct {
	modes.Envelope

	FlightStatus uint8
	DownlinkReq  uint8
	UtilityMsg   uint8
	MB           [7]byte

	altitudeFt int
	hasAlt     bool
}

// DecodeCommBAltitudeReply decodes a DF20 reply from its full 14-byte frame.
func DecodeCommBAltitudeReply(env modes.Envelope) (CommBAltitudeReplyMsg, error) {
	if env.DownlinkFormat != 20 {
		return CommBAltitudeReplyMsg{}, badFormat("comm-b altitude reply: downlink format %d != 20", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	fs, err := r.Uint(5, 3)
	if err != nil {
		return CommBAltitudeReplyMsg{}, err
	}
	dr, err := r.Uint(8, 5)
	if err != nil {
		return CommBAltitudeReplyMsg{}, err
	}
	um, err := r.Uint(13, 6)
	if err != nil {
		return CommBAltitudeReplyMsg{}, err
	}
	ac, err := r.Uint(19, 13)
	if err != nil {
		return CommBAltitudeReplyMsg{}, err
	}
	mb, err := r.Bytes(4, 7)
	if err != nil {
		return CommBAltitudeReplyMsg{}, err
	}

	alt, hasAlt := decodeAC13(ac)
	msg := CommBAltitudeReplyMsg{
		Envelope:     env,
		FlightStatus: uint8(fs),
		DownlinkReq:  uint8(dr),
		UtilityMsg:   uint8(um),
		altitudeFt:   alt,
		hasAlt:       hasAlt,
	}
	copy(msg.MB[:], mb)
	return msg, nil
}

// HasAltitude reports whether Altitude is available.
func (m CommBAltitudeReplyMsg) HasAltitude() bool { return m.hasAlt }

// Altitude returns the barometric altitude in feet.
func (m CommBAltitudeReplyMsg) Altitude() int { return m.altitudeFt }

// CommBIdentifyReplyMsg is a DF21 Comm-B identify reply: a DF5-shaped
// surveillance reply carrying a Mode A squawk plus a Comm-B message field.
type CommBIdentifyReplyMsg struct {
	modes.Envelope

	FlightStatus uint8
	DownlinkReq  uint8
	UtilityMsg   uint8
	Squawk       int
	MB           [7]byte
}

// DecodeCommBIdentifyReply decodes a DF21 reply from its full 14-byte frame.
func DecodeCommBIdentifyReply(env modes.Envelope) (CommBIdentifyReplyMsg, error) {
	if env.DownlinkFormat != 21 {
		return CommBIdentifyReplyMsg{}, badFormat("comm-b identify reply: downlink format %d != 21", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	fs, err := r.Uint(5, 3)
	if err != nil {
		return CommBIdentifyReplyMsg{}, err
	}
	dr, err := r.Uint(8, 5)
	if err != nil {
		return CommBIdentifyReplyMsg{}, err
	}
	um, err := r.Uint(13, 6)
	if err != nil {
		return CommBIdentifyReplyMsg{}, err
	}
	id, err := r.Uint(19, 13)
	if err != nil {
		return CommBIdentifyReplyMsg{}, err
	}
	mb, err := r.Bytes(4, 7)
	if err != nil {
		return CommBIdentifyReplyMsg{}, err
	}

	msg := CommBIdentifyReplyMsg{
		Envelope:     env,
		FlightStatus: uint8(fs),
		DownlinkReq:  uint8(dr),
		UtilityMsg:   uint8(um),
		Squawk:       decodeSquawk(id),
	}
	copy(msg.MB[:], mb)
	return msg, nil
}
