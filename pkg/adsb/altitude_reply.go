package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// AltitudeReplyMsg is a DF4 surveillance altitude reply.
type AltitudeReplyMsg struct {
	modes.Envelope

	FlightStatus  uint8
	DownlinkReq   uint8
	UtilityMsg    uint8

	altitudeFt int
	hasAlt     bool
}

// DecodeAltitudeReply decodes a DF4 reply from its full 7-byte frame.
func DecodeAltitudeReply(env modes.Envelope) (AltitudeReplyMsg, error) {
	if env.DownlinkFormat != 4 {
		return AltitudeReplyMsg{}, badFormat("altitude reply: downlink format %d != 4", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	fs, err := r.Uint(5, 3)
	if err != nil {
		return AltitudeReplyMsg{}, err
	}
	dr, err := r.Uint(8, 5)
	if err != nil {
		return AltitudeReplyMsg{}, err
	}
	um, err := r.Uint(13, 6)
	if err != nil {
		return AltitudeReplyMsg{}, err
	}
	ac, err := r.Uint(19, 13)
	if err != nil {
		return AltitudeReplyMsg{}, err
	}

	alt, hasAlt := decodeAC13(ac)
	return AltitudeReplyMsg{
		Envelope:     env,
		FlightStatus: uint8(fs),
		DownlinkReq:  uint8(dr),
		UtilityMsg:   uint8(um),
		altitudeFt:   alt,
		hasAlt:       hasAlt,
	}, nil
}

// HasAltitude reports whether Altitude is available.
func (m AltitudeReplyMsg) HasAltitude() bool { return m.hasAlt }

// Altitude returns the barometric altitude in feet.
func (m AltitudeReplyMsg) Altitude() int { return m.altitudeFt }

// OnGround reports whether FlightStatus marks the aircraft as on the
// ground (values 1 and 3). Values 4 and 5 do not say whether the aircraft
// is airborne or on the ground, so OnGround reports false for them.
func (m AltitudeReplyMsg) OnGround() bool {
	return m.FlightStatus == 1 || m.FlightStatus == 3
}
