package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// ShortACASMsg is a DF0 short air-to-air surveillance reply, transmitted in
// response to a Mode S interrogation from another aircraft's ACAS.
type ShortACASMsg struct {
	modes.Envelope

	Airborne        bool
	CrossLinkCapable bool
	Sensitivity     uint8
	ReplyInfo       uint8

	altitudeFt int
	hasAlt     bool
}

// DecodeShortACAS decodes a DF0 reply from its full 7-byte frame.
func DecodeShortACAS(env modes.Envelope) (ShortACASMsg, error) {
	if env.DownlinkFormat != 0 {
		return ShortACASMsg{}, badFormat("short acas: downlink format %d != 0", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	vs, err := r.Bit(5)
	if err != nil {
		return ShortACASMsg{}, err
	}
	cc, err := r.Bit(6)
	if err != nil {
		return ShortACASMsg{}, err
	}
	sl, err := r.Uint(8, 3)
	if err != nil {
		return ShortACASMsg{}, err
	}
	ri, err := r.Uint(13, 4)
	if err != nil {
		return ShortACASMsg{}, err
	}
	ac, err := r.Uint(19, 13)
	if err != nil {
		return ShortACASMsg{}, err
	}

	alt, hasAlt := decodeAC13(ac)
	return ShortACASMsg{
		Envelope:         env,
		Airborne:         !vs,
		CrossLinkCapable: cc,
		Sensitivity:      uint8(sl),
		ReplyInfo:        uint8(ri),
		altitudeFt:       alt,
		hasAlt:           hasAlt,
	}, nil
}

// HasAltitude reports whether Altitude is available.
func (m ShortACASMsg) HasAltitude() bool { return m.hasAlt }

// Altitude returns the barometric altitude in feet.
func (m ShortACASMsg) Altitude() int { return m.altitudeFt }
