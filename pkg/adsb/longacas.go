package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// LongACASMsg is a DF16 long air-to-air surveillance reply, carrying an
// ACAS resolution advisory broadcast (MV field) alongside a DF0-shaped
// header.
type LongACASMsg struct {
	modes.Envelope

	Airborne         bool
	Sensitivity      uint8
	ReplyInfo        uint8
	MV               [7]byte

	altitudeFt int
	hasAlt     bool
}

// DecodeLongACAS decodes a DF16 reply from its full 14-byte frame.
func DecodeLongACAS(env modes.Envelope) (LongACASMsg, error) {
	if env.DownlinkFormat != 16 {
		return LongACASMsg{}, badFormat("long acas: downlink format %d != 16", env.DownlinkFormat)
	}
	r := bits.NewReader(env.Raw)

	vs, err := r.Bit(5)
	if err != nil {
		return LongACASMsg{}, err
	}
	sl, err := r.Uint(8, 3)
	if err != nil {
		return LongACASMsg{}, err
	}
	ri, err := r.Uint(13, 4)
	if err != nil {
		return LongACASMsg{}, err
	}
	ac, err := r.Uint(19, 13)
	if err != nil {
		return LongACASMsg{}, err
	}
	mv, err := r.Bytes(4, 7)
	if err != nil {
		return LongACASMsg{}, err
	}

	alt, hasAlt := decodeAC13(ac)
	msg := LongACASMsg{
		Envelope:    env,
		Airborne:    !vs,
		Sensitivity: uint8(sl),
		ReplyInfo:   uint8(ri),
		altitudeFt:  alt,
		hasAlt:      hasAlt,
	}
	copy(msg.MV[:], mv)
	return msg, nil
}

// HasAltitude reports whether Altitude is available.
func (m LongACASMsg) HasAltitude() bool { return m.hasAlt }

// Altitude returns the barometric altitude in feet.
func (m LongACASMsg) Altitude() int { return m.altitudeFt }
