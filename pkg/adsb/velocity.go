package adsb

import (
	"math"

	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// VelocityOverGroundMsg is a TFC 19 subtype 1-2 message reporting velocity
// as ground speed east/west and north/south components (RTCA DO-260B
// 2.2.3.2.6.1).
type VelocityOverGroundMsg struct {
	modes.Envelope

	Subtype        uint8
	IntentChange   bool
	NACv           uint8
	Supersonic     bool

	hasVelocity   bool
	speedKt       float64
	headingDeg    float64

	hasVerticalRate bool
	verticalRateFpm int
	barometricRate  bool

	hasGeoMinusBaro bool
	geoMinusBaroFt  int
}

// DecodeVelocityOverGround decodes a TFC19 subtype 1 or 2 message.
func DecodeVelocityOverGround(env modes.Envelope) (VelocityOverGroundMsg, error) {
	if env.TypeCode() != 19 {
		return VelocityOverGroundMsg{}, badFormat("velocity: type code %d != 19", env.TypeCode())
	}
	r := bits.NewReader(env.ME)
	subtype, err := r.Uint(5, 3)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	if subtype != 1 && subtype != 2 {
		return VelocityOverGroundMsg{}, badFormat("velocity: subtype %d not in {1,2}", subtype)
	}

	intentChange, err := r.Bit(8)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nacRaw, err := r.Uint(10, 3)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	ewSign, err := r.Bit(13)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	ewVel, err := r.Uint(14, 10)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nsSign, err := r.Bit(24)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nsVel, err := r.Uint(25, 10)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	vrSource, err := r.Bit(35)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	vrSign, err := r.Bit(36)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	vrRaw, err := r.Uint(37, 9)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	gmbSign, err := r.Bit(48)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	gmbRaw, err := r.Uint(49, 7)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}

	msg := VelocityOverGroundMsg{
		Envelope:     env,
		Subtype:      uint8(subtype),
		IntentChange: intentChange,
		NACv:         uint8(nacRaw),
		Supersonic:   subtype == 2,
	}

	if ewVel != 0 && nsVel != 0 {
		scale := 1.0
		if subtype == 2 {
			scale = 4.0
		}
		ew := (float64(ewVel) - 1) * scale
		if ewSign {
			ew = -ew
		}
		ns := (float64(nsVel) - 1) * scale
		if nsSign {
			ns = -ns
		}
		msg.hasVelocity = true
		msg.speedKt = math.Hypot(ew, ns)
		heading := math.Atan2(ew, ns) * 180 / math.Pi
		if heading < 0 {
			heading += 360
		}
		msg.headingDeg = heading
	}

	if vrRaw != 0 {
		rate := (int(vrRaw) - 1) * 64
		if vrSign {
			rate = -rate
		}
		msg.hasVerticalRate = true
		msg.verticalRateFpm = rate
		msg.barometricRate = vrSource
	}

	if gmbRaw != 0 {
		diff := (int(gmbRaw) - 1) * 25
		if gmbSign {
			diff = -diff
		}
		msg.hasGeoMinusBaro = true
		msg.geoMinusBaroFt = diff
	}

	return msg, nil
}

// HasVelocity reports whether ground speed and heading are available.
func (m VelocityOverGroundMsg) HasVelocity() bool { return m.hasVelocity }

// GroundSpeed returns speed over ground in knots.
func (m VelocityOverGroundMsg) GroundSpeed() float64 { return m.speedKt }

// Heading returns track angle over ground in degrees, 0-360.
func (m VelocityOverGroundMsg) Heading() float64 { return m.headingDeg }

// HasVerticalRate reports whether VerticalRate is available.
func (m VelocityOverGroundMsg) HasVerticalRate() bool { return m.hasVerticalRate }

// VerticalRate returns climb (positive) or descent (negative) rate in feet
// per minute.
func (m VelocityOverGroundMsg) VerticalRate() int { return m.verticalRateFpm }

// IsBarometricVerticalRate reports whether VerticalRate derives from
// barometric altitude rather than GNSS.
func (m VelocityOverGroundMsg) IsBarometricVerticalRate() bool { return m.barometricRate }

// HasGeoMinusBaro reports whether GeoMinusBaro is available.
func (m VelocityOverGroundMsg) HasGeoMinusBaro() bool { return m.hasGeoMinusBaro }

// GeoMinusBaro returns the difference between GNSS height and barometric
// altitude, in feet.
func (m VelocityOverGroundMsg) GeoMinusBaro() int { return m.geoMinusBaroFt }
