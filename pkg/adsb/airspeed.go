package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// AirspeedHeadingMsg is a TFC 19 subtype 3-4 message reporting heading and
// airspeed instead of ground velocity components (RTCA DO-260B
// 2.2.3.2.6.2). Subtype 4 reports airspeed in 4-knot units and marks a
// supersonic aircraft.
type AirspeedHeadingMsg struct {
	modes.Envelope

	Subtype      uint8
	IntentChange bool
	IFRCapability bool
	NUCr         uint8

	headingStatus bool
	headingDeg    float64

	trueAirspeed bool
	hasAirspeed  bool
	airspeedKt   int

	verticalSource  bool
	hasVerticalRate bool
	verticalRateFpm int

	hasGeoMinusBaro bool
	geoMinusBaroFt  int
}

// DecodeAirspeedHeading decodes a TFC19 subtype 3 or 4 message.
func DecodeAirspeedHeading(env modes.Envelope) (AirspeedHeadingMsg, error) {
	if env.TypeCode() != 19 {
		return AirspeedHeadingMsg{}, badFormat("airspeed/heading: type code %d != 19", env.TypeCode())
	}
	r := bits.NewReader(env.ME)
	subtype, err := r.Uint(5, 3)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	if subtype != 3 && subtype != 4 {
		return AirspeedHeadingMsg{}, badFormat("airspeed/heading: subtype %d not in {3,4}", subtype)
	}

	intentChange, err := r.Bit(8)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	ifrCap, err := r.Bit(9)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	nuc, err := r.Uint(10, 3)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	headingStatus, err := r.Bit(13)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	headingRaw, err := r.Uint(14, 10)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	trueAirspeed, err := r.Bit(24)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	airspeedRaw, err := r.Uint(25, 10)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	vrSource, err := r.Bit(35)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	vrSign, err := r.Bit(36)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	vrRaw, err := r.Uint(37, 9)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	gmbSign, err := r.Bit(48)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	gmbRaw, err := r.Uint(49, 7)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}

	msg := AirspeedHeadingMsg{
		Envelope:      env,
		Subtype:       uint8(subtype),
		IntentChange:  intentChange,
		IFRCapability: ifrCap,
		NUCr:          uint8(nuc),
		headingStatus: headingStatus,
		headingDeg:    float64(headingRaw) * 360.0 / 1024.0,
		trueAirspeed:  trueAirspeed,
	}

	if airspeedRaw != 0 {
		speed := int(airspeedRaw) - 1
		if subtype == 4 {
			speed *= 4
		}
		msg.hasAirspeed = true
		msg.airspeedKt = speed
	}

	if vrRaw != 0 {
		rate := (int(vrRaw) - 1) * 64
		if vrSign {
			rate = -rate
		}
		msg.hasVerticalRate = true
		msg.verticalRateFpm = rate
		msg.verticalSource = vrSource
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

// HasHeading returns the heading status bit (ME bit 13) as read. The
// message carries no ADS-B version, so the bit is reported the same way
// for every version; under version 0 it distinguishes magnetic from true
// north rather than marking availability.
func (m AirspeedHeadingMsg) HasHeading() bool { return m.headingStatus }

// Heading returns magnetic (or true, depending on ADS-B version) heading
// in degrees, 0-360.
func (m AirspeedHeadingMsg) Heading() float64 { return m.headingDeg }

// IsTrueAirspeed reports whether Airspeed is true airspeed rather than
// indicated airspeed.
func (m AirspeedHeadingMsg) IsTrueAirspeed() bool { return m.trueAirspeed }

// HasAirspeed reports whether Airspeed is available.
func (m AirspeedHeadingMsg) HasAirspeed() bool { return m.hasAirspeed }

// Airspeed returns airspeed in knots.
func (m AirspeedHeadingMsg) Airspeed() int { return m.airspeedKt }

// IsSupersonic reports whether the aircraft reported subtype 4 encoding,
// used above Mach 1.
func (m AirspeedHeadingMsg) IsSupersonic() bool { return m.Subtype == 4 }

// HasVerticalRate reports whether VerticalRate is available.
func (m AirspeedHeadingMsg) HasVerticalRate() bool { return m.hasVerticalRate }

// VerticalRate returns climb (positive) or descent (negative) rate in feet
// per minute.
func (m AirspeedHeadingMsg) VerticalRate() int { return m.verticalRateFpm }

// IsBarometricVerticalRate reports whether VerticalRate derives from
// barometric altitude rather than GNSS.
func (m AirspeedHeadingMsg) IsBarometricVerticalRate() bool { return m.verticalSource }

// HasGeoMinusBaro reports whether GeoMinusBaro is available.
func (m AirspeedHeadingMsg) HasGeoMinusBaro() bool { return m.hasGeoMinusBaro }

// GeoMinusBaro returns the difference between GNSS height and barometric
// altitude, in feet.
func (m AirspeedHeadingMsg) GeoMinusBaro() int { return m.geoMinusBaroFt }
