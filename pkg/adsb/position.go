package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// AltitudeType distinguishes barometric from GNSS height-above-ellipsoid
// altitude sources carried by position messages.
type AltitudeType uint8

const (
	AltitudeBarometric AltitudeType = iota
	AltitudeGNSS
)

// SurveillanceStatus is the 2-bit SS field carried by airborne position
// messages (RTCA DO-260B Table 2-14).
type SurveillanceStatus uint8

const (
	SurveillanceNone SurveillanceStatus = iota
	SurveillancePermanentAlert
	SurveillanceTemporaryAlert
	SurveillanceSPICondition
)

// cprFields is the subset of a position message's ME layout shared by
// every version and altitude source: NIC supplement bit, the CPR format
// (even/odd) flag, and the 17-bit lat/lon CPR-encoded coordinates.
//
// ME bit layout (0-indexed, MSB first, relative to the 56-bit ME field):
// TypeCode 0-4; airborne: SS/status 5-6, NICb 7, altitude 8-19; surface:
// movement 5-11, track status 12, track 13-19; both: Time 20, F (CPR
// format) 21, LatCPR 22-38, LonCPR 39-55.
type cprFields struct {
	NICSupplB bool
	UTCSync   bool
	CPRFormat uint8 // 0 = even, 1 = odd
	LatCPR    uint32
	LonCPR    uint32
}

func decodeCPRFields(r bits.Reader) (cprFields, error) {
	nicb, err := r.Bit(7)
	if err != nil {
		return cprFields{}, err
	}
	t, err := r.Bit(20)
	if err != nil {
		return cprFields{}, err
	}
	f, err := r.Uint(21, 1)
	if err != nil {
		return cprFields{}, err
	}
	lat, err := r.Uint(22, 17)
	if err != nil {
		return cprFields{}, err
	}
	lon, err := r.Uint(39, 17)
	if err != nil {
		return cprFields{}, err
	}
	return cprFields{
		NICSupplB: nicb,
		UTCSync:   t,
		CPRFormat: uint8(f),
		LatCPR:    lat,
		LonCPR:    lon,
	}, nil
}

// AirbornePositionV0Msg is a TFC 9-18 or 20-22 airborne position message
// under ADS-B version 0 (no NIC supplement information beyond NICb).
type AirbornePositionV0Msg struct {
	modes.Envelope

	Status       SurveillanceStatus
	AltitudeType AltitudeType
	NICSupplB    bool
	UTCSync      bool
	CPRFormat    uint8
	LatCPR       uint32
	LonCPR       uint32

	altitudeFt int
	hasAlt     bool
}

// DecodeAirbornePositionV0 decodes an airborne position message. TypeCode
// must be 9-18 (barometric altitude) or 20-22 (GNSS altitude).
func DecodeAirbornePositionV0(env modes.Envelope) (AirbornePositionV0Msg, error) {
	tc := env.TypeCode()
	if !isAirbornePositionTypeCode(tc) {
		return AirbornePositionV0Msg{}, badFormat("airborne position: type code %d not in 9-18 or 20-22", tc)
	}

	r := bits.NewReader(env.ME)
	ss, err := r.Uint(5, 2)
	if err != nil {
		return AirbornePositionV0Msg{}, err
	}
	ac12, err := r.Uint(8, 12)
	if err != nil {
		return AirbornePositionV0Msg{}, err
	}
	cpr, err := decodeCPRFields(r)
	if err != nil {
		return AirbornePositionV0Msg{}, err
	}

	altType := AltitudeBarometric
	if tc >= 20 {
		altType = AltitudeGNSS
	}
	alt, hasAlt := decodeAC12(ac12)

	return AirbornePositionV0Msg{
		Envelope:     env,
		Status:       SurveillanceStatus(ss),
		AltitudeType: altType,
		NICSupplB:    cpr.NICSupplB,
		UTCSync:      cpr.UTCSync,
		CPRFormat:    cpr.CPRFormat,
		LatCPR:       cpr.LatCPR,
		LonCPR:       cpr.LonCPR,
		altitudeFt:   alt,
		hasAlt:       hasAlt,
	}, nil
}

func isAirbornePositionTypeCode(tc uint8) bool {
	return (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22)
}

// HasAltitude reports whether Altitude is available.
func (m AirbornePositionV0Msg) HasAltitude() bool { return m.hasAlt }

// Altitude returns the decoded altitude in feet, in the units of AltitudeType.
func (m AirbornePositionV0Msg) Altitude() int { return m.altitudeFt }

// AirbornePositionV1Msg adds the NIC-A supplement carried out of band via
// the aircraft's Operational Status message (RTCA DO-260A 2.2.3.2.3).
type AirbornePositionV1Msg struct {
	AirbornePositionV0Msg
	NICSupplA bool
}

// AirbornePositionV2Msg is bit-for-bit identical to V1 in this message;
// version 2 changes only the interpretation of the NIC supplements, which
// StatefulDecoder resolves using the aircraft's tracked ADS-B version.
type AirbornePositionV2Msg struct {
	AirbornePositionV1Msg
}

// SurfacePositionV0Msg is a TFC 5-8 surface position message. Surface
// messages carry ground speed and track angle instead of altitude; the
// aircraft is on the ground by construction.
type SurfacePositionV0Msg struct {
	modes.Envelope

	Movement     uint8
	HasSpeed     bool
	GroundSpeed  float64
	TrackValid   bool
	Track        float64
	NICSupplB    bool
	UTCSync      bool
	CPRFormat    uint8
	LatCPR       uint32
	LonCPR       uint32
}

// DecodeSurfacePositionV0 decodes a surface position message. TypeCode
// must be 5-8.
func DecodeSurfacePositionV0(env modes.Envelope) (SurfacePositionV0Msg, error) {
	tc := env.TypeCode()
	if tc < 5 || tc > 8 {
		return SurfacePositionV0Msg{}, badFormat("surface position: type code %d not in 5-8", tc)
	}

	r := bits.NewReader(env.ME)
	movement, err := r.Uint(5, 7)
	if err != nil {
		return SurfacePositionV0Msg{}, err
	}
	trackValid, err := r.Bit(12)
	if err != nil {
		return SurfacePositionV0Msg{}, err
	}
	trackRaw, err := r.Uint(13, 7)
	if err != nil {
		return SurfacePositionV0Msg{}, err
	}
	cpr, err := decodeCPRFields(r)
	if err != nil {
		return SurfacePositionV0Msg{}, err
	}

	speed, hasSpeed := decodeSurfaceMovement(movement)

	return SurfacePositionV0Msg{
		Envelope:    env,
		Movement:    uint8(movement),
		HasSpeed:    hasSpeed,
		GroundSpeed: speed,
		TrackValid:  trackValid,
		Track:       float64(trackRaw) * 360.0 / 128.0,
		NICSupplB:   cpr.NICSupplB,
		UTCSync:     cpr.UTCSync,
		CPRFormat:   cpr.CPRFormat,
		LatCPR:      cpr.LatCPR,
		LonCPR:      cpr.LonCPR,
	}, nil
}

// SurfacePositionV1Msg adds NIC-A, mirroring AirbornePositionV1Msg.
type SurfacePositionV1Msg struct {
	SurfacePositionV0Msg
	NICSupplA bool
}

// SurfacePositionV2Msg is bit-for-bit identical to V1; version 2 changes
// only the NIC supplement interpretation.
type SurfacePositionV2Msg struct {
	SurfacePositionV1Msg
}
