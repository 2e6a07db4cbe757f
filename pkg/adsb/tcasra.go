package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// ThreatType indicates how ThreatIdentity should be interpreted.
type ThreatType uint8

const (
	ThreatTypeNone ThreatType = iota
	ThreatTypeICAO24
	ThreatTypeAltitudeRangeBearing
	threatTypeReserved
)

// TCASResolutionAdvisoryMsg is a TFC28 subtype2 message broadcasting an
// aircraft's active ACAS/TCAS resolution advisory (RTCA DO-260B
// 2.2.3.2.7.1, register BDS 3,0).
type TCASResolutionAdvisoryMsg struct {
	modes.Envelope

	ActiveRA        uint16 // 14-bit ARA bitmap, one bit per RA type
	RAC             uint8  // 4-bit RA complement record
	RATerminated    bool
	MultiThreat     bool
	ThreatType      ThreatType
	ThreatIdentity  uint32 // 26-bit raw field; meaning depends on ThreatType
}

// DecodeTCASResolutionAdvisory decodes a TFC28 subtype2 message.
func DecodeTCASResolutionAdvisory(env modes.Envelope) (TCASResolutionAdvisoryMsg, error) {
	if env.TypeCode() != 28 {
		return TCASResolutionAdvisoryMsg{}, badFormat("tcas ra: type code %d != 28", env.TypeCode())
	}
	r := bits.NewReader(env.ME)
	subtype, err := r.Uint(5, 3)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	if subtype != 2 {
		return TCASResolutionAdvisoryMsg{}, badFormat("tcas ra: subtype %d != 2", subtype)
	}

	ara, err := r.Uint(8, 14)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	rac, err := r.Uint(22, 4)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	terminated, err := r.Bit(26)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	multi, err := r.Bit(27)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	tti, err := r.Uint(28, 2)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	identity, err := r.Uint(30, 26)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}

	return TCASResolutionAdvisoryMsg{
		Envelope:       env,
		ActiveRA:       uint16(ara),
		RAC:            uint8(rac),
		RATerminated:   terminated,
		MultiThreat:    multi,
		ThreatType:     ThreatType(tti),
		ThreatIdentity: identity,
	}, nil
}

// ActiveResolutionAdvisories unpacks ActiveRA into 14 individual flags, one
// per RA defined in DO-185B Table A-2, MSB (index 0) first.
func (m TCASResolutionAdvisoryMsg) ActiveResolutionAdvisories() [14]bool {
	var out [14]bool
	for i := 0; i < 14; i++ {
		out[i] = m.ActiveRA&(1<<uint(13-i)) != 0
	}
	return out
}

// ResolutionAdvisoryComplements unpacks RAC into 4 individual flags (up
// advisory inhibited, down advisory inhibited, increase-climb inhibited,
// increase-descent inhibited), MSB first.
func (m TCASResolutionAdvisoryMsg) ResolutionAdvisoryComplements() [4]bool {
	var out [4]bool
	for i := 0; i < 4; i++ {
		out[i] = m.RAC&(1<<uint(3-i)) != 0
	}
	return out
}

// ThreatICAO24 returns the intruder's ICAO24 address when ThreatType is
// ThreatTypeICAO24. The address occupies the top 24 bits of the 26-bit
// ThreatIdentity field.
func (m TCASResolutionAdvisoryMsg) ThreatICAO24() (uint32, bool) {
	if m.ThreatType != ThreatTypeICAO24 {
		return 0, false
	}
	return m.ThreatIdentity >> 2, true
}
