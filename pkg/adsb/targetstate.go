package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// TargetAltitudeSource identifies where a Target State & Status message's
// target altitude originates.
type TargetAltitudeSource uint8

const (
	TargetAltitudeUnknown TargetAltitudeSource = iota
	TargetAltitudeMCP
	TargetAltitudeFMS
)

// TargetStateAndStatusMsg is a TFC29 subtype1 message (RTCA DO-260B
// 2.2.3.2.7.1.3), introduced in ADS-B version 1. Only subtype 1 decodes;
// any other subtype is a format error. The constructor does not know the
// sender's ADS-B version; pkg/decoder's dispatch suppresses suspected
// version-0 messages before calling it.
type TargetStateAndStatusMsg struct {
	modes.Envelope

	HasTargetAltitude bool
	TargetAltitudeFt  int
	AltitudeSource    TargetAltitudeSource

	HasTargetHeading bool
	TargetHeadingDeg float64

	HorizontalModeActive bool
	VNAVModeActive       bool
	AltitudeHoldActive   bool
	ApproachModeActive   bool
	TCASOperational      bool
	LNAVModeActive       bool
}

// DecodeTargetStateAndStatus decodes a TFC29 subtype1 message.
func DecodeTargetStateAndStatus(env modes.Envelope) (TargetStateAndStatusMsg, error) {
	if env.TypeCode() != 29 {
		return TargetStateAndStatusMsg{}, badFormat("target state: type code %d != 29", env.TypeCode())
	}
	r := bits.NewReader(env.ME)
	subtype, err := r.Uint(5, 2)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	if subtype != 1 {
		return TargetStateAndStatusMsg{}, badFormat("target state: subtype %d != 1 (v0 layout unsupported)", subtype)
	}

	altSource, err := r.Uint(7, 1)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	altRaw, err := r.Uint(8, 11)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	headingStatus, err := r.Bit(20)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	headingRaw, err := r.Uint(21, 9)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	horiz, err := r.Bit(46)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	vnav, err := r.Bit(47)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	altHold, err := r.Bit(48)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	approach, err := r.Bit(50)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	tcas, err := r.Bit(51)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}
	lnav, err := r.Bit(52)
	if err != nil {
		return TargetStateAndStatusMsg{}, err
	}

	msg := TargetStateAndStatusMsg{
		Envelope:             env,
		AltitudeSource:       TargetAltitudeSource(altSource + 1),
		HorizontalModeActive: horiz,
		VNAVModeActive:       vnav,
		AltitudeHoldActive:   altHold,
		ApproachModeActive:   approach,
		TCASOperational:      tcas,
		LNAVModeActive:       lnav,
	}

	if altRaw != 0 {
		msg.HasTargetAltitude = true
		msg.TargetAltitudeFt = (int(altRaw) - 1) * 32
	}
	if headingStatus {
		msg.HasTargetHeading = true
		msg.TargetHeadingDeg = float64(headingRaw) * 180.0 / 256.0
	}

	return msg, nil
}
