package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// EmergencyState enumerates the ICAO Annex 10 emergency/priority states
// carried by TFC28 subtype 1 messages.
type EmergencyState uint8

const (
	EmergencyNone EmergencyState = iota
	EmergencyGeneral
	EmergencyLifeguardMedical
	EmergencyMinimumFuel
	EmergencyNoCommunications
	EmergencyUnlawfulInterference
	EmergencyDownedAircraft
	emergencyReserved
)

// EmergencyOrPriorityStatusMsg is a TFC28 subtype1 message.
type EmergencyOrPriorityStatusMsg struct {
	modes.Envelope

	State  EmergencyState
	Squawk int
}

// DecodeEmergencyOrPriorityStatus decodes a TFC28 subtype 1 message.
func DecodeEmergencyOrPriorityStatus(env modes.Envelope) (EmergencyOrPriorityStatusMsg, error) {
	if env.TypeCode() != 28 {
		return EmergencyOrPriorityStatusMsg{}, badFormat("emergency: type code %d != 28", env.TypeCode())
	}
	r := bits.NewReader(env.ME)
	subtype, err := r.Uint(5, 3)
	if err != nil {
		return EmergencyOrPriorityStatusMsg{}, err
	}
	if subtype != 1 {
		return EmergencyOrPriorityStatusMsg{}, badFormat("emergency: subtype %d != 1", subtype)
	}
	state, err := r.Uint(8, 3)
	if err != nil {
		return EmergencyOrPriorityStatusMsg{}, err
	}
	id, err := r.Uint(11, 13)
	if err != nil {
		return EmergencyOrPriorityStatusMsg{}, err
	}

	return EmergencyOrPriorityStatusMsg{
		Envelope: env,
		State:    EmergencyState(state),
		Squawk:   decodeSquawk(id),
	}, nil
}
