package adsb

import (
	"strings"

	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// EmitterCategory identifies the broad class of vehicle a callsign message
// was transmitted by (RTCA DO-260B Table 2-6, set-dependent on TypeCode).
type EmitterCategory struct {
	Set   uint8 // TypeCode: 1=reserved, 2=surface emergency vehicle, 3=surface service vehicle, 4=airborne
	Value uint8 // CA field, 0-7
}

// IdentificationMsg carries an aircraft's callsign and emitter category
// (TFC 1-4, RTCA DO-260B 2.2.3.2.4 "Aircraft Identification and Category").
type IdentificationMsg struct {
	modes.Envelope

	Category EmitterCategory
	Callsign string
}

// DecodeIdentification decodes an Identification message from env's ME
// field. env.TypeCode() must be in 1-4.
func DecodeIdentification(env modes.Envelope) (IdentificationMsg, error) {
	tc := env.TypeCode()
	if tc < 1 || tc > 4 {
		return IdentificationMsg{}, badFormat("identification: type code %d out of range 1-4", tc)
	}

	r := bits.NewReader(env.ME)
	ca, err := r.Uint(5, 3)
	if err != nil {
		return IdentificationMsg{}, err
	}

	var sb strings.Builder
	for i := 0; i < 8; i++ {
		c, err := r.Uint(8+i*6, 6)
		if err != nil {
			return IdentificationMsg{}, err
		}
		sb.WriteByte(charset[c])
	}

	return IdentificationMsg{
		Envelope: env,
		Category: EmitterCategory{Set: tc, Value: uint8(ca)},
		Callsign: sb.String(),
	}, nil
}
