package decoder

import "modes1090/pkg/cpr"

// aircraftState is the per-address decoding context a StatefulDecoder must
// remember across messages: the ADS-B version inferred from Operational
// Status broadcasts, the NIC supplement bits that broadcast carries, the
// most recent geo-minus-baro offset stashed by velocity/airspeed
// messages, and the CPR pairing cell used to resolve position.
//
// Grounded on StatefulModeSDecoder.DecoderData (lib1090): version starts
// at 0 and only ever increases until the entry is evicted, matching the
// invariant that a real transponder's declared version cannot regress.
type aircraftState struct {
	version   uint8
	nicSupplA bool
	nicSupplC bool

	hasGeoMinusBaro bool
	geoMinusBaro    int

	position aircraftPosition
	lastUsed int64
}

// aircraftPosition wraps a CPR pairing cell per surface/airborne kind,
// since the two use independent even/odd sequences and separate
// reasonableness ranges (RTCA DO-260B: 180 NM airborne, 45 NM surface).
type aircraftPosition struct {
	airborne cpr.PositionDecoder
	surface  cpr.PositionDecoder
}

func newAircraftState(now int64) *aircraftState {
	return &aircraftState{lastUsed: now}
}
