package adsb

import (
	"modes1090/pkg/bits"
	"modes1090/pkg/modes"
)

// OperationalStatusV0Msg is a TFC31 message from an ADS-B version 0
// emitter. Version 0 never splits the message into airborne/surface
// shapes, so both subtypes decode to this single flat variant.
type OperationalStatusV0Msg struct {
	modes.Envelope

	Subtype  uint8
	Capability uint16
	OperationalMode uint16
}

// DecodeOperationalStatusV0 decodes a TFC31 message under the assumption
// that the emitter reports ADS-B version 0.
func DecodeOperationalStatusV0(env modes.Envelope) (OperationalStatusV0Msg, error) {
	_, subtype, err := opStatusHeader(env)
	if err != nil {
		return OperationalStatusV0Msg{}, err
	}
	r := bits.NewReader(env.ME)
	cc, err := r.Uint(8, 16)
	if err != nil {
		return OperationalStatusV0Msg{}, err
	}
	om, err := r.Uint(24, 16)
	if err != nil {
		return OperationalStatusV0Msg{}, err
	}
	return OperationalStatusV0Msg{
		Envelope:        env,
		Subtype:         subtype,
		Capability:      uint16(cc),
		OperationalMode: uint16(om),
	}, nil
}

// AirborneOperationalStatusV1Msg is a TFC31 subtype0 message from a
// version 1 or 2 emitter.
type AirborneOperationalStatusV1Msg struct {
	modes.Envelope

	Capability      uint16
	OperationalMode uint16
	Version         uint8
	nicSupplA       bool
	NACp            uint8
	GVA             uint8
	SIL             uint8
	SILSupplement   bool
	NICBaro         bool
	HorizontalRefIsTrueNorth bool
}

// DecodeAirborneOperationalStatusV1 decodes a TFC31 subtype0 message and
// validates that the encoded version is 1 or 2.
func DecodeAirborneOperationalStatusV1(env modes.Envelope) (AirborneOperationalStatusV1Msg, error) {
	_, subtype, err := opStatusHeader(env)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	if subtype != 0 {
		return AirborneOperationalStatusV1Msg{}, badFormat("airborne operational status: subtype %d != 0", subtype)
	}

	r := bits.NewReader(env.ME)
	cc, err := r.Uint(8, 16)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	om, err := r.Uint(24, 16)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	version, err := r.Uint(40, 3)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	if version != 1 && version != 2 {
		return AirborneOperationalStatusV1Msg{}, badFormat("airborne operational status: invalid version %d", version)
	}
	nicA, err := r.Bit(43)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	nacp, err := r.Uint(44, 4)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	gva, err := r.Uint(48, 2)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	sil, err := r.Uint(50, 2)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	nicBaro, err := r.Bit(52)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	horizRef, err := r.Bit(53)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}
	silSuppl, err := r.Bit(54)
	if err != nil {
		return AirborneOperationalStatusV1Msg{}, err
	}

	return AirborneOperationalStatusV1Msg{
		Envelope:                 env,
		Capability:               uint16(cc),
		OperationalMode:          uint16(om),
		Version:                  uint8(version),
		nicSupplA:                nicA,
		NACp:                     uint8(nacp),
		GVA:                      uint8(gva),
		SIL:                      uint8(sil),
		SILSupplement:            silSuppl,
		NICBaro:                  nicBaro,
		HorizontalRefIsTrueNorth: horizRef,
	}, nil
}

// HasNICSupplementA reports the NIC supplement A bit, used to disambiguate
// NIC lookups jointly with the position message's NICb bit.
func (m AirborneOperationalStatusV1Msg) HasNICSupplementA() bool { return m.nicSupplA }

// AirborneOperationalStatusV2Msg is bit-for-bit identical to V1; version 2
// changes only how NACp/SIL/GVA feed into containment-radius lookups
// upstream, which is out of scope for the decoder itself.
type AirborneOperationalStatusV2Msg struct {
	AirborneOperationalStatusV1Msg
}

// SurfaceOperationalStatusV1Msg is a TFC31 subtype1 message from a version
// 1 or 2 emitter.
type SurfaceOperationalStatusV1Msg struct {
	modes.Envelope

	Capability      uint16
	LengthWidthCode uint8
	OperationalMode uint16
	Version         uint8
	nicSupplA       bool
	nicSupplC       bool
	NACp            uint8
	SIL             uint8
	SILSupplement   bool
	HorizontalRefIsTrueNorth bool
}

// DecodeSurfaceOperationalStatusV1 decodes a TFC31 subtype1 message and
// validates that the encoded version is 1 or 2.
func DecodeSurfaceOperationalStatusV1(env modes.Envelope) (SurfaceOperationalStatusV1Msg, error) {
	_, subtype, err := opStatusHeader(env)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	if subtype != 1 {
		return SurfaceOperationalStatusV1Msg{}, badFormat("surface operational status: subtype %d != 1", subtype)
	}

	r := bits.NewReader(env.ME)
	cc, err := r.Uint(8, 12)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	lw, err := r.Uint(20, 4)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	om, err := r.Uint(24, 16)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	version, err := r.Uint(40, 3)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	if version != 1 && version != 2 {
		return SurfaceOperationalStatusV1Msg{}, badFormat("surface operational status: invalid version %d", version)
	}
	nicA, err := r.Bit(43)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	nacp, err := r.Uint(44, 4)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	nicC, err := r.Bit(48)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	sil, err := r.Uint(50, 2)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	horizRef, err := r.Bit(53)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}
	silSuppl, err := r.Bit(54)
	if err != nil {
		return SurfaceOperationalStatusV1Msg{}, err
	}

	return SurfaceOperationalStatusV1Msg{
		Envelope:                 env,
		Capability:               uint16(cc),
		LengthWidthCode:          uint8(lw),
		OperationalMode:          uint16(om),
		Version:                  uint8(version),
		nicSupplA:                nicA,
		nicSupplC:                nicC,
		NACp:                     uint8(nacp),
		SIL:                      uint8(sil),
		SILSupplement:            silSuppl,
		HorizontalRefIsTrueNorth: horizRef,
	}, nil
}

// HasNICSupplementA reports the NIC supplement A bit.
func (m SurfaceOperationalStatusV1Msg) HasNICSupplementA() bool { return m.nicSupplA }

// NICSupplementC reports the NIC supplement C bit, used only by surface
// position messages to select between two NIC lookup tables.
func (m SurfaceOperationalStatusV1Msg) NICSupplementC() bool { return m.nicSupplC }

// SurfaceOperationalStatusV2Msg is bit-for-bit identical to V1.
type SurfaceOperationalStatusV2Msg struct {
	SurfaceOperationalStatusV1Msg
}

// opStatusHeader validates TypeCode and extracts the subtype shared by
// every TFC31 shape.
func opStatusHeader(env modes.Envelope) (tc uint8, subtype uint8, err error) {
	tc = env.TypeCode()
	if tc != 31 {
		return 0, 0, badFormat("operational status: type code %d != 31", tc)
	}
	r := bits.NewReader(env.ME)
	st, err := r.Uint(5, 3)
	if err != nil {
		return 0, 0, err
	}
	if st > 1 {
		return 0, 0, badFormat("operational status: subtype %d not in {0,1}", st)
	}
	return tc, uint8(st), nil
}

// OperationalStatusVersion reads the ADS-B version field (bits 40-42 of
// the ME) without fully decoding the rest of the message, so the
// dispatcher can pick the correct concrete constructor before committing
// to one.
func OperationalStatusVersion(env modes.Envelope) (uint8, error) {
	r := bits.NewReader(env.ME)
	v, err := r.Uint(40, 3)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
