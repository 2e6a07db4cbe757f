// Package decoder maintains per-aircraft state across a stream of Mode S
// frames and dispatches each one to the most specific pkg/adsb variant
// constructor its downlink format, type code, subtype, and the sender's
// currently known ADS-B version allow.
//
// Grounded on lib1090's StatefulModeSDecoder: a decoded message can
// depend on state carried by earlier messages from the same address (the
// declared ADS-B version, NIC supplement bits, and the even/odd CPR
// pairing), so decoding is a method on a stateful type rather than a free
// function.
package decoder

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"modes1090/pkg/adsb"
	"modes1090/pkg/cpr"
	"modes1090/pkg/modes"
)

const (
	// evictionMessageThreshold and evictionMapSizeThreshold gate the
	// staleness sweep so it only runs once decoding has generated enough
	// traffic to make an unbounded map plausible.
	evictionMessageThreshold = 1_000_000
	evictionMapSizeThreshold = 30_000

	// evictionIdleMillis is how long an address may go unseen before a
	// sweep evicts it.
	evictionIdleMillis = 3_600_000

	// airborneMaxRangeNM and surfaceMaxRangeNM are the CPR reasonableness
	// bounds from RTCA DO-260B.
	airborneMaxRangeNM = 180.0
	surfaceMaxRangeNM  = 45.0

	// airborneCPRWindowMillis and surfaceCPRWindowMillis bound how far apart
	// an even/odd CPR pair's timestamps may be before global decoding
	// refuses to combine them (RTCA DO-260B: 10s airborne, 50s surface).
	airborneCPRWindowMillis = 10_000
	surfaceCPRWindowMillis  = 50_000
)

// StatefulDecoder decodes Mode S frames while tracking per-aircraft
// context needed to resolve version-dependent message shapes and CPR
// positions. The zero value is not usable; construct with New.
type StatefulDecoder struct {
	mu       sync.Mutex
	aircraft map[modes.QualifiedAddress]*aircraftState
	msgCount uint64
	latest   int64

	log *logrus.Logger
}

// New constructs a StatefulDecoder. A nil logger installs a
// logrus.Logger with default settings, matching the teacher's own
// NewApplication convention of never leaving a component without a
// logger.
func New(log *logrus.Logger) *StatefulDecoder {
	if log == nil {
		log = logrus.New()
	}
	return &StatefulDecoder{
		aircraft: make(map[modes.QualifiedAddress]*aircraftState),
		log:      log,
	}
}

// Decode parses and dispatches a single Mode S frame. timestamp is a
// caller-defined monotonic clock (typically milliseconds since some
// epoch); it drives stale-entry eviction. CPR pairing uses the timestamp
// passed to ExtractPosition.
func (d *StatefulDecoder) Decode(frame []byte, noCRC bool, timestamp int64) (adsb.Variant, error) {
	env, err := modes.ParseFrame(frame, noCRC)
	if err != nil {
		return nil, err
	}
	return d.DecodeEnvelope(env, timestamp)
}

// DecodeEnvelope dispatches an already-parsed envelope. Exposed
// separately so callers with their own framing (e.g. the beast package)
// can skip re-parsing.
func (d *StatefulDecoder) DecodeEnvelope(env modes.Envelope, timestamp int64) (adsb.Variant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.msgCount++
	if timestamp > d.latest {
		d.latest = timestamp
	}
	d.evictStaleLocked()

	state := d.stateForLocked(env, timestamp)

	variant, err := d.dispatch(env, state)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"address": env.Address,
			"df":      env.DownlinkFormat,
		}).Debug("modes1090: decode failed: ", err)
		return nil, err
	}
	return variant, nil
}

func (d *StatefulDecoder) stateForLocked(env modes.Envelope, timestamp int64) *aircraftState {
	key := env.QualifiedAddress()
	state, ok := d.aircraft[key]
	if !ok {
		state = newAircraftState(timestamp)
		d.aircraft[key] = state
	}
	state.lastUsed = timestamp
	return state
}

func (d *StatefulDecoder) evictStaleLocked() {
	if d.msgCount <= evictionMessageThreshold || len(d.aircraft) <= evictionMapSizeThreshold {
		return
	}
	d.sweepLocked()
}

func (d *StatefulDecoder) sweepLocked() {
	for key, state := range d.aircraft {
		if d.latest-state.lastUsed > evictionIdleMillis {
			delete(d.aircraft, key)
		}
	}
}

// ClearStale forces an eviction pass regardless of the message-count and
// map-size thresholds that gate the automatic sweep, dropping any address
// not seen within the last evictionIdleMillis relative to the latest
// timestamp observed by Decode/DecodeEnvelope.
func (d *StatefulDecoder) ClearStale() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked()
}

// dispatch implements the DF/TFC/subtype decision tree, ported from
// StatefulModeSDecoder.decode.
func (d *StatefulDecoder) dispatch(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	switch env.DownlinkFormat {
	case 0:
		return adsb.DecodeShortACAS(env)
	case 4:
		return adsb.DecodeAltitudeReply(env)
	case 5:
		return adsb.DecodeIdentifyReply(env)
	case 11:
		return adsb.DecodeAllCallReply(env)
	case 16:
		return adsb.DecodeLongACAS(env)
	case 20:
		return adsb.DecodeCommBAltitudeReply(env)
	case 21:
		return adsb.DecodeCommBIdentifyReply(env)
	case 17, 18, 19:
		return d.dispatchExtendedSquitter(env, state)
	default:
		if env.DownlinkFormat >= 24 {
			return adsb.DecodeCommDExtendedLength(env)
		}
		return env, nil
	}
}

func (d *StatefulDecoder) dispatchExtendedSquitter(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	if env.DownlinkFormat == 18 && env.FirstField >= 4 {
		// CF 4-7 (TIS-B management, non-ICAO TIS-B and ADS-R traffic)
		// differ subtly from ADS-B proper (RTCA DO-260B 2.2.18); this
		// decoder does not special-case them and returns the envelope
		// as-is, same as the unrecognized-shape path. CF 0-3 go through
		// the type-code table below, keyed by their own address qualifier.
		return env, nil
	}
	if env.DownlinkFormat == 19 {
		// Military Extended Squitter formats are not publicly specified.
		return env, nil
	}

	tc := env.TypeCode()

	switch {
	case tc >= 1 && tc <= 4:
		return adsb.DecodeIdentification(env)

	case tc >= 5 && tc <= 8:
		return d.dispatchSurfacePosition(env, state)

	case (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22):
		return d.dispatchAirbornePosition(env, state)

	case tc == 19:
		return d.dispatchVelocity(env, state)

	case tc == 28:
		return d.dispatchAircraftStatus(env)

	case tc == 29:
		return d.dispatchTargetState(env, state)

	case tc == 31:
		return d.dispatchOperationalStatus(env, state)

	default:
		return env, nil
	}
}

func (d *StatefulDecoder) dispatchVelocity(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	subtype := env.ME[0] & 0x7
	switch {
	case subtype == 1 || subtype == 2:
		msg, err := adsb.DecodeVelocityOverGround(env)
		if err != nil {
			return nil, err
		}
		if msg.HasGeoMinusBaro() {
			state.hasGeoMinusBaro = true
			state.geoMinusBaro = msg.GeoMinusBaro()
		}
		return msg, nil
	case subtype == 3 || subtype == 4:
		msg, err := adsb.DecodeAirspeedHeading(env)
		if err != nil {
			return nil, err
		}
		if msg.HasGeoMinusBaro() {
			state.hasGeoMinusBaro = true
			state.geoMinusBaro = msg.GeoMinusBaro()
		}
		return msg, nil
	default:
		return env, nil
	}
}

func (d *StatefulDecoder) dispatchAircraftStatus(env modes.Envelope) (adsb.Variant, error) {
	subtype := env.ME[0] & 0x7
	switch subtype {
	case 1:
		return adsb.DecodeEmergencyOrPriorityStatus(env)
	case 2:
		return adsb.DecodeTCASResolutionAdvisory(env)
	default:
		return env, nil
	}
}

func (d *StatefulDecoder) dispatchTargetState(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	subtype := (env.ME[0] >> 1) & 0x3
	// DO-260B 2.2.3.2.7.1: a version-0 transponder should never send
	// subtype 1, but some do; ME bit 10 (the field a v1+ decoder would
	// read as part of the target altitude) doubles as a heuristic guard
	// against decoding a v0 transponder's malformed message as if it
	// were a real Target State & Status report.
	me11 := env.ME[1]&0x20 != 0
	if subtype == 1 && (state.version > 0 || !me11) {
		return adsb.DecodeTargetStateAndStatus(env)
	}
	return env, nil
}

func (d *StatefulDecoder) dispatchOperationalStatus(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	subtype := env.ME[0] & 0x7

	version, err := adsb.OperationalStatusVersion(env)
	if err != nil {
		return nil, err
	}
	if version > state.version && version <= 2 {
		state.version = version
	}

	switch subtype {
	case 0:
		switch version {
		case 0:
			return adsb.DecodeOperationalStatusV0(env)
		case 1:
			msg, err := adsb.DecodeAirborneOperationalStatusV1(env)
			if err != nil {
				return nil, err
			}
			state.nicSupplA = msg.HasNICSupplementA()
			return msg, nil
		case 2:
			msg, err := adsb.DecodeAirborneOperationalStatusV1(env)
			if err != nil {
				return nil, err
			}
			state.nicSupplA = msg.HasNICSupplementA()
			return adsb.AirborneOperationalStatusV2Msg{AirborneOperationalStatusV1Msg: msg}, nil
		default:
			return nil, badFormatVersion("airborne", version)
		}
	case 1:
		switch version {
		case 0:
			return adsb.DecodeOperationalStatusV0(env)
		case 1:
			msg, err := adsb.DecodeSurfaceOperationalStatusV1(env)
			if err != nil {
				return nil, err
			}
			state.nicSupplA = msg.HasNICSupplementA()
			state.nicSupplC = msg.NICSupplementC()
			return msg, nil
		case 2:
			msg, err := adsb.DecodeSurfaceOperationalStatusV1(env)
			if err != nil {
				return nil, err
			}
			state.nicSupplA = msg.HasNICSupplementA()
			state.nicSupplC = msg.NICSupplementC()
			return adsb.SurfaceOperationalStatusV2Msg{SurfaceOperationalStatusV1Msg: msg}, nil
		default:
			return nil, badFormatVersion("surface", version)
		}
	default:
		return env, nil
	}
}

func (d *StatefulDecoder) dispatchAirbornePosition(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	msg, err := adsb.DecodeAirbornePositionV0(env)
	if err != nil {
		return nil, err
	}
	switch state.version {
	case 1:
		return adsb.AirbornePositionV1Msg{AirbornePositionV0Msg: msg, NICSupplA: state.nicSupplA}, nil
	case 2:
		return adsb.AirbornePositionV2Msg{AirbornePositionV1Msg: adsb.AirbornePositionV1Msg{
			AirbornePositionV0Msg: msg, NICSupplA: state.nicSupplA,
		}}, nil
	default:
		return msg, nil
	}
}

func (d *StatefulDecoder) dispatchSurfacePosition(env modes.Envelope, state *aircraftState) (adsb.Variant, error) {
	msg, err := adsb.DecodeSurfacePositionV0(env)
	if err != nil {
		return nil, err
	}
	switch state.version {
	case 1:
		return adsb.SurfacePositionV1Msg{SurfacePositionV0Msg: msg, NICSupplA: state.nicSupplA}, nil
	case 2:
		return adsb.SurfacePositionV2Msg{SurfacePositionV1Msg: adsb.SurfacePositionV1Msg{
			SurfacePositionV0Msg: msg, NICSupplA: state.nicSupplA,
		}}, nil
	default:
		return msg, nil
	}
}

// PositionFix is a resolved geographic position together with the
// altitude carried by the same message, mirroring lib1090's
// extractPosition helper.
type PositionFix struct {
	Position     cpr.Position
	HasPosition  bool
	AltitudeFt   int
	HasAltitude  bool
	AltitudeType adsb.AltitudeType
}

// ExtractPosition feeds v's CPR fields through the sender's pairing cell
// and returns the resolved fix, if any. timestamp is the same
// milliseconds-since-epoch (or other monotonic clock) value the frame was
// passed to Decode/DecodeEnvelope with, so the CPR decoder can both order
// an even/odd pair and reject one that straddles too long a gap.
func (d *StatefulDecoder) ExtractPosition(v adsb.Variant, timestamp int64) PositionFix {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := v.Frame().QualifiedAddress()
	state, ok := d.aircraft[key]
	if !ok {
		return PositionFix{}
	}

	switch m := v.(type) {
	case adsb.AirbornePositionV0Msg:
		return d.extractAirborne(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp, m.AltitudeType, m.HasAltitude(), m.Altitude())
	case adsb.AirbornePositionV1Msg:
		return d.extractAirborne(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp, m.AltitudeType, m.HasAltitude(), m.Altitude())
	case adsb.AirbornePositionV2Msg:
		return d.extractAirborne(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp, m.AltitudeType, m.HasAltitude(), m.Altitude())
	case adsb.SurfacePositionV0Msg:
		return d.extractSurface(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp)
	case adsb.SurfacePositionV1Msg:
		return d.extractSurface(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp)
	case adsb.SurfacePositionV2Msg:
		return d.extractSurface(state, m.CPRFormat == 1, m.LatCPR, m.LonCPR, timestamp)
	default:
		return PositionFix{}
	}
}

func (d *StatefulDecoder) extractAirborne(state *aircraftState, odd bool, lat, lon uint32, timestamp int64, altType adsb.AltitudeType, hasAlt bool, altFt int) PositionFix {
	pos, ok := state.position.airborne.Put(cpr.Frame{LatCPR: lat, LonCPR: lon, Odd: odd}, timestamp, airborneMaxRangeNM, airborneCPRWindowMillis)
	return PositionFix{
		Position:     pos,
		HasPosition:  ok,
		AltitudeFt:   altFt,
		HasAltitude:  hasAlt,
		AltitudeType: altType,
	}
}

func (d *StatefulDecoder) extractSurface(state *aircraftState, odd bool, lat, lon uint32, timestamp int64) PositionFix {
	pos, ok := state.position.surface.Put(cpr.Frame{LatCPR: lat, LonCPR: lon, Odd: odd, Surface: true}, timestamp, surfaceMaxRangeNM, surfaceCPRWindowMillis)
	return PositionFix{
		Position:     pos,
		HasPosition:  ok,
		AltitudeType: adsb.AltitudeBarometric,
	}
}

// AdsbVersion returns the sender's currently known ADS-B version, or 0 if
// the address has never been seen.
func (d *StatefulDecoder) AdsbVersion(addr modes.QualifiedAddress) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if state, ok := d.aircraft[addr]; ok {
		return state.version
	}
	return 0
}

// GeoMinusBaro returns the sender's most recently reported GNSS-minus-
// barometric altitude offset, if any velocity or airspeed message has
// carried one.
func (d *StatefulDecoder) GeoMinusBaro(addr modes.QualifiedAddress) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if state, ok := d.aircraft[addr]; ok {
		return state.geoMinusBaro, state.hasGeoMinusBaro
	}
	return 0, false
}

// Len reports the number of tracked addresses, mainly for tests exercising
// the eviction policy.
func (d *StatefulDecoder) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.aircraft)
}

// IsAirbornePosition reports whether v is any version of airborne
// position message.
func IsAirbornePosition(v adsb.Variant) bool {
	switch v.(type) {
	case adsb.AirbornePositionV0Msg, adsb.AirbornePositionV1Msg, adsb.AirbornePositionV2Msg:
		return true
	default:
		return false
	}
}

// IsSurfacePosition reports whether v is any version of surface position
// message.
func IsSurfacePosition(v adsb.Variant) bool {
	switch v.(type) {
	case adsb.SurfacePositionV0Msg, adsb.SurfacePositionV1Msg, adsb.SurfacePositionV2Msg:
		return true
	default:
		return false
	}
}

// IsPosition reports whether v is any position message, airborne or
// surface.
func IsPosition(v adsb.Variant) bool {
	return IsAirbornePosition(v) || IsSurfacePosition(v)
}

func badFormatVersion(kind string, version uint8) error {
	return &adsb.BadFormatError{Reason: fmt.Sprintf("%s operational status has invalid version %d", kind, version)}
}
