package cpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeGlobalAirborneKnownPair(t *testing.T) {
	// Classic dump1090/pyModeS reference pair: an even and odd frame from
	// the same aircraft near 52.25N 3.91E.
	even := Frame{LatCPR: 93000, LonCPR: 51372, Odd: false}
	odd := Frame{LatCPR: 74158, LonCPR: 50194, Odd: true}

	pos, ok := DecodeGlobal(even, odd, true, 0, 0)
	assert.True(t, ok)
	assert.InDelta(t, 52.25, pos.Latitude, 0.5)
	assert.InDelta(t, 3.91, pos.Longitude, 0.5)
}

func TestDecodeGlobalRejectsMismatchedFormats(t *testing.T) {
	_, ok := DecodeGlobal(Frame{Odd: false}, Frame{Odd: false}, true, 0, 0)
	assert.False(t, ok)
}

func TestDecodeLocalWithinRange(t *testing.T) {
	ref := Position{Latitude: 52.0, Longitude: 4.0}
	f := Frame{LatCPR: 93000, LonCPR: 51372, Odd: false}
	pos := DecodeLocal(f, ref)
	assert.InDelta(t, ref.Latitude, pos.Latitude, 2)
}

func TestReasonableRejectsFarAway(t *testing.T) {
	ref := Position{Latitude: 0, Longitude: 0}
	far := Position{Latitude: 45, Longitude: 45}
	assert.False(t, Reasonable(far, ref, 180))
}

func TestReasonableAcceptsNearby(t *testing.T) {
	ref := Position{Latitude: 52.0, Longitude: 4.0}
	near := Position{Latitude: 52.01, Longitude: 4.01}
	assert.True(t, Reasonable(near, ref, 180))
}

func TestPositionDecoderPutGlobalThenLocal(t *testing.T) {
	var d PositionDecoder
	even := Frame{LatCPR: 93000, LonCPR: 51372, Odd: false}
	odd := Frame{LatCPR: 74158, LonCPR: 50194, Odd: true}

	_, ok := d.Put(even, 1000, 180, 10000)
	assert.False(t, ok, "single frame with no reference should not decode")

	pos, ok := d.Put(odd, 2000, 180, 10000)
	assert.True(t, ok)
	assert.InDelta(t, 52.25, pos.Latitude, 0.5)

	pos2, ok := d.Put(even, 3000, 180, 10000)
	assert.True(t, ok)
	assert.InDelta(t, pos.Latitude, pos2.Latitude, 0.5)
}

func TestPositionDecoderRejectsPairOutsideWindow(t *testing.T) {
	var d PositionDecoder
	even := Frame{LatCPR: 93000, LonCPR: 51372, Odd: false}
	odd := Frame{LatCPR: 74158, LonCPR: 50194, Odd: true}

	_, ok := d.Put(even, 0, 180, 10000)
	assert.False(t, ok, "single frame with no reference should not decode")

	// The odd frame arrives 10,001ms later, just past the 10s airborne
	// pairing window, and there is no prior fix to fall back to locally.
	_, ok = d.Put(odd, 10001, 180, 10000)
	assert.False(t, ok, "pair straddling more than the window must not globally decode")
}

func TestNLLookupMatchesFunction(t *testing.T) {
	for _, lat := range []float64{0, 10, 45, 60, 80, 86, 89} {
		assert.Equal(t, nlFunction(lat), nlLookup(lat), "lat=%v", lat)
	}
}
