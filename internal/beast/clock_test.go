package beast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockMillisMonotonicWithinOneEpoch(t *testing.T) {
	var c Clock

	first := c.Millis(0)
	second := c.Millis(clockHz) // one second of ticks later

	assert.Equal(t, int64(0), first)
	assert.Equal(t, int64(1000), second)
}

func TestClockMillisHandlesWraparound(t *testing.T) {
	var c Clock

	nearWrap := clockMask - clockHz/2 // half a second before the counter wraps
	before := c.Millis(nearWrap)

	after := c.Millis(clockHz / 2) // wrapped, half a second later on the wire

	// after must be strictly greater than before despite the raw counter
	// value going down.
	assert.Greater(t, after, before)
}

func TestClockMillisDoesNotTreatSmallBackwardJitterAsWraparound(t *testing.T) {
	var c Clock

	c.Millis(1_000_000)
	before := c.epochs

	// a tiny backward step (reordered reads within one buffer) should not
	// be treated as a full wraparound.
	c.Millis(999_000)

	assert.Equal(t, before, c.epochs)
}
