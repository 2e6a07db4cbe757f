package store

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := &Store{logger: logger, queue: make(chan Fix, 2)}

	s.Enqueue(Fix{ICAO24: "a"})
	s.Enqueue(Fix{ICAO24: "b"})
	s.Enqueue(Fix{ICAO24: "c"}) // queue full, must not block

	assert.Len(t, s.queue, 2)
	first := <-s.queue
	second := <-s.queue
	assert.Equal(t, "a", first.ICAO24)
	assert.Equal(t, "b", second.ICAO24)
}
