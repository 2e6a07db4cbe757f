package fanout

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	p := &Publisher{logger: logger, queue: make(chan Message, 2)}

	p.Enqueue(Message{ICAO24: "a"})
	p.Enqueue(Message{ICAO24: "b"})
	p.Enqueue(Message{ICAO24: "c"}) // queue full, must not block

	assert.Len(t, p.queue, 2)
	first := <-p.queue
	second := <-p.queue
	assert.Equal(t, "a", first.ICAO24)
	assert.Equal(t, "b", second.ICAO24)
}
