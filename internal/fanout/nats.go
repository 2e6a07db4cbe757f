// Package fanout publishes decoded messages to a NATS subject as JSON, so
// downstream consumers can subscribe to live traffic without touching the
// decoder process. Like package store, publishing runs off the decode hot
// path on a single worker goroutine and is best-effort.
package fanout

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Message is the JSON envelope published for every decoded variant.
type Message struct {
	ICAO24    string      `json:"icao24"`
	Qualifier uint8       `json:"qualifier"`
	Kind      string      `json:"kind"`
	Fields    interface{} `json:"fields"`
}

// Publisher queues Message values and publishes them to NATS from a single
// goroutine started by Run.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Logger
	queue  chan Message
}

// Connect dials url and returns a ready Publisher. Callers must call Run
// in a goroutine and Close on shutdown.
func Connect(url string, logger *logrus.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logrus.New()
	}

	conn, err := nats.Connect(url, nats.Name("modes1090"))
	if err != nil {
		return nil, fmt.Errorf("fanout: failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger,
		queue:  make(chan Message, 1024),
	}, nil
}

// Enqueue queues msg for publication, dropping it (and logging) if the
// queue is full rather than blocking the decode hot path.
func (p *Publisher) Enqueue(msg Message) {
	select {
	case p.queue <- msg:
	default:
		p.logger.Warn("fanout: publish queue full, dropping message")
	}
}

// Run drains the queue until ctx.Done() fires on the passed channel,
// publishing each message to modes1090.<icao24>.
func (p *Publisher) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-p.queue:
			p.publish(msg)
		}
	}
}

func (p *Publisher) publish(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.WithError(err).Warn("fanout: failed to marshal message")
		return
	}

	subject := "modes1090." + msg.ICAO24
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("fanout: failed to publish message")
	}
}

// Close flushes pending publishes and closes the NATS connection.
func (p *Publisher) Close() error {
	if err := p.conn.FlushTimeout(nats.DefaultTimeout); err != nil {
		p.logger.WithError(err).Debug("fanout: flush before close failed")
	}
	p.conn.Close()
	return nil
}
