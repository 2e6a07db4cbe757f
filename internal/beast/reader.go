package beast

import (
	"bufio"
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"modes1090/pkg/adsb"
	"modes1090/pkg/decoder"
)

// Decoded pairs a Mode S variant with the Beast message it came from, for
// callers (persistence, fan-out, the TUI) that also want the signal level
// or raw frame bytes.
type Decoded struct {
	Message         *Message
	Variant         adsb.Variant
	TimestampMillis int64
}

// Reader pulls Beast-framed Mode S traffic off r, decodes every Mode S
// message through a *decoder.StatefulDecoder, and emits the results on a
// channel. Mode A/C and status messages are framed but not decoded (the
// core decoder only understands Mode S).
//
// A Reader owns exactly one StatefulDecoder and calls it from a single
// goroutine, honoring the decoder's single-threaded-cooperative contract.
type Reader struct {
	src     io.Reader
	framer  *Framer
	dec     *decoder.StatefulDecoder
	clock   Clock
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewReader creates a Reader. limiter may be nil to disable ingest pacing.
func NewReader(src io.Reader, dec *decoder.StatefulDecoder, limiter *rate.Limiter, logger *logrus.Logger) *Reader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Reader{
		src:     src,
		framer:  NewFramer(logger),
		dec:     dec,
		limiter: limiter,
		logger:  logger,
	}
}

// Run reads from the source until ctx is cancelled or the source returns
// an error (including io.EOF), sending each successfully decoded Mode S
// message on out. Run closes out before returning.
func (r *Reader) Run(ctx context.Context, out chan<- Decoded) error {
	defer close(out)

	br := bufio.NewReaderSize(r.src, 64*1024)
	chunk := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		n, err := br.Read(chunk)
		if n > 0 {
			r.process(ctx, chunk[:n], out)
		}
		if err != nil {
			return err
		}
	}
}

func (r *Reader) process(ctx context.Context, data []byte, out chan<- Decoded) {
	messages, err := r.framer.Feed(data)
	if err != nil {
		r.logger.WithError(err).Warn("modes1090/beast: framing error")
		return
	}

	for _, msg := range messages {
		if !msg.IsModeS() || !msg.IsValid() {
			continue
		}

		// Beast forwards the full 7/14-byte frame including its trailing
		// parity/CRC field, never pre-stripped.
		millis := r.clock.Millis(msg.ClockTicks)
		variant, err := r.dec.Decode(msg.Data, false, millis)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"message_type": msg.MessageType,
				"signal":       msg.Signal,
			}).WithError(err).Debug("modes1090/beast: decode failed")
			continue
		}

		select {
		case out <- Decoded{Message: msg, Variant: variant, TimestampMillis: millis}:
		case <-ctx.Done():
			return
		}
	}
}
