// Package app wires the decoder core together with its ambient stack
// (logging, log rotation) and domain stack (Beast ingest, Postgres
// persistence, NATS fan-out, the terminal view) into a runnable daemon.
package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"modes1090/internal/beast"
	"modes1090/internal/fanout"
	"modes1090/internal/logging"
	"modes1090/internal/store"
	"modes1090/internal/tui"
	"modes1090/pkg/adsb"
	"modes1090/pkg/decoder"
)

// Application owns the daemon's lifecycle: it opens a frame source, drives
// it through a single StatefulDecoder, and fans decoded messages out to
// whichever optional sinks the Config enables.
type Application struct {
	config Config
	logger *logrus.Logger

	decoder    *decoder.StatefulDecoder
	logRotator *logging.Rotator
	store      *store.Store
	fanout     *fanout.Publisher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication creates an Application from config, ready to Start.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config:  config,
		logger:  logger,
		decoder: decoder.New(logger),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start initializes components, runs the ingest loop, and blocks until a
// shutdown signal arrives.
func (a *Application) Start() error {
	a.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting modes1090")

	if err := a.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := a.run(); err != nil {
		a.logger.WithError(err).Error("application error")
		return err
	}

	<-sigChan
	a.logger.Info("received shutdown signal")
	a.shutdown()

	return nil
}

func (a *Application) initializeComponents() error {
	var err error

	a.logRotator, err = logging.NewRotator(a.config.LogDir, a.config.LogRotateUTC, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}

	if a.config.PostgresDSN != "" {
		a.store, err = store.Open(a.config.PostgresDSN, a.logger)
		if err != nil {
			return fmt.Errorf("failed to open position store: %w", err)
		}
	}

	if a.config.NATSURL != "" {
		a.fanout, err = fanout.Connect(a.config.NATSURL, a.logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
	}

	return nil
}

func (a *Application) run() error {
	src, closeSrc, err := a.openSource()
	if err != nil {
		return fmt.Errorf("failed to open frame source: %w", err)
	}

	var limiter *rate.Limiter
	if a.config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.config.RateLimit), 1)
	}

	reader := beast.NewReader(src, a.decoder, limiter, a.logger)
	decoded := make(chan beast.Decoded, 256)

	var tuiUpdates chan tui.Update
	if a.config.TUI {
		tuiUpdates = make(chan tui.Update, 256)
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer closeSrc()
		if err := reader.Run(a.ctx, decoded); err != nil && a.ctx.Err() == nil {
			a.logger.WithError(err).Warn("beast reader stopped")
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.consume(decoded, tuiUpdates)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.logRotator.Start(a.ctx)
	}()

	if a.store != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.store.Run(a.ctx)
		}()
	}

	if a.fanout != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.fanout.Run(a.ctx.Done())
		}()
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.reportStatistics()
	}()

	if a.config.TUI {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			program := tea.NewProgram(tui.New(tuiUpdates), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				a.logger.WithError(err).Warn("tui exited with error")
			}
			a.cancel()
		}()
	}

	a.logger.Info("all components started")
	return nil
}

func (a *Application) openSource() (io.Reader, func(), error) {
	switch {
	case a.config.BeastAddr != "":
		conn, err := net.Dial("tcp", a.config.BeastAddr)
		if err != nil {
			return nil, nil, err
		}
		return conn, func() { conn.Close() }, nil
	case a.config.InputFile != "":
		f, err := os.Open(a.config.InputFile)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("no frame source configured: set --beast-addr or --input-file")
	}
}

// consume reads decoded Mode S messages, resolves positions where
// applicable, and forwards them to whichever sinks are enabled.
func (a *Application) consume(decoded <-chan beast.Decoded, tuiUpdates chan<- tui.Update) {
	for {
		select {
		case <-a.ctx.Done():
			return
		case d, ok := <-decoded:
			if !ok {
				return
			}
			a.handleDecoded(d, tuiUpdates)
		}
	}
}

func (a *Application) handleDecoded(d beast.Decoded, tuiUpdates chan<- tui.Update) {
	frame := d.Variant.Frame()
	icao24 := fmt.Sprintf("%06X", frame.Address)

	a.logger.WithFields(logrus.Fields{
		"icao24": icao24,
		"df":     frame.DownlinkFormat,
	}).Debug("decoded message")

	if a.fanout != nil {
		a.fanout.Enqueue(fanout.Message{
			ICAO24:    icao24,
			Qualifier: uint8(frame.Qualifier),
			Kind:      fmt.Sprintf("%T", d.Variant),
			Fields:    d.Variant,
		})
	}

	update := tui.Update{ICAO24: icao24}

	if decoder.IsPosition(d.Variant) && (a.store != nil || tuiUpdates != nil) {
		fix := a.decoder.ExtractPosition(d.Variant, d.TimestampMillis)
		if fix.HasPosition {
			if fix.HasAltitude {
				update.AltitudeFt = fix.AltitudeFt
				update.HasAlt = true
			}
			if a.store != nil {
				a.store.Enqueue(store.Fix{
					ICAO24:       icao24,
					Qualifier:    uint8(frame.Qualifier),
					Lat:          fix.Position.Latitude,
					Lon:          fix.Position.Longitude,
					AltitudeFt:   fix.AltitudeFt,
					HasAltitude:  fix.HasAltitude,
					AltitudeType: altitudeTypeName(fix.AltitudeType),
					ObservedAt:   time.Now().UnixMilli(),
				})
			}
		}
	}

	if tuiUpdates != nil {
		switch msg := d.Variant.(type) {
		case adsb.IdentificationMsg:
			update.Callsign = msg.Callsign
		case adsb.VelocityOverGroundMsg:
			if msg.HasVelocity() {
				update.SpeedKts = int(msg.GroundSpeed())
				update.HasSpeed = true
			}
		}
		select {
		case tuiUpdates <- update:
		default:
		}
	}
}

func altitudeTypeName(t adsb.AltitudeType) string {
	if t == adsb.AltitudeGNSS {
		return "gnss"
	}
	return "barometric"
}

func (a *Application) reportStatistics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.logger.WithField("tracked_aircraft", a.decoder.Len()).Info("decoder statistics")
			a.decoder.ClearStale()
		}
	}
}

func (a *Application) shutdown() {
	a.logger.Info("shutting down")
	a.cancel()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		a.logger.Warn("shutdown timeout, forcing exit")
	}

	if a.logRotator != nil {
		a.logRotator.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.fanout != nil {
		a.fanout.Close()
	}

	a.logger.Info("shutdown completed")
}
