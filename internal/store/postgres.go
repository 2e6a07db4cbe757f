// Package store persists resolved position fixes to PostgreSQL. Writes are
// queued from the decode hot path and applied by a single background
// goroutine, so a slow or unreachable database never blocks decoding.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	id           BIGSERIAL PRIMARY KEY,
	icao24       TEXT NOT NULL,
	qualifier    SMALLINT NOT NULL,
	lat          DOUBLE PRECISION NOT NULL,
	lon          DOUBLE PRECISION NOT NULL,
	altitude_ft  INTEGER,
	altitude_type TEXT NOT NULL,
	observed_at  BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS positions_icao24_idx ON positions (icao24);
`

// Fix is one resolved position observation, ready to persist.
type Fix struct {
	ICAO24       string
	Qualifier    uint8
	Lat          float64
	Lon          float64
	AltitudeFt   int
	HasAltitude  bool
	AltitudeType string
	ObservedAt   int64
}

// Store queues Fix values on a channel and writes them to Postgres from a
// single goroutine started by Run.
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
	queue  chan Fix
}

// Open connects to dsn, applies the schema, and returns a ready Store.
// Callers must call Run in a goroutine and Close on shutdown.
func Open(dsn string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to apply schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger,
		queue:  make(chan Fix, 1024),
	}, nil
}

// Enqueue queues fix for persistence, dropping it (and logging) if the
// queue is full rather than blocking the decode hot path.
func (s *Store) Enqueue(fix Fix) {
	select {
	case s.queue <- fix:
	default:
		s.logger.Warn("store: position queue full, dropping fix")
	}
}

// Run drains the queue until ctx is cancelled, writing each fix in turn.
func (s *Store) Run(ctx context.Context) {
	const insert = `INSERT INTO positions (icao24, qualifier, lat, lon, altitude_ft, altitude_type, observed_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for {
		select {
		case <-ctx.Done():
			return
		case fix := <-s.queue:
			var altitude sql.NullInt64
			if fix.HasAltitude {
				altitude = sql.NullInt64{Int64: int64(fix.AltitudeFt), Valid: true}
			}

			if _, err := s.db.ExecContext(ctx, insert, fix.ICAO24, fix.Qualifier, fix.Lat, fix.Lon, altitude, fix.AltitudeType, fix.ObservedAt); err != nil {
				s.logger.WithError(err).WithField("icao24", fix.ICAO24).Warn("store: failed to write position")
			}
		}
	}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
