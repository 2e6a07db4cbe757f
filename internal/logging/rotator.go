// Package logging provides a daily-rotating, gzip-compressing log file
// writer. The daemon creates one under --log-dir and runs its rotation
// schedule; the daemon's logrus output is not redirected into it.
package logging

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Rotator writes to a single log file per calendar day, gzip-compressing
// and retiring the previous day's file once rotation happens.
type Rotator struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	currentFile *os.File
	currentDate string
	mutex       sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewRotator creates a Rotator writing under logDir, opening today's file
// immediately. A nil logger installs a logrus.Logger with default settings.
func NewRotator(logDir string, useUTC bool, logger *logrus.Logger) (*Rotator, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &Rotator{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := r.rotateLogFile(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	return r, nil
}

// Start runs the rotation scheduler until ctx or the Rotator's own Close is
// called, checking once a minute whether the calendar date has advanced.
func (r *Rotator) Start(ctx context.Context) {
	r.logger.Info("starting log rotator")

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("log rotator stopping")
			return
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.checkRotation()
		}
	}
}

func (r *Rotator) checkRotation() {
	now := r.now()
	currentDate := now.Format("2006-01-02")

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentDate != currentDate {
		r.logger.WithFields(logrus.Fields{
			"old_date": r.currentDate,
			"new_date": currentDate,
		}).Info("rotating log file")

		if err := r.rotateLogFile(); err != nil {
			r.logger.WithError(err).Error("failed to rotate log file")
		}
	}
}

func (r *Rotator) now() time.Time {
	if r.useUTC {
		return time.Now().UTC()
	}
	return time.Now()
}

func (r *Rotator) rotateLogFile() error {
	newDate := r.now().Format("2006-01-02")

	if r.currentFile != nil {
		oldFile := r.currentFile
		oldDate := r.currentDate

		if err := oldFile.Close(); err != nil {
			r.logger.WithError(err).Error("failed to close old log file")
		}

		go r.compressLogFile(oldDate)
	}

	filename := fmt.Sprintf("modes1090_%s.log", newDate)
	path := filepath.Join(r.logDir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = newDate

	r.logger.WithField("file", path).Info("created new log file")

	return nil
}

func (r *Rotator) compressLogFile(date string) {
	logFile := filepath.Join(r.logDir, fmt.Sprintf("modes1090_%s.log", date))
	gzipFile := filepath.Join(r.logDir, fmt.Sprintf("modes1090_%s.log.gz", date))

	r.logger.WithFields(logrus.Fields{
		"source": logFile,
		"target": gzipFile,
	}).Info("compressing log file")

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		r.logger.WithField("file", logFile).Debug("log file doesn't exist, skipping compression")
		return
	}

	src, err := os.Open(logFile)
	if err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("failed to open source file for compression")
		return
	}
	defer src.Close()

	dst, err := os.Create(gzipFile)
	if err != nil {
		r.logger.WithError(err).WithField("file", gzipFile).Error("failed to create compressed file")
		return
	}
	defer dst.Close()

	gzWriter := gzip.NewWriter(dst)
	gzWriter.Name = filepath.Base(logFile)
	gzWriter.ModTime = time.Now()

	if _, err := io.Copy(gzWriter, src); err != nil {
		r.logger.WithError(err).Error("failed to compress log file")
		return
	}
	if err := gzWriter.Close(); err != nil {
		r.logger.WithError(err).Error("failed to close gzip writer")
		return
	}
	if err := dst.Close(); err != nil {
		r.logger.WithError(err).Error("failed to close compressed file")
		return
	}

	if err := os.Remove(logFile); err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("failed to remove original log file")
		return
	}

	r.logger.WithField("file", gzipFile).Info("log file compressed successfully")
}

// GetWriter returns the currently open log file for use as an io.Writer.
func (r *Rotator) GetWriter() (io.Writer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return nil, fmt.Errorf("no current log file")
	}
	return r.currentFile, nil
}

// Close stops the rotation scheduler and closes the current log file.
func (r *Rotator) Close() error {
	r.logger.Info("closing log rotator")
	r.cancel()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("failed to close current log file")
			return err
		}
		r.currentFile = nil
	}
	return nil
}

// CurrentLogFile returns the path of the file currently being written.
func (r *Rotator) CurrentLogFile() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentDate == "" {
		return ""
	}
	return filepath.Join(r.logDir, fmt.Sprintf("modes1090_%s.log", r.currentDate))
}

// LogFiles lists every log file under logDir, plain and gzip-compressed.
func (r *Rotator) LogFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.logDir, "modes1090_*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}
	return files, nil
}

// CleanupOldLogs removes any log file (other than the one currently open)
// whose modification time is older than maxDays.
func (r *Rotator) CleanupOldLogs(maxDays int) error {
	if maxDays <= 0 {
		return fmt.Errorf("maxDays must be positive")
	}

	files, err := r.LogFiles()
	if err != nil {
		return fmt.Errorf("failed to get log files: %w", err)
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.CurrentLogFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("failed to stat log file")
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(file); err != nil {
				r.logger.WithError(err).WithField("file", file).Error("failed to remove old log file")
			} else {
				r.logger.WithField("file", file).Info("removed old log file")
				removed++
			}
		}
	}

	r.logger.WithField("count", removed).Info("cleaned up old log files")
	return nil
}
