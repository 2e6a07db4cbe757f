package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRotator(t *testing.T) {
	tests := []struct {
		name   string
		logDir string
		useUTC bool
	}{
		{name: "plain directory", logDir: "test_logs", useUTC: false},
		{name: "UTC timezone", logDir: "test_logs_utc", useUTC: true},
		{name: "nested directory creation", logDir: "nested/test/logs", useUTC: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer os.RemoveAll(tt.logDir)
			os.RemoveAll(tt.logDir)

			logger := logrus.New()
			logger.SetOutput(io.Discard)

			r, err := NewRotator(tt.logDir, tt.useUTC, logger)
			require.NoError(t, err)
			require.NotNil(t, r)
			defer r.Close()

			assert.DirExists(t, tt.logDir)

			writer, err := r.GetWriter()
			assert.NoError(t, err)
			assert.NotNil(t, writer)

			currentFile := r.CurrentLogFile()
			assert.NotEmpty(t, currentFile)
			assert.FileExists(t, currentFile)
		})
	}
}

func TestRotatorGetWriter(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	writer, err := r.GetWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)

	testData := "test log entry\n"
	n, err := writer.Write([]byte(testData))
	assert.NoError(t, err)
	assert.Equal(t, len(testData), n)

	content, err := os.ReadFile(r.CurrentLogFile())
	assert.NoError(t, err)
	assert.Equal(t, testData, string(content))
}

func TestRotatorLogFiles(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	testFiles := []string{
		"modes1090_2023-01-01.log",
		"modes1090_2023-01-02.log.gz",
		"modes1090_2023-01-03.log",
	}
	for _, filename := range testFiles {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, filename), []byte("test content"), 0644))
	}

	files, err := r.LogFiles()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(files), len(testFiles))

	fileSet := make(map[string]bool)
	for _, file := range files {
		fileSet[filepath.Base(file)] = true
	}
	for _, testFile := range testFiles {
		assert.True(t, fileSet[testFile], "expected file %s not found", testFile)
	}
}

func TestRotatorCleanupOldLogs(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	oldFile := filepath.Join(tempDir, "modes1090_2023-01-01.log")
	require.NoError(t, os.WriteFile(oldFile, []byte("old content"), 0644))
	oldTime := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	recentFile := filepath.Join(tempDir, "modes1090_2023-12-31.log")
	require.NoError(t, os.WriteFile(recentFile, []byte("recent content"), 0644))

	assert.NoError(t, r.CleanupOldLogs(5))
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, recentFile)
	assert.FileExists(t, r.CurrentLogFile())
}

func TestRotatorCleanupOldLogsInvalidMaxDays(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	err = r.CleanupOldLogs(0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maxDays must be positive")

	err = r.CleanupOldLogs(-1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maxDays must be positive")
}

func TestRotatorClose(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)

	writer, err := r.GetWriter()
	require.NoError(t, err)
	_, err = writer.Write([]byte("test data"))
	require.NoError(t, err)

	assert.NoError(t, r.Close())

	writer, err = r.GetWriter()
	assert.Error(t, err)
	assert.Nil(t, writer)
}

func TestRotatorCompressLogFile(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	testDate := "2023-01-01"
	testFile := filepath.Join(tempDir, fmt.Sprintf("modes1090_%s.log", testDate))
	testContent := "test log content\nline 2\nline 3\n"
	require.NoError(t, os.WriteFile(testFile, []byte(testContent), 0644))

	r.compressLogFile(testDate)
	time.Sleep(100 * time.Millisecond)

	assert.NoFileExists(t, testFile)

	compressedFile := filepath.Join(tempDir, fmt.Sprintf("modes1090_%s.log.gz", testDate))
	assert.FileExists(t, compressedFile)

	gzFile, err := os.Open(compressedFile)
	require.NoError(t, err)
	defer gzFile.Close()

	gzReader, err := gzip.NewReader(gzFile)
	require.NoError(t, err)
	defer gzReader.Close()

	decompressed, err := io.ReadAll(gzReader)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(decompressed))
}

func TestRotatorDateRotationIsIdempotentWithinTheSameDay(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	initialFile := r.CurrentLogFile()
	assert.NotEmpty(t, initialFile)

	writer, err := r.GetWriter()
	require.NoError(t, err)
	_, err = writer.Write([]byte("initial content"))
	require.NoError(t, err)

	assert.NoError(t, r.rotateLogFile())
	assert.Equal(t, initialFile, r.CurrentLogFile())

	writer, err = r.GetWriter()
	assert.NoError(t, err)
	_, err = writer.Write([]byte("new content"))
	assert.NoError(t, err)
}

func TestRotatorConcurrentAccess(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, false, logger)
	require.NoError(t, err)
	defer r.Close()

	done := make(chan bool)
	const numGoroutines = 10
	const numOps = 100

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer func() { done <- true }()
			for j := 0; j < numOps; j++ {
				writer, err := r.GetWriter()
				if err != nil {
					t.Errorf("GetWriter failed: %v", err)
					return
				}
				data := fmt.Sprintf("goroutine-%d-op-%d\n", id, j)
				if _, err := writer.Write([]byte(data)); err != nil {
					t.Errorf("Write failed: %v", err)
					return
				}
				if r.CurrentLogFile() == "" {
					t.Error("CurrentLogFile returned empty string")
					return
				}
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	content, err := os.ReadFile(r.CurrentLogFile())
	assert.NoError(t, err)
	assert.NotEmpty(t, content)

	contentStr := string(content)
	assert.Contains(t, contentStr, "goroutine-0-op-0")
	assert.Contains(t, contentStr, fmt.Sprintf("goroutine-%d-op-%d", numGoroutines-1, numOps-1))
}

func TestRotatorUTCTimezone(t *testing.T) {
	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := NewRotator(tempDir, true, logger)
	require.NoError(t, err)
	defer r.Close()

	currentFile := r.CurrentLogFile()
	assert.NotEmpty(t, currentFile)
	assert.FileExists(t, currentFile)

	expectedDate := time.Now().UTC().Format("2006-01-02")
	assert.Contains(t, currentFile, expectedDate)
}
