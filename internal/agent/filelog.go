package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// FileLogger appends the full activity of one run to a log file on disk.
// Logging must never interfere with the run: every failure is reduced to a
// zerolog warning and the logger degrades to a no-op.
type FileLogger struct {
	f     *os.File
	start time.Time
}

// NewFileLogger opens a per-run log file named after the target provider
// and start time. A nil-file logger is returned when the file cannot be
// created.
func NewFileLogger(dir, provider string) *FileLogger {
	fl := &FileLogger{start: time.Now()}
	if dir == "" {
		return fl
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("agent log directory unavailable")
		return fl
	}
	name := fmt.Sprintf("%s_%s.log", fl.start.Format("20060102_150405"), provider)
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("failed to open agent log file")
		return fl
	}
	fl.f = f
	fmt.Fprintf(f, "=== AGENT RUN: %s ===\nStarted: %s\n", provider, fl.start.Format(time.RFC3339))
	return fl
}

// Log appends one sectioned entry.
func (fl *FileLogger) Log(kind, text string) {
	if fl.f == nil {
		return
	}
	elapsed := time.Since(fl.start).Milliseconds()
	if _, err := fmt.Fprintf(fl.f, "\n--- [%s] +%dms ---\n%s\n", kind, elapsed, text); err != nil {
		log.Warn().Err(err).Msg("agent log write failed")
	}
}

// Close writes the run footer and releases the file.
func (fl *FileLogger) Close(success bool, summary string) {
	if fl.f == nil {
		return
	}
	fmt.Fprintf(fl.f, "\n=== RUN COMPLETE ===\nSuccess: %t\n%s\nDuration: %s\n",
		success, summary, time.Since(fl.start).Round(time.Millisecond))
	if err := fl.f.Close(); err != nil {
		log.Warn().Err(err).Msg("agent log close failed")
	}
	fl.f = nil
}
