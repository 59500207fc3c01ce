// Package logger provides a dual-output logger that writes to both stderr
// and a timestamped log file inside the state directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const logsDirName = "logs"

// Logger writes leveled records to stderr and a log file simultaneously.
type Logger struct {
	w    io.Writer
	log  *log.Logger
	file *os.File
}

// New creates a logger that writes to stderr and to
// <stateDir>/logs/resolve-<ts>.log.
func New(stateDir string) (*Logger, error) {
	logsDir := filepath.Join(stateDir, logsDirName)
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	ts := time.Now().Format("20060102-150405")
	logPath := filepath.Join(logsDir, fmt.Sprintf("resolve-%s.log", ts))

	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	w := io.MultiWriter(os.Stderr, f)
	return &Logger{w: w, log: newBackend(w), file: f}, nil
}

// NewDiscard returns a logger that drops everything (used in tests and
// before the state directory is known).
func NewDiscard() *Logger {
	return &Logger{w: io.Discard, log: newBackend(io.Discard)}
}

// NewWriter returns a logger writing only to w, for commands that change
// nothing on disk.
func NewWriter(w io.Writer) *Logger {
	return &Logger{w: w, log: newBackend(w)}
}

func newBackend(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "wsprov",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// SetVerbose enables debug records.
func (l *Logger) SetVerbose(v bool) {
	if v {
		l.log.SetLevel(log.DebugLevel)
		return
	}
	l.log.SetLevel(log.InfoLevel)
}

// LogPath returns the path of the current log file, or empty string if discarded.
func (l *Logger) LogPath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Write implements io.Writer by forwarding raw bytes to both outputs.
func (l *Logger) Write(p []byte) (n int, err error) {
	return l.w.Write(p)
}

// Printf writes a formatted line without a level.
func (l *Logger) Printf(format string, args ...any) {
	l.log.Printf(format, args...)
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.log.Info(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LatestLogPath returns the path to the most recent log in <stateDir>.
// Returns "" if no logs exist.
func LatestLogPath(stateDir string) string {
	logsDir := filepath.Join(stateDir, logsDirName)
	entries, err := os.ReadDir(logsDir)
	if err != nil || len(entries) == 0 {
		return ""
	}
	// ReadDir returns sorted by name; resolve-<ts> logs sort chronologically.
	latest := ""
	for _, e := range entries {
		if !e.IsDir() {
			latest = filepath.Join(logsDir, e.Name())
		}
	}
	return latest
}
