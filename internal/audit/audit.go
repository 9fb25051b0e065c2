// Package audit provides an append-only JSONL record of chaperone hook
// invocations. One entry is written per hook run with the outcome summary;
// audit failures are logged and swallowed so they can never block a hook.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chaperonehq/chaperone/internal/constants"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/klauspost/compress/gzip"
)

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// Version is the current entry format version.
const Version = 1

// maxLogSize is the size at which the log is gzip-archived on Init.
const maxLogSize = 5 << 20

// Entry represents a single audit log entry (v1 format).
type Entry struct {
	Version    int     `json:"version"`
	SessionID  string  `json:"session_id,omitempty"`
	ToolUseID  string  `json:"tool_use_id,omitempty"`
	Timestamp  string  `json:"timestamp"`
	DurationMs float64 `json:"duration_ms"`
	Hook       string  `json:"hook"`
	Tool       string  `json:"tool,omitempty"`
	Agent      string  `json:"agent,omitempty"`
	Subject    string  `json:"subject,omitempty"`
	Findings   int     `json:"findings"`
	Degraded   bool    `json:"degraded,omitempty"`
	Diagnostic string  `json:"diagnostic,omitempty"`
	Cwd        string  `json:"cwd,omitempty"`
}

var (
	auditFile *os.File
	mu        sync.Mutex
	enabled   bool
)

// DefaultLogPath returns the default audit log path
// (~/.local/share/chaperone/audit.log, or under $CHAPERONE_DATA).
func DefaultLogPath() (string, error) {
	if dir := os.Getenv(constants.EnvDataDir); dir != "" {
		return filepath.Join(dir, constants.AuditFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.XDGDataSubdir, constants.AppName, constants.AuditFileName), nil
}

// rotate gzips the current log to <path>.1.gz and truncates it. An existing
// archive is replaced.
func rotate(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".1.gz", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return os.Truncate(path, 0)
}

// Init initializes the audit log. If path is empty, uses the default path.
// Pass disable=true to turn audit logging off entirely.
func Init(path string, disable bool) error {
	mu.Lock()
	defer mu.Unlock()

	if disable {
		enabled = false
		return nil
	}

	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			logger.Debug("failed to get default audit log path", "error", err)
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		logger.Debug("failed to create audit log directory", "error", err)
		return err
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := rotate(path); err != nil {
			logger.Debug("failed to rotate audit log", "error", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to open audit log file", "error", err)
		return err
	}

	auditFile = f
	enabled = true
	logger.Debug("audit logging initialized", "path", path)
	return nil
}

// Close closes the audit log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if auditFile != nil {
		err := auditFile.Close()
		auditFile = nil
		enabled = false
		return err
	}
	return nil
}

// Log writes an entry to the audit log.
// If audit logging is not initialized or disabled, this is a no-op.
func Log(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || auditFile == nil {
		return nil
	}

	entry.Version = Version
	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Debug("failed to marshal audit entry", "error", err)
		return err
	}

	if _, err := auditFile.Write(append(data, '\n')); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
		return err
	}
	return nil
}

// IsEnabled returns whether audit logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Reset resets the audit state. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = nil
	enabled = false
}
