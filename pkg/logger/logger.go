package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiratime/jiratime/pkg/config"
)

// New builds a file-backed logger. The terminal belongs to the TUI
// renderer, so everything goes to a log file instead of stdout. The
// returned closer owns the file handle.
func New(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		path = filepath.Join(dir, "jiratime", "jiratime.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
