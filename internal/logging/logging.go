package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/smartexpense/internal/config"
)

// New builds the application logger. Production-style JSON output is used when
// the format says so; otherwise logs are human-readable text. The returned
// closer releases the log file, if one was opened.
func New(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	out := fallback
	closer := io.Closer(nopCloser{})

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		out, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("app", cfg.App.Name, "env", cfg.App.Env), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
