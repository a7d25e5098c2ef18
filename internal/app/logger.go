package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
)

// NewLogger builds the slog logger for cfg. verbose and quiet override the
// configured level; quiet wins when both are set.
func NewLogger(cfg common.LogConfig, verbose, quiet bool, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: levelOf(cfg.Level, verbose, quiet)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func levelOf(level string, verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	}
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
