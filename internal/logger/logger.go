package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/debtdesk-ledger/internal/config"
)

// NewLogger builds the process-wide slog.Logger from config. Output is
// JSON unless LOG_FORMAT asks for text; debug level also records source
// locations.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Logging.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	logger.Info("logger initialized", "level", level)

	return logger
}

// parseLevel maps a config string to a slog level, defaulting to info
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
