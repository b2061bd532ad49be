package observability

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mvierula/climpoint/internal/config"
)

// NewLogger builds the root slog logger from LOG_LEVEL and LOG_FORMAT,
// tagged with a fresh run ID so log lines from concurrent or successive
// batch runs stay attributable.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}

func parseLevel(level string) slog.Level {
	switch level {
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
