package observability

import (
	"io"
	"log/slog"
	"os"
)

// NoOpLogger discards everything; tests use it so service wiring stays the
// same shape as production.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewLogger builds the process logger. Production environments get JSON for
// the log pipeline; anything else gets human-readable text.
func NewLogger(environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler).With(slog.String("service", "chartclash-backend"))
}
