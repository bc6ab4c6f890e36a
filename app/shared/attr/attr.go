// Package attr provides slog attribute helpers shared by every module so
// log fields keep consistent names and types across the codebase.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation id on the context for the duration
// of a request or job cycle.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID returns the correlation id attribute from the
// context, or an empty-valued attribute when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func ArtistID(key string, id sharedtypes.ArtistID) slog.Attr {
	return slog.String(key, id.String())
}

func UserID(key string, id sharedtypes.UserID) slog.Attr {
	return slog.String(key, id.String())
}

func TeamID(key string, id sharedtypes.TeamID) slog.Attr {
	return slog.String(key, id.String())
}

func Tier(key string, tier sharedtypes.Tier) slog.Attr {
	return slog.String(key, string(tier))
}
