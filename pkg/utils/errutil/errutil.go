package errutil

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// InitSentry enables error reporting. An empty dsn leaves reporting disabled.
func InitSentry(dsn, env, release string) error {
	if dsn == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", env))
	}
	return nil
}

// Flush waits for buffered Sentry events
func Flush() {
	sentry.Flush(2 * time.Second)
}

// Handle logs err and forwards it to Sentry when it is configured
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub = hub.Clone()
		hub.WithScope(func(scope *sentry.Scope) {
			if ge := goerr.Unwrap(err); ge != nil {
				scope.SetContext("values", sentry.Context(ge.Values()))
			}
			scope.SetTag("message", msg)
			evID := hub.CaptureException(err)
			if evID != nil {
				logger.Info("Error reported to sentry", slog.Any("event_id", *evID))
			}
		})
	}

	logger.Error(msg, slog.Any("error", err))
}
