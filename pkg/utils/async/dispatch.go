package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine with panic recovery.
//
// The returned channel receives the handler's error (or the recovered panic
// as an error) exactly once and is then closed. The handler receives a
// context that keeps ctx's values and cancellation.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	logger := logging.From(ctx).With("task", name)
	ctx = logging.With(ctx, logger)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
				done <- fmt.Errorf("panic in %s: %v", name, r)
			}
		}()

		err := handler(ctx)
		if err != nil {
			logger.Error("error in async handler", "error", err)
		}
		done <- err
	}()

	return done
}
