package usecase

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/utils/errutil"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// Run repeats RunPass, waiting the configured interval after each pass, until
// ctx is cancelled. Queued triggers are served while waiting.
func (uc *Watch) Run(ctx context.Context) error {
	logger := logging.From(ctx)

	uc.mu.Lock()
	uc.status.StartedAt = uc.now()
	uc.mu.Unlock()

	for {
		uc.RunPass(ctx)
		if ctx.Err() != nil {
			logger.Info("Watcher stopped")
			return nil
		}

		logger.Info("Pass completed, waiting for next pass", "interval", uc.interval.String())

		timer := time.NewTimer(uc.interval)
	wait:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				logger.Info("Watcher stopped")
				return nil

			case repo := <-uc.triggers:
				uc.runTriggered(ctx, repo)

			case <-timer.C:
				break wait
			}
		}
	}
}

// RunPass checks every target once, in configuration order. A failure of one
// target is reported and the pass continues.
func (uc *Watch) RunPass(ctx context.Context) {
	logger := logging.From(ctx).With("pass_id", uuid.NewString())
	ctx = logging.With(ctx, logger)

	logger.Info("Starting new pass", "targets", len(uc.targets))

	for _, target := range uc.targets {
		if ctx.Err() != nil {
			logger.Info("Pass interrupted", "error", ctx.Err())
			break
		}
		uc.safeCheck(ctx, target)
	}

	uc.mu.Lock()
	uc.status.Passes++
	uc.status.LastPassAt = uc.now()
	uc.mu.Unlock()
}

func (uc *Watch) safeCheck(ctx context.Context, target *model.WatchTarget) {
	defer func() {
		if r := recover(); r != nil {
			errutil.Handle(ctx, "Panic while checking repository",
				goerr.New("panic in release check",
					goerr.V("repo", target.Repo),
					goerr.V("recover", r),
					goerr.V("stack", string(debug.Stack()))))
		}
	}()

	if err := uc.CheckTarget(ctx, target); err != nil {
		errutil.Handle(ctx, "Failed to check repository", err)
	}
}

// Trigger queues an out-of-band check of repo. It never blocks.
func (uc *Watch) Trigger(ctx context.Context, repo string) bool {
	logger := logging.From(ctx)

	target := uc.findTarget(repo)
	if target == nil {
		logger.Info("Ignoring trigger for unwatched repository", "repo", repo)
		return false
	}

	select {
	case uc.triggers <- target.Repo:
		logger.Info("Queued repository check", "repo", target.Repo)
		return true
	default:
		logger.Warn("Trigger queue is full, dropping", "repo", target.Repo)
		return false
	}
}

func (uc *Watch) runTriggered(ctx context.Context, repo string) {
	target := uc.findTarget(repo)
	if target == nil {
		return
	}

	ctx = logging.With(ctx, logging.From(ctx).With("trigger", "webhook"))
	uc.safeCheck(ctx, target)
}

// Status returns a snapshot of scheduler progress
func (uc *Watch) Status() model.WatchStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.status
}
