package github

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// EventProcessor turns release webhooks into out-of-band release checks
type EventProcessor struct {
	watchUC interfaces.WatchUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(watchUC interfaces.WatchUseCase) *EventProcessor {
	return &EventProcessor{
		watchUC: watchUC,
	}
}

// ProcessEvent queues a check of the event's repository. Unsupported events
// and unwatched repositories are ignored without error.
func (p *EventProcessor) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := logging.From(ctx).With(
		"delivery_id", event.ID,
		"event_type", event.Type,
		"action", event.Action,
		"repo", event.Repository,
	)

	if !event.IsSupportedEvent() {
		logger.Info("Ignoring unsupported event")
		return nil
	}

	if event.Repository == "" {
		logger.Warn("Release event without repository")
		return nil
	}

	ctx = logging.With(ctx, logger)
	if !p.watchUC.Trigger(ctx, event.Repository) {
		return nil
	}

	logger.Info("Release check requested by webhook", "tag", event.TagName)
	return nil
}
