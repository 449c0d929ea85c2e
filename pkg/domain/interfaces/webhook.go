package interfaces

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

// WebhookProcessor handles a verified GitHub webhook event
type WebhookProcessor interface {
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}
