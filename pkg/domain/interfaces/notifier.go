package interfaces

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

// Notifier delivers a push notification
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}
