package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// Notifier mirrors release notifications to a Slack incoming webhook.
// Notification.Endpoint is ignored; the webhook URL is fixed per Notifier.
type Notifier struct {
	webhookURL string
	channel    string
}

// New creates a Slack notifier. channel may be empty to use the webhook's default.
func New(webhookURL, channel string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		channel:    channel,
	}
}

// Notify implements interfaces.Notifier
func (x *Notifier) Notify(ctx context.Context, n *model.Notification) error {
	msg := &slack.WebhookMessage{
		Channel: x.channel,
		Text:    n.Title,
		Attachments: []slack.Attachment{
			{
				Color:     "#2eb886",
				Title:     n.Body,
				TitleLink: n.URL,
				Footer:    n.Group,
				ThumbURL:  n.Icon,
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, x.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook",
			goerr.V("title", n.Title),
			goerr.T(types.ErrTagNetwork))
	}

	logging.From(ctx).Debug("Slack notification sent", "title", n.Title)
	return nil
}
