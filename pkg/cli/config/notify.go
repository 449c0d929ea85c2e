package config

import (
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/infra/bark"
	"github.com/m-mizutani/relmon/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Notify holds notification configuration. Bark endpoints come from the
// watchlist; Slack is an optional mirror.
type Notify struct {
	BarkReleaseURL  bool
	SlackWebhookURL string `masq:"secret"`
	SlackChannel    string
}

func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "bark-release-url",
			Usage:       "Open the release page when a Bark notification is tapped",
			Destination: &c.BarkReleaseURL,
			Sources:     cli.EnvVars("RELMON_BARK_RELEASE_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to mirror notifications to",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("RELMON_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel override",
			Destination: &c.SlackChannel,
			Sources:     cli.EnvVars("RELMON_SLACK_CHANNEL"),
		},
	}
}

func (c *Notify) Bark() *bark.Notifier {
	return bark.New(bark.WithReleaseURL(c.BarkReleaseURL))
}

// Mirrors returns the configured mirror notifiers, possibly none
func (c *Notify) Mirrors() []interfaces.Notifier {
	var mirrors []interfaces.Notifier
	if c.SlackWebhookURL != "" {
		mirrors = append(mirrors, slack.New(c.SlackWebhookURL, c.SlackChannel))
	}
	return mirrors
}
