package config

import "github.com/urfave/cli/v3"

// Server holds status server configuration. The server is disabled when
// Addr is empty.
type Server struct {
	Addr          string
	WebhookSecret string `masq:"secret"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Status server address, e.g. :8080 (disabled when empty)",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RELMON_ADDR"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "Secret of the GitHub release webhook (enables /hooks/github)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RELMON_GITHUB_WEBHOOK_SECRET"),
		},
	}
}
