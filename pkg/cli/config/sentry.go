package config

import (
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; errors are only logged when empty",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("RELMON_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("RELMON_SENTRY_ENV"),
		},
	}
}

func (c *Sentry) Configure() error {
	return errutil.InitSentry(c.DSN, c.Env, types.Version)
}
