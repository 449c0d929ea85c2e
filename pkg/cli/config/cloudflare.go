package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/infra/cloudflare"
	"github.com/urfave/cli/v3"
)

// Cloudflare holds optional DNS sync configuration for publish
type Cloudflare struct {
	Token  string `masq:"secret"`
	Domain string
	TTL    int
}

func (c *Cloudflare) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cloudflare-token",
			Usage:       "Cloudflare API token with DNS edit permission",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELMON_CLOUDFLARE_TOKEN", "CLOUDFLARE_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "cloudflare-domain",
			Usage:       "Domain whose A/AAAA records follow the published addresses",
			Destination: &c.Domain,
			Sources:     cli.EnvVars("RELMON_CLOUDFLARE_DOMAIN"),
		},
		&cli.IntFlag{
			Name:        "cloudflare-ttl",
			Usage:       "TTL of created records",
			Value:       60,
			Destination: &c.TTL,
			Sources:     cli.EnvVars("RELMON_CLOUDFLARE_TTL"),
		},
	}
}

// Enabled reports whether DNS sync is configured
func (c *Cloudflare) Enabled() bool {
	return c.Token != "" || c.Domain != ""
}

func (c *Cloudflare) Provider() (*cloudflare.Provider, error) {
	if c.Token == "" || c.Domain == "" {
		return nil, goerr.New("both cloudflare-token and cloudflare-domain are required",
			goerr.V("domain", c.Domain),
			goerr.T(types.ErrTagConfig))
	}
	return cloudflare.New(c.Token, cloudflare.WithTTL(c.TTL))
}
