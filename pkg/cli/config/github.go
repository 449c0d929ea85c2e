package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	githubinfra "github.com/m-mizutani/relmon/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration. Either a token or a GitHub App
// installation may be used; anonymous access works for public releases.
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKeyFile string
	BaseURL        string

	Attempts   int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELMON_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RELMON_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RELMON_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("RELMON_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELMON_GITHUB_BASE_URL"),
		},
		&cli.IntFlag{
			Name:        "github-attempts",
			Usage:       "Attempts per release list request",
			Value:       githubinfra.DefaultAttempts,
			Destination: &c.Attempts,
			Sources:     cli.EnvVars("RELMON_GITHUB_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "github-retry-delay",
			Usage:       "Wait between attempts",
			Value:       githubinfra.DefaultRetryDelay,
			Destination: &c.RetryDelay,
			Sources:     cli.EnvVars("RELMON_GITHUB_RETRY_DELAY"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Timeout of a single attempt",
			Value:       githubinfra.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("RELMON_GITHUB_TIMEOUT"),
		},
	}
}

// NewClient builds the GitHub client from the flags
func (c *GitHub) NewClient() (*githubinfra.Client, error) {
	opts := []githubinfra.Option{
		githubinfra.WithAttempts(c.Attempts),
		githubinfra.WithRetryDelay(c.RetryDelay),
		githubinfra.WithTimeout(c.Timeout),
	}

	if c.BaseURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.BaseURL))
	}

	switch {
	case c.AppID != 0:
		if c.InstallationID == 0 || c.PrivateKeyFile == "" {
			return nil, goerr.New("GitHub App auth requires installation ID and private key file",
				goerr.V("app_id", c.AppID),
				goerr.T(types.ErrTagConfig))
		}
		key, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.V("path", c.PrivateKeyFile),
				goerr.T(types.ErrTagConfig))
		}
		opts = append(opts, githubinfra.WithAppAuth(c.AppID, c.InstallationID, key))

	case c.Token != "":
		opts = append(opts, githubinfra.WithToken(c.Token))
	}

	return githubinfra.NewClient(opts...)
}
