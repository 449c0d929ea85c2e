package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	githubinfra "github.com/m-mizutani/relmon/pkg/infra/github"
	"github.com/m-mizutani/relmon/pkg/infra/ipify"
	"github.com/urfave/cli/v3"
)

// Publish holds address publisher configuration
type Publish struct {
	Repo    string
	Path    string
	Branch  string
	Message string
	IPv4URL string
	IPv6URL string
	DryRun  bool
}

func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "record-repo",
			Usage:       "Repository (owner/name) holding the address record file",
			Required:    true,
			Destination: &c.Repo,
			Sources:     cli.EnvVars("RELMON_RECORD_REPO"),
		},
		&cli.StringFlag{
			Name:        "record-path",
			Usage:       "Path of the address record file in the repository",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("RELMON_RECORD_PATH"),
		},
		&cli.StringFlag{
			Name:        "record-branch",
			Usage:       "Branch to commit to (default branch when empty)",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("RELMON_RECORD_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "commit-message",
			Usage:       "Commit message of the update",
			Value:       githubinfra.DefaultCommitMessage,
			Destination: &c.Message,
			Sources:     cli.EnvVars("RELMON_COMMIT_MESSAGE"),
		},
		&cli.StringFlag{
			Name:        "ipv4-url",
			Usage:       "Plain-text IPv4 lookup service",
			Value:       ipify.DefaultIPv4URL,
			Destination: &c.IPv4URL,
			Sources:     cli.EnvVars("RELMON_IPV4_URL"),
		},
		&cli.StringFlag{
			Name:        "ipv6-url",
			Usage:       "Plain-text IPv6 lookup service",
			Value:       ipify.DefaultIPv6URL,
			Destination: &c.IPv6URL,
			Sources:     cli.EnvVars("RELMON_IPV6_URL"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Resolve addresses without writing anything",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("RELMON_DRY_RUN"),
		},
	}
}

// Resolver builds the address resolver
func (c *Publish) Resolver() *ipify.Resolver {
	return ipify.New(ipify.WithIPv4URL(c.IPv4URL), ipify.WithIPv6URL(c.IPv6URL))
}

// Writer builds the record file writer on client
func (c *Publish) Writer(client *githubinfra.Client) (*githubinfra.FileWriter, error) {
	owner, repo, ok := strings.Cut(c.Repo, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, goerr.New("record repository must be owner/name",
			goerr.V("repo", c.Repo),
			goerr.T(types.ErrTagConfig))
	}

	return githubinfra.NewFileWriter(client, owner, repo, c.Path,
		githubinfra.WithBranch(c.Branch),
		githubinfra.WithCommitMessage(c.Message),
	), nil
}
