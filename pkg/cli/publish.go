package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/relmon/pkg/cli/config"
	"github.com/m-mizutani/relmon/pkg/usecase"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdPublish() *cli.Command {
	var (
		publishCfg config.Publish
		githubCfg  config.GitHub
		cfCfg      config.Cloudflare
	)

	var flags []cli.Flag
	flags = append(flags, publishCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, cfCfg.Flags()...)

	return &cli.Command{
		Name:  "publish",
		Usage: "Write the public IPv4/IPv6 address pair to a file in a GitHub repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// The file update is single-shot; a stale SHA must surface, not be retried.
			githubCfg.Attempts = 1
			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			writer, err := publishCfg.Writer(client)
			if err != nil {
				return err
			}

			opts := []usecase.PublishOption{usecase.WithDryRun(publishCfg.DryRun)}
			if cfCfg.Enabled() {
				provider, err := cfCfg.Provider()
				if err != nil {
					return err
				}
				opts = append(opts, usecase.WithDNS(provider, cfCfg.Domain))
			}

			content, err := usecase.NewPublish(publishCfg.Resolver(), writer, opts...).Run(ctx)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("Address record published",
				"repo", publishCfg.Repo,
				"path", publishCfg.Path,
			)
			fmt.Fprintln(c.Root().Writer, content)
			return nil
		},
	}
}
