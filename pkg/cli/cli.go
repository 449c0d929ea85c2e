package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/relmon/pkg/cli/config"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/errutil"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "GitHub release watcher with Bark push notifications",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			slog.SetDefault(logger)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			return logging.With(ctx, logger), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			errutil.Flush()
			return nil
		},
		Commands: []*cli.Command{
			cmdWatch(),
			cmdPublish(),
			cmdStatus(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
