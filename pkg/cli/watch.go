package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/cli/config"
	controller "github.com/m-mizutani/relmon/pkg/controller/http"
	"github.com/m-mizutani/relmon/pkg/usecase"
	"github.com/m-mizutani/relmon/pkg/utils/async"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var (
		watchCfg     config.Watch
		watchlistCfg config.Watchlist
		githubCfg    config.GitHub
		notifyCfg    config.Notify
		serverCfg    config.Server
	)

	var flags []cli.Flag
	flags = append(flags, watchCfg.Flags()...)
	flags = append(flags, watchlistCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, serverCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Poll GitHub releases of watch targets and send push notifications",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			interval, err := watchCfg.Interval()
			if err != nil {
				return err
			}

			targets, err := watchlistCfg.Load(ctx)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				logger.Warn("No watch targets configured")
			}

			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			releaseStore, prereleaseStore, err := watchCfg.Stores(ctx)
			if err != nil {
				return err
			}

			opts := []usecase.WatchOption{usecase.WithInterval(interval)}
			for _, m := range notifyCfg.Mirrors() {
				opts = append(opts, usecase.WithMirror(m))
			}
			uc := usecase.NewWatch(targets, client, releaseStore, prereleaseStore, notifyCfg.Bark(), opts...)

			logger.Info("Starting relmon watcher",
				slog.Int("targets", len(targets)),
				slog.String("interval", interval.String()),
				slog.Bool("dry_run", watchCfg.DryRun),
				slog.Any("github", githubCfg),
				slog.Any("notify", notifyCfg),
			)

			if watchCfg.Once {
				uc.RunPass(ctx)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if serverCfg.Addr != "" {
				server := controller.NewServer(ctx, uc,
					controller.WithAddr(serverCfg.Addr),
					controller.WithWebhookSecret(serverCfg.WebhookSecret),
				)
				serverErr := async.Dispatch(ctx, "status-server", func(ctx context.Context) error {
					logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return goerr.Wrap(err, "status server failed", goerr.V("addr", serverCfg.Addr))
					}
					return nil
				})

				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					if err := server.Shutdown(shutdownCtx); err != nil {
						logger.Warn("Failed to shutdown server gracefully", "error", err)
					}
					<-serverErr
				}()
			}

			return uc.Run(ctx)
		},
	}
}
