package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

const DefaultWatchTime = 3600

// Watch holds scheduler configuration
type Watch struct {
	Store

	WatchTime int64
	DryRun    bool
	Once      bool
}

// Flags returns CLI flags for the watcher, including the store flags.
// watch-time keeps its historical environment name.
func (c *Watch) Flags() []cli.Flag {
	return append(c.Store.Flags(),
		&cli.Int64Flag{
			Name:        "watch-time",
			Usage:       "Seconds between two passes",
			Value:       DefaultWatchTime,
			Destination: &c.WatchTime,
			Sources:     cli.EnvVars("RELMON_WATCH_TIME", "watch-time"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Keep versions in memory only; persisted records are read but never written",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("RELMON_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:        "once",
			Usage:       "Run a single pass and exit",
			Destination: &c.Once,
		},
	)
}

// Interval validates watch-time
func (c *Watch) Interval() (time.Duration, error) {
	if c.WatchTime <= 0 {
		return 0, goerr.New("watch-time must be positive",
			goerr.V("watch_time", c.WatchTime),
			goerr.T(types.ErrTagConfig))
	}
	return time.Duration(c.WatchTime) * time.Second, nil
}

// Stores opens the version stores, as memory snapshots under dry-run
func (c *Watch) Stores(ctx context.Context) (interfaces.VersionStore, interfaces.VersionStore, error) {
	release, prerelease, err := c.Open(ctx)
	if err != nil || !c.DryRun {
		return release, prerelease, err
	}

	releaseMem, err := Snapshot(ctx, release)
	if err != nil {
		return nil, nil, err
	}
	prereleaseMem, err := Snapshot(ctx, prerelease)
	if err != nil {
		return nil, nil, err
	}
	return releaseMem, prereleaseMem, nil
}
