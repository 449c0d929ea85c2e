package config

import (
	"context"
	"os"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// MaxIndexedTargets bounds the scan of indexed environment keys
const MaxIndexedTargets = 1000

// Watchlist selects where watch targets come from
type Watchlist struct {
	File string
}

func (c *Watchlist) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "watchlist",
			Usage:       "TOML file with [[target]] tables; replaces repo{i}/bark-api{i} environment keys",
			Destination: &c.File,
			Sources:     cli.EnvVars("RELMON_WATCHLIST"),
		},
	}
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Load returns targets from the watchlist file if set, otherwise from the
// environment.
func (c *Watchlist) Load(ctx context.Context) ([]*model.WatchTarget, error) {
	if c.File != "" {
		return LoadWatchlistFile(c.File)
	}
	return LoadWatchlistEnv(ctx, os.LookupEnv), nil
}

// LoadWatchlistEnv scans bark-api{i}, repo{i}, group{i} and icon{i} from
// i = 0 and stops at the first index where bark-api or repo is missing or
// empty. Later indices are ignored.
func LoadWatchlistEnv(ctx context.Context, lookup LookupFunc) []*model.WatchTarget {
	get := func(key string, i int) string {
		v, _ := lookup(key + strconv.Itoa(i))
		return v
	}

	var targets []*model.WatchTarget
	i := 0
	for ; i < MaxIndexedTargets; i++ {
		barkAPI, repo := get("bark-api", i), get("repo", i)
		if barkAPI == "" || repo == "" {
			break
		}

		group := get("group", i)
		if group == "" {
			group = model.DefaultGroup
		}

		targets = append(targets, &model.WatchTarget{
			Repo:    repo,
			BarkAPI: barkAPI,
			Group:   group,
			Icon:    get("icon", i),
		})
	}

	for j := i + 1; j < MaxIndexedTargets; j++ {
		if get("repo", j) != "" || get("bark-api", j) != "" {
			logging.From(ctx).Warn("Watch targets after a missing index are ignored",
				"missing_index", i,
				"ignored_index", j,
			)
			break
		}
	}

	return targets
}

type watchlistFile struct {
	Targets []*model.WatchTarget `toml:"target"`
}

// LoadWatchlistFile reads targets from a TOML file. Unlike the environment
// scan, an incomplete entry is an error.
func LoadWatchlistFile(path string) ([]*model.WatchTarget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read watchlist",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig))
	}

	var file watchlistFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse watchlist",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig))
	}

	for i, t := range file.Targets {
		if t.Repo == "" || t.BarkAPI == "" {
			return nil, goerr.New("watchlist entry requires repo and bark_api",
				goerr.V("path", path),
				goerr.V("index", i),
				goerr.V("repo", t.Repo),
				goerr.T(types.ErrTagConfig))
		}
		if t.Group == "" {
			t.Group = model.DefaultGroup
		}
	}

	return file.Targets, nil
}
