package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmon/pkg/cli/config"
	"github.com/m-mizutani/relmon/pkg/domain/types"
)

func envLookup(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadWatchlistEnv(t *testing.T) {
	ctx := context.Background()

	t.Run("reads consecutive indices with defaults", func(t *testing.T) {
		targets := config.LoadWatchlistEnv(ctx, envLookup(map[string]string{
			"repo0":     "a/b",
			"bark-api0": "https://bark.example.com/k0",
			"repo1":     "c/d",
			"bark-api1": "https://bark.example.com/k1",
			"group1":    "Tools",
			"icon1":     "https://example.com/icon.png",
		}))

		gt.A(t, targets).Length(2).Required()
		gt.V(t, targets[0].Repo).Equal("a/b")
		gt.V(t, targets[0].BarkAPI).Equal("https://bark.example.com/k0")
		gt.V(t, targets[0].Group).Equal("Github")
		gt.V(t, targets[0].Icon).Equal("")
		gt.V(t, targets[1].Group).Equal("Tools")
		gt.V(t, targets[1].Icon).Equal("https://example.com/icon.png")
	})

	t.Run("stops at the first gap", func(t *testing.T) {
		targets := config.LoadWatchlistEnv(ctx, envLookup(map[string]string{
			"repo0":     "a/b",
			"bark-api0": "https://bark.example.com/k0",
			"repo2":     "e/f",
			"bark-api2": "https://bark.example.com/k2",
		}))

		gt.A(t, targets).Length(1).Required()
		gt.V(t, targets[0].Repo).Equal("a/b")
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		targets := config.LoadWatchlistEnv(ctx, envLookup(map[string]string{
			"repo0":     "a/b",
			"bark-api0": "",
		}))
		gt.A(t, targets).Length(0)
	})

	t.Run("nothing configured", func(t *testing.T) {
		gt.A(t, config.LoadWatchlistEnv(ctx, envLookup(nil))).Length(0)
	})
}

func writeWatchlist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0o600)).Required()
	return path
}

func TestLoadWatchlistFile(t *testing.T) {
	path := writeWatchlist(t, `
[[target]]
repo = "a/b"
bark_api = "https://bark.example.com/k0"

[[target]]
repo = "c/d"
bark_api = "https://bark.example.com/k1"
group = "Tools"
icon = "https://example.com/icon.png"
`)

	targets, err := config.LoadWatchlistFile(path)
	gt.NoError(t, err).Required()
	gt.A(t, targets).Length(2).Required()
	gt.V(t, targets[0].Group).Equal("Github")
	gt.V(t, targets[1].Repo).Equal("c/d")
	gt.V(t, targets[1].Group).Equal("Tools")
	gt.V(t, targets[1].Icon).Equal("https://example.com/icon.png")
}

func TestLoadWatchlistFile_MissingRepo(t *testing.T) {
	path := writeWatchlist(t, `
[[target]]
repo = "a/b"
bark_api = "https://bark.example.com/k0"

[[target]]
bark_api = "https://bark.example.com/k1"
`)

	_, err := config.LoadWatchlistFile(path)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
}

func TestLoadWatchlistFile_Invalid(t *testing.T) {
	t.Run("not TOML", func(t *testing.T) {
		_, err := config.LoadWatchlistFile(writeWatchlist(t, "[[target]\nrepo ="))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadWatchlistFile(filepath.Join(t.TempDir(), "none.toml"))
		gt.Error(t, err)
	})
}

func TestWatchlist_LoadPrefersFile(t *testing.T) {
	path := writeWatchlist(t, `
[[target]]
repo = "from/file"
bark_api = "https://bark.example.com/k0"
`)
	t.Setenv("repo0", "from/env")
	t.Setenv("bark-api0", "https://bark.example.com/env")

	cfg := &config.Watchlist{File: path}
	targets, err := cfg.Load(context.Background())
	gt.NoError(t, err).Required()
	gt.A(t, targets).Length(1).Required()
	gt.V(t, targets[0].Repo).Equal("from/file")
}
