package cli_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmon/pkg/cli"
)

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{"relmon", "--log-level", "verbose", "status"})
	gt.Error(t, err)
}

func TestRun_WatchRejectsZeroInterval(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"relmon", "watch",
		"--watch-time", "0",
		"--once",
	})
	gt.Error(t, err)
}

func TestRun_WatchOnceWithoutTargets(t *testing.T) {
	dir := t.TempDir()
	err := cli.Run(context.Background(), []string{
		"relmon", "watch",
		"--once",
		"--release-store", dir + "/release.json",
		"--prerelease-store", dir + "/prerelease.json",
	})
	gt.NoError(t, err)
}

func TestRun_StatusRejectsWatchFlags(t *testing.T) {
	for _, flag := range []string{"--once", "--dry-run", "--watch-time=60"} {
		t.Run(flag, func(t *testing.T) {
			dir := t.TempDir()
			err := cli.Run(context.Background(), []string{
				"relmon", "status",
				"--release-store", dir + "/release.json",
				"--prerelease-store", dir + "/prerelease.json",
				flag,
			})
			gt.Error(t, err)
		})
	}
}

func TestRun_StatusReadsStores(t *testing.T) {
	dir := t.TempDir()
	err := cli.Run(context.Background(), []string{
		"relmon", "status",
		"--release-store", dir + "/release.json",
		"--prerelease-store", dir + "/prerelease.json",
	})
	gt.NoError(t, err)
}
