package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/m-mizutani/relmon/pkg/cli/config"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStatus() *cli.Command {
	var (
		storeCfg     config.Store
		watchlistCfg config.Watchlist
	)

	var flags []cli.Flag
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, watchlistCfg.Flags()...)

	return &cli.Command{
		Name:  "status",
		Usage: "Show the last notified release and pre-release of every repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			targets, err := watchlistCfg.Load(ctx)
			if err != nil {
				return err
			}

			releaseStore, prereleaseStore, err := storeCfg.Open(ctx)
			if err != nil {
				return err
			}

			versions, err := usecase.ListVersions(ctx, releaseStore, prereleaseStore)
			if err != nil {
				return err
			}

			printStatus(c.Root().Writer, targets, versions)
			return nil
		},
	}
}

func printStatus(w io.Writer, targets []*model.WatchTarget, versions *model.VersionsResponse) {
	header := color.New(color.Bold)
	repoColor := color.New(color.FgCyan)
	missing := color.New(color.FgHiBlack)
	unwatched := color.New(color.FgYellow)

	watched := make(map[string]bool, len(targets))
	var repos []string
	for _, t := range targets {
		watched[t.Repo] = true
		repos = append(repos, t.Repo)
	}
	var extra []string
	for repo := range versions.Release {
		if !watched[repo] {
			extra = append(extra, repo)
			watched[repo] = true
		}
	}
	for repo := range versions.Prerelease {
		if !watched[repo] {
			extra = append(extra, repo)
			watched[repo] = true
		}
	}
	slices.Sort(extra)

	tag := func(m map[string]string, repo string) string {
		if v, ok := m[repo]; ok {
			return v
		}
		return missing.Sprint("-")
	}

	_, _ = header.Fprintf(w, "%-40s %-20s %s\n", "REPOSITORY", "RELEASE", "PRE-RELEASE")
	for _, repo := range repos {
		fmt.Fprintf(w, "%s %-20s %s\n",
			repoColor.Sprintf("%-40s", repo),
			tag(versions.Release, repo),
			tag(versions.Prerelease, repo))
	}
	for _, repo := range extra {
		fmt.Fprintf(w, "%s %-20s %s %s\n",
			repoColor.Sprintf("%-40s", repo),
			tag(versions.Release, repo),
			tag(versions.Prerelease, repo),
			unwatched.Sprint("(not watched)"))
	}
}
