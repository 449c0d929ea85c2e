package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// FetchReleases implements interfaces.ReleaseFetcher. repo is passed through
// as "owner/name" without validation, so a malformed identifier surfaces as a
// 404 from GitHub and is retried like any other failure.
func (c *Client) FetchReleases(ctx context.Context, repo string) ([]*model.ReleaseEntry, error) {
	logger := logging.From(ctx).With("repo", repo)
	ctx = logging.With(ctx, logger)

	req, err := c.gh.NewRequest(http.MethodGet, fmt.Sprintf("repos/%s/releases", repo), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build release list request",
			goerr.V("repo", repo),
			goerr.T(types.ErrTagNetwork))
	}

	var releases []*github.RepositoryRelease
	if _, err := c.gh.Do(ctx, req, &releases); err != nil {
		logger.Error("Failed to fetch releases, retry limit reached",
			"attempts", c.attempts,
			"error", err,
		)
		return nil, goerr.Wrap(err, "failed to fetch releases",
			goerr.V("repo", repo),
			goerr.V("attempts", c.attempts),
			goerr.T(types.ErrTagNetwork))
	}

	logger.Info("Fetched releases", "count", len(releases))

	entries := make([]*model.ReleaseEntry, 0, len(releases))
	for _, r := range releases {
		if r == nil {
			continue
		}
		entries = append(entries, &model.ReleaseEntry{
			TagName:     r.GetTagName(),
			Name:        r.GetName(),
			HTMLURL:     r.GetHTMLURL(),
			PublishedAt: r.GetPublishedAt().Time,
			Prerelease:  r.GetPrerelease(),
		})
	}

	return entries, nil
}
