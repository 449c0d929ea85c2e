package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// DefaultInterval is the wait between two passes
const DefaultInterval = time.Hour

const defaultTriggerBuffer = 16

// Watch checks every watch target for new releases and pre-releases. All
// checks and store writes run on the goroutine that calls Run or RunPass.
type Watch struct {
	targets  []*model.WatchTarget
	fetcher  interfaces.ReleaseFetcher
	stores   map[types.Channel]interfaces.VersionStore
	notifier interfaces.Notifier
	mirrors  []interfaces.Notifier
	interval time.Duration
	triggers chan string
	now      func() time.Time

	mu     sync.Mutex
	status model.WatchStatus
}

// WatchOption configures Watch
type WatchOption func(*Watch)

// WithInterval sets the wait between passes
func WithInterval(d time.Duration) WatchOption {
	return func(uc *Watch) {
		if d > 0 {
			uc.interval = d
		}
	}
}

// WithMirror adds a notifier that receives a copy of every notification.
// Mirror failures are logged only.
func WithMirror(n interfaces.Notifier) WatchOption {
	return func(uc *Watch) {
		uc.mirrors = append(uc.mirrors, n)
	}
}

// WithTriggerBuffer sets how many out-of-band checks may be queued
func WithTriggerBuffer(n int) WatchOption {
	return func(uc *Watch) {
		uc.triggers = make(chan string, n)
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) WatchOption {
	return func(uc *Watch) {
		uc.now = now
	}
}

// NewWatch creates the release watcher
func NewWatch(
	targets []*model.WatchTarget,
	fetcher interfaces.ReleaseFetcher,
	releaseStore interfaces.VersionStore,
	prereleaseStore interfaces.VersionStore,
	notifier interfaces.Notifier,
	opts ...WatchOption,
) *Watch {
	uc := &Watch{
		targets: targets,
		fetcher: fetcher,
		stores: map[types.Channel]interfaces.VersionStore{
			types.ChannelStable:     releaseStore,
			types.ChannelPrerelease: prereleaseStore,
		},
		notifier: notifier,
		interval: DefaultInterval,
		triggers: make(chan string, defaultTriggerBuffer),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.status.Targets = len(targets)
	return uc
}

// CheckTarget fetches the releases of target once and evaluates both
// channels independently.
func (uc *Watch) CheckTarget(ctx context.Context, target *model.WatchTarget) error {
	logger := logging.From(ctx).With("repo", target.Repo)
	ctx = logging.With(ctx, logger)

	logger.Info("Checking repository")

	releases, err := uc.fetcher.FetchReleases(ctx, target.Repo)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch releases", goerr.V("repo", target.Repo))
	}

	var errs []error
	for _, ch := range types.Channels {
		if err := uc.checkChannel(ctx, target, releases, ch); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (uc *Watch) checkChannel(ctx context.Context, target *model.WatchTarget, releases []*model.ReleaseEntry, ch types.Channel) error {
	logger := logging.From(ctx).With("channel", ch)

	entry := model.LatestOf(releases, ch)
	if entry == nil {
		logger.Info("No release of this kind")
		return nil
	}

	store := uc.stores[ch]
	stored, found, err := store.Get(ctx, target.Repo)
	if err != nil {
		return goerr.Wrap(err, "failed to read stored version",
			goerr.V("repo", target.Repo),
			goerr.V("channel", ch))
	}

	if found && stored == entry.TagName {
		logger.Info("Version unchanged", "tag", entry.TagName)
		return nil
	}

	if found {
		warnIfDowngrade(logging.With(ctx, logger), stored, entry.TagName)
	}

	n := buildNotification(target, ch, entry)
	if err := uc.notify(ctx, n); err != nil {
		// Shutdown is not a delivery attempt; the next run notifies again.
		if ctx.Err() != nil {
			logger.Info("Notification interrupted, version not recorded",
				"tag", entry.TagName,
				"error", err,
			)
			return nil
		}

		// The version advances even so; there is no replay of missed notifications.
		logger.Error("Failed to send notification",
			"tag", entry.TagName,
			"error", err,
		)
	}

	// A delivered notification is recorded even if shutdown began meanwhile.
	if err := store.Put(context.WithoutCancel(ctx), target.Repo, entry.TagName); err != nil {
		return goerr.Wrap(err, "failed to record notified version",
			goerr.V("repo", target.Repo),
			goerr.V("channel", ch),
			goerr.V("tag", entry.TagName))
	}

	logger.Info("Recorded new version", "previous", stored, "tag", entry.TagName)
	return nil
}

func (uc *Watch) notify(ctx context.Context, n *model.Notification) error {
	err := uc.notifier.Notify(ctx, n)

	for _, m := range uc.mirrors {
		if mErr := m.Notify(ctx, n); mErr != nil {
			logging.From(ctx).Warn("Failed to mirror notification", "error", mErr)
		}
	}

	return err
}

func buildNotification(target *model.WatchTarget, ch types.Channel, entry *model.ReleaseEntry) *model.Notification {
	published := "-"
	if !entry.PublishedAt.IsZero() {
		published = entry.PublishedAt.UTC().Format(time.RFC3339)
	}

	group := target.Group
	if group == "" {
		group = model.DefaultGroup
	}

	return &model.Notification{
		Endpoint: target.BarkAPI,
		Title:    fmt.Sprintf("GitHub project %s updated", target.Repo),
		Body:     fmt.Sprintf("%s: %s, published at: %s", ch.Label(), entry.TagName, published),
		Group:    group,
		Icon:     target.Icon,
		URL:      entry.HTMLURL,
	}
}

// warnIfDowngrade only logs. Tags are compared by string equality elsewhere
// and a lower tag is still notified.
func warnIfDowngrade(ctx context.Context, stored, latest string) {
	prev, err := semver.NewVersion(stored)
	if err != nil {
		return
	}
	next, err := semver.NewVersion(latest)
	if err != nil {
		return
	}
	if next.LessThan(prev) {
		logging.From(ctx).Warn("Latest tag is lower than the recorded one",
			"previous", stored,
			"tag", latest,
		)
	}
}

// Versions lists stored versions of both channels
func (uc *Watch) Versions(ctx context.Context) (*model.VersionsResponse, error) {
	return ListVersions(ctx, uc.stores[types.ChannelStable], uc.stores[types.ChannelPrerelease])
}

// ListVersions reads both version stores
func ListVersions(ctx context.Context, releaseStore, prereleaseStore interfaces.VersionStore) (*model.VersionsResponse, error) {
	release, err := releaseStore.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list release versions")
	}
	prerelease, err := prereleaseStore.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list prerelease versions")
	}

	return &model.VersionsResponse{
		Release:    release,
		Prerelease: prerelease,
	}, nil
}

func (uc *Watch) findTarget(repo string) *model.WatchTarget {
	for _, t := range uc.targets {
		if strings.EqualFold(t.Repo, repo) {
			return t
		}
	}
	return nil
}
