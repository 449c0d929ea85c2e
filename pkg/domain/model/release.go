package model

import (
	"time"

	"github.com/m-mizutani/relmon/pkg/domain/types"
)

// ReleaseEntry is one element of a repository's release list, newest first
type ReleaseEntry struct {
	TagName     string
	Name        string
	HTMLURL     string
	PublishedAt time.Time
	Prerelease  bool
}

// LatestOf returns the first entry belonging to ch, or nil when the list has none.
// The list is assumed to be ordered newest first as returned by GitHub; the
// ordering is not verified.
func LatestOf(releases []*ReleaseEntry, ch types.Channel) *ReleaseEntry {
	for _, r := range releases {
		if r == nil {
			continue
		}
		if r.Prerelease == ch.IsPrerelease() {
			return r
		}
	}
	return nil
}
