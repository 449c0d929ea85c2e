package interfaces

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

// ReleaseFetcher retrieves the release list of a repository
type ReleaseFetcher interface {
	// FetchReleases returns releases in platform order (newest first). Transient
	// failures are retried inside the implementation.
	FetchReleases(ctx context.Context, repo string) ([]*model.ReleaseEntry, error)
}

// RecordWriter overwrites the remote record file
type RecordWriter interface {
	Publish(ctx context.Context, content string) error
}
