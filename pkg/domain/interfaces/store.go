package interfaces

import "context"

// VersionStore is a durable repo -> tag mapping for one channel
type VersionStore interface {
	// Get returns found=false if the repository was never notified
	Get(ctx context.Context, repo string) (tag string, found bool, err error)
	// Put persists immediately
	Put(ctx context.Context, repo, tag string) error
	List(ctx context.Context) (map[string]string, error)
}
