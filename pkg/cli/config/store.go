package config

import (
	"context"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/infra/store"
	"github.com/urfave/cli/v3"
)

const (
	DefaultReleaseStore    = "/app/release_records.json"
	DefaultPrereleaseStore = "/app/prerelease_records.json"
)

// Store selects the version store backend
type Store struct {
	ReleaseStore    string
	PrereleaseStore string
	GCSBucket       string
	GCSEndpoint     string
}

func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "release-store",
			Usage:       "JSON file of last notified stable releases",
			Value:       DefaultReleaseStore,
			Destination: &c.ReleaseStore,
			Sources:     cli.EnvVars("RELMON_RELEASE_STORE"),
		},
		&cli.StringFlag{
			Name:        "prerelease-store",
			Usage:       "JSON file of last notified pre-releases",
			Value:       DefaultPrereleaseStore,
			Destination: &c.PrereleaseStore,
			Sources:     cli.EnvVars("RELMON_PRERELEASE_STORE"),
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Keep version records in this Cloud Storage bucket instead of local files",
			Destination: &c.GCSBucket,
			Sources:     cli.EnvVars("RELMON_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Cloud Storage endpoint override (emulator)",
			Destination: &c.GCSEndpoint,
			Sources:     cli.EnvVars("RELMON_GCS_ENDPOINT"),
		},
	}
}

// Open returns the release and pre-release version stores. With a GCS bucket
// the object names are the base names of the store paths.
func (c *Store) Open(ctx context.Context) (interfaces.VersionStore, interfaces.VersionStore, error) {
	if c.GCSBucket == "" {
		return store.NewFile(c.ReleaseStore), store.NewFile(c.PrereleaseStore), nil
	}

	client, err := store.NewGCSClient(ctx, c.GCSEndpoint)
	if err != nil {
		return nil, nil, err
	}
	return store.NewGCS(client, c.GCSBucket, filepath.Base(c.ReleaseStore)),
		store.NewGCS(client, c.GCSBucket, filepath.Base(c.PrereleaseStore)),
		nil
}

// Snapshot copies src into a memory store that is never written back
func Snapshot(ctx context.Context, src interfaces.VersionStore) (*store.Memory, error) {
	records, err := src.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read version records")
	}
	return store.NewMemory(records), nil
}
