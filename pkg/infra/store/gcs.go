package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Cloud Storage client. endpoint may be empty; it is
// set for emulators such as fake-gcs-server.
func NewGCSClient(ctx context.Context, endpoint string) (*storage.Client, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client",
			goerr.V("endpoint", endpoint),
			goerr.T(types.ErrTagStore))
	}
	return client, nil
}

// GCS keeps the repo -> tag JSON object in a Cloud Storage object, in the same
// format as File.
type GCS struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCS creates a store for gs://bucket/object
func NewGCS(client *storage.Client, bucket, object string) *GCS {
	return &GCS{
		client: client,
		bucket: bucket,
		object: object,
	}
}

func (s *GCS) vars() []goerr.Option {
	return []goerr.Option{
		goerr.V("bucket", s.bucket),
		goerr.V("object", s.object),
		goerr.T(types.ErrTagStore),
	}
}

func (s *GCS) load(ctx context.Context) (map[string]string, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open version object", s.vars()...)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read version object", s.vars()...)
	}

	return decodeRecords(ctx, raw, "gs://"+s.bucket+"/"+s.object), nil
}

func (s *GCS) save(ctx context.Context, records map[string]string) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal versions", s.vars()...)
	}

	w := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write version object", s.vars()...)
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit version object", s.vars()...)
	}
	return nil
}

func (s *GCS) Get(ctx context.Context, repo string) (string, bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	tag, ok := records[repo]
	return tag, ok, nil
}

func (s *GCS) Put(ctx context.Context, repo, tag string) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	records[repo] = tag
	return s.save(ctx, records)
}

func (s *GCS) List(ctx context.Context) (map[string]string, error) {
	return s.load(ctx)
}
