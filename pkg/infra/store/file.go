package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
)

// File keeps a repo -> tag JSON object in a local file. Every Put rewrites the
// whole file through a temporary file and rename. No file lock is taken, so
// only one process may use a path.
type File struct {
	path string
}

// NewFile creates a store backed by path. The file does not need to exist.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path
func (s *File) Path() string {
	return s.path
}

func (s *File) load(ctx context.Context) (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read version file",
			goerr.V("path", s.path),
			goerr.T(types.ErrTagStore))
	}

	return decodeRecords(ctx, raw, s.path), nil
}

func (s *File) save(records map[string]string) error {
	vars := []goerr.Option{goerr.V("path", s.path), goerr.T(types.ErrTagStore)}

	raw, err := json.Marshal(records)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal versions", vars...)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create version file directory", vars...)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary version file", vars...)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to write temporary version file", vars...)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to sync temporary version file", vars...)
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary version file", vars...)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return goerr.Wrap(err, "failed to replace version file", vars...)
	}
	return nil
}

// Get implements interfaces.VersionStore
func (s *File) Get(ctx context.Context, repo string) (string, bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	tag, ok := records[repo]
	return tag, ok, nil
}

// Put implements interfaces.VersionStore
func (s *File) Put(ctx context.Context, repo, tag string) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	records[repo] = tag
	return s.save(records)
}

// List implements interfaces.VersionStore
func (s *File) List(ctx context.Context) (map[string]string, error) {
	return s.load(ctx)
}
