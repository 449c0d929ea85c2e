package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// DefaultCommitMessage is used when FileWriter has no explicit message
const DefaultCommitMessage = "Auto update"

// FileWriter overwrites one file in a repository. It implements interfaces.RecordWriter.
type FileWriter struct {
	client  *Client
	owner   string
	repo    string
	path    string
	branch  string
	message string
}

// FileWriterOption configures FileWriter
type FileWriterOption func(*FileWriter)

// WithBranch commits to branch instead of the default branch
func WithBranch(branch string) FileWriterOption {
	return func(w *FileWriter) {
		w.branch = branch
	}
}

// WithCommitMessage replaces DefaultCommitMessage
func WithCommitMessage(msg string) FileWriterOption {
	return func(w *FileWriter) {
		if msg != "" {
			w.message = msg
		}
	}
}

// NewFileWriter creates a writer for owner/repo:path
func NewFileWriter(client *Client, owner, repo, path string, opts ...FileWriterOption) *FileWriter {
	w := &FileWriter{
		client:  client,
		owner:   owner,
		repo:    repo,
		path:    path,
		message: DefaultCommitMessage,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Publish reads the current file SHA and updates the file with content.
// A stale SHA or any other failure is returned, not retried.
func (w *FileWriter) Publish(ctx context.Context, content string) error {
	logger := logging.From(ctx)
	vars := []goerr.Option{
		goerr.V("owner", w.owner),
		goerr.V("repo", w.repo),
		goerr.V("path", w.path),
		goerr.T(types.ErrTagRemoteWrite),
	}

	var getOpts *github.RepositoryContentGetOptions
	if w.branch != "" {
		getOpts = &github.RepositoryContentGetOptions{Ref: w.branch}
	}

	file, _, _, err := w.client.gh.Repositories.GetContents(ctx, w.owner, w.repo, w.path, getOpts)
	if err != nil {
		return goerr.Wrap(err, "failed to read remote record", vars...)
	}
	if file == nil {
		return goerr.New("remote record path is not a file", vars...)
	}

	logger.Debug("Read remote record", "path", file.GetPath(), "sha", file.GetSHA())

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(w.message),
		Content: []byte(content),
		SHA:     file.SHA,
	}
	if w.branch != "" {
		opts.Branch = github.Ptr(w.branch)
	}

	resp, _, err := w.client.gh.Repositories.UpdateFile(ctx, w.owner, w.repo, w.path, opts)
	if err != nil {
		return goerr.Wrap(err, "failed to update remote record", vars...)
	}

	logger.Info("Uploaded remote record",
		"owner", w.owner,
		"repo", w.repo,
		"path", w.path,
		"commit", resp.Commit.GetSHA(),
	)
	return nil
}
