package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across pipeline boundaries
var (
	// ErrTagNetwork marks failed calls to IP lookup, GitHub release list or Bark endpoints
	ErrTagNetwork = goerr.NewTag("network")

	// ErrTagRemoteWrite marks a failed read or update of the published record file
	ErrTagRemoteWrite = goerr.NewTag("remote_write")

	// ErrTagConfig marks an invalid watchlist or flag combination
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagStore marks version store I/O failures
	ErrTagStore = goerr.NewTag("store")
)
