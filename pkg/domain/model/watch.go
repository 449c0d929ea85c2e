package model

import "time"

// DefaultGroup is the Bark group used when a target does not set one
const DefaultGroup = "Github"

// WatchTarget is a monitored repository and where to send its notifications
type WatchTarget struct {
	Repo    string `toml:"repo"`     // owner/name
	BarkAPI string `toml:"bark_api"` // full Bark push URL
	Group   string `toml:"group"`
	Icon    string `toml:"icon"`
}

// Notification is the payload handed to a Notifier
type Notification struct {
	Endpoint string
	Title    string
	Body     string
	Group    string
	Icon     string
	URL      string // release page, used by mirrors only
}

// WatchStatus is a snapshot of scheduler progress
type WatchStatus struct {
	StartedAt  time.Time `json:"started_at,omitzero"`
	LastPassAt time.Time `json:"last_pass_at,omitzero"`
	Passes     int       `json:"passes"`
	Targets    int       `json:"targets"`
}
