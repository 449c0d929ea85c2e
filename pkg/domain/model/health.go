package model

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string       `json:"status"`
	Service string       `json:"service"`
	Version string       `json:"version"`
	Watch   *WatchStatus `json:"watch,omitempty"`
}

// VersionsResponse lists stored versions per channel
type VersionsResponse struct {
	Release    map[string]string `json:"release"`
	Prerelease map[string]string `json:"prerelease"`
}
