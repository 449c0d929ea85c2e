package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., published, prereleased)
	Repository string           // owner/name
	Sender     string
	TagName    string
	ReceivedAt time.Time
}

// IsSupportedEvent reports whether the event should trigger a release check
func (e *WebhookEvent) IsSupportedEvent() bool {
	if e.Type != EventTypeRelease {
		return false
	}

	switch e.Action {
	case "published", "released", "prereleased", "edited":
		return true
	default:
		return false
	}
}
