package analytics

import "time"

// Topics for link telemetry events.
const (
	TopicLinkCreated = "link.created"
	TopicLinkVisited = "link.visited"
)

// LinkCreatedEvent is emitted when a locator is shortened.
type LinkCreatedEvent struct {
	Code      string    `json:"code"`
	Locator   string    `json:"locator"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkVisitedEvent is emitted when a short code is resolved. The
// durable visit count lives in the repository; these events are
// supplemental telemetry for downstream consumers.
type LinkVisitedEvent struct {
	Code      string    `json:"code"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
}
