// Package events publishes ingest lifecycle events to a Redis stream.
// Publishing is optional: a nil publisher is a no-op, so the feature can be
// disabled entirely through configuration.
package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream ingest events are appended to.
const StreamName = "gosocial:events"

type EventType string

const (
	// ContentIngested is emitted after an ingestion run persists its batch.
	ContentIngested EventType = "content.ingested"
)

// IngestEvent describes one completed ingestion run.
type IngestEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	EventType     EventType `json:"event_type"`
	Platform      string    `json:"platform"`
	BloggerName   string    `json:"blogger_name"`
	TotalContents int       `json:"total_contents"`
	Timestamp     time.Time `json:"timestamp"`
}
