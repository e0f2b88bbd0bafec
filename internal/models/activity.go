package models

import "time"

// ActivityRecord is a best-effort trail of notable events (comments,
// level-ups, moderation). Written off the request path; losing one
// never fails a request.
type ActivityRecord struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
