package eventtypes

import (
	"encoding/json"
	"time"
)

type EventPayload struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// Event Types
const (
	EventTypeFlagSet    = "flag.set"
	EventTypeFlagDelete = "flag.delete"
	EventTypeLog        = "log"
)

// 플래그 변경 이벤트 (search-service -> user-service)
type FlagEvent struct {
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Kind       int       `json:"kind"`
	IsMatch    bool      `json:"is_match"`
	CreatedAt  time.Time `json:"created_at"`
}
