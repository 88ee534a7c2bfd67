package model

import "time"

// ActivityAction identifies the kind of accepted state-changing event.
type ActivityAction string

const (
	ActionRegistration    ActivityAction = "REGISTRATION"
	ActionLogin           ActivityAction = "LOGIN"
	ActionItemCollected   ActivityAction = "ITEM_COLLECTED"
	ActionLevelCompleted  ActivityAction = "LEVEL_COMPLETED"
	ActionGameStateSynced ActivityAction = "GAME_STATE_SYNCED"
)

// ActivityRecord is one row of the append-only activity log. Written on every
// accepted event, never read back by gameplay logic.
type ActivityRecord struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	UserID    string         `json:"userId" bson:"userId"`
	Action    ActivityAction `json:"action" bson:"action"`
	Details   map[string]any `json:"details" bson:"details"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}
