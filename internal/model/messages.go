package model

import "time"

// CollectItemEvent is a client claim of having picked up a collectible.
type CollectItemEvent struct {
	LevelID   int      `json:"levelId"`
	ItemType  ItemType `json:"itemType"`
	ItemIndex int      `json:"itemIndex"`
}

// CompleteLevelEvent reports a finished level with its score and play time.
type CompleteLevelEvent struct {
	LevelID   int `json:"levelId"`
	Score     int `json:"score"`
	TimeSpent int `json:"timeSpent"` // seconds
}

// CompleteLevelResult is returned to the originator on an accepted completion.
type CompleteLevelResult struct {
	TotalScore int             `json:"totalScore"`
	Progress   *PlayerProgress `json:"progress"`
}

// PlayerMoveEvent reports a position change. Positions are ephemeral: they
// are relayed, never persisted or validated against level bounds.
type PlayerMoveEvent struct {
	LevelID int     `json:"levelId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Position is a 2D in-level coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerMovedBroadcast fans a position change out to all live connections.
type PlayerMovedBroadcast struct {
	UserID   string   `json:"userId"`
	LevelID  int      `json:"levelId"`
	Position Position `json:"position"`
}

// ItemCollectedBroadcast fans out to all live connections on acceptance.
type ItemCollectedBroadcast struct {
	UserID    string   `json:"userId"`
	LevelID   int      `json:"levelId"`
	ItemType  ItemType `json:"itemType"`
	ItemIndex int      `json:"itemIndex"`
}

// LevelCompletedBroadcast fans out to all live connections on acceptance.
type LevelCompletedBroadcast struct {
	UserID     string `json:"userId"`
	LevelID    int    `json:"levelId"`
	Score      int    `json:"score"`
	TotalScore int    `json:"totalScore"`
}

// CollectItemAck is the private acknowledgement for an accepted collection.
type CollectItemAck struct {
	Message       string         `json:"message"`
	LevelProgress *LevelProgress `json:"levelProgress"`
}

// CompleteLevelAck is the private acknowledgement for an accepted completion.
type CompleteLevelAck struct {
	Message    string          `json:"message"`
	TotalScore int             `json:"totalScore"`
	Progress   *PlayerProgress `json:"progress"`
}

// SyncAck is the private acknowledgement for an accepted reconciliation.
type SyncAck struct {
	Message  string          `json:"message"`
	Progress *PlayerProgress `json:"progress"`
}

// Rejection is the private failure notice sent back to the originator.
type Rejection struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
	LevelID int    `json:"levelId,omitempty"`
}

// HeartbeatResponse carries the server timestamp for round-trip timing.
type HeartbeatResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	ConnectionID string    `json:"connectionId"`
}

// ConnectionEstablished acknowledges a successful connect.
type ConnectionEstablished struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
}
