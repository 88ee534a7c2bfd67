package model

import "time"

// ConnectionRecord is the audit row for a live WebSocket connection.
// DisconnectedAt stays nil while the connection is open.
type ConnectionRecord struct {
	ID             string     `json:"id" bson:"_id,omitempty"`
	UserID         string     `json:"userId" bson:"userId"`
	ConnectionID   string     `json:"connectionId" bson:"connectionId"`
	ConnectedAt    time.Time  `json:"connectedAt" bson:"connectedAt"`
	DisconnectedAt *time.Time `json:"disconnectedAt,omitempty" bson:"disconnectedAt,omitempty"`
}
