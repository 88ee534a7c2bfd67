package service

// Broadcaster interface for WebSocket fan-out (avoids import cycle with the
// ws package). Delivery is best-effort: a slow or dead connection may miss a
// broadcast, only the originator's private acknowledgement is guaranteed to
// reflect its own event.
type Broadcaster interface {
	BroadcastToAll(msgType string, payload interface{})
	BroadcastToUser(userID string, msgType string, payload interface{})
}
