package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"skyquest/internal/metrics"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client -> server message types
const (
	MsgCollectItem   MessageType = "collect_item"
	MsgCompleteLevel MessageType = "complete_level"
	MsgSyncState     MessageType = "sync_state"
	MsgPlayerMove    MessageType = "player_move"
	MsgHeartbeat     MessageType = "heartbeat"
)

// Server -> client message types
const (
	MsgConnectionEstablished MessageType = "connection_established"
	MsgHeartbeatResponse     MessageType = "heartbeat_response"
	MsgItemCollected         MessageType = "item_collected"
	MsgLevelCompleted        MessageType = "level_completed"
	MsgPlayerMoved           MessageType = "player_moved"
	MsgCollectAccepted       MessageType = "item_collection_success"
	MsgCollectFailed         MessageType = "item_collection_failed"
	MsgCompleteAccepted      MessageType = "level_complete_success"
	MsgCompleteFailed        MessageType = "level_complete_failed"
	MsgSyncAccepted          MessageType = "sync_success"
	MsgSyncFailed            MessageType = "sync_failed"
	MsgError                 MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one live WebSocket connection.
type Connection struct {
	ID     string
	UserID string
	Send   chan []byte
}

// send queues a message on the connection's buffer without blocking. A full
// buffer drops the message; a stalled consumer must never hold up the caller.
func (c *Connection) send(msgType MessageType, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		logrus.WithError(err).WithField("type", msgType).Error("failed to encode message")
		return
	}
	select {
	case c.Send <- data:
	default:
		metrics.BroadcastsDropped.Inc()
	}
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: body})
}

// Hub is the connection registry: at most one entry per user represents the
// current reachable connection. A later connection for the same user
// supersedes an earlier one (last-connect-wins); the superseded connection is
// not forcibly closed, it simply stops receiving broadcasts.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Connection // userID -> live connection
}

// NewHub creates a new connection registry.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
	}
}

// Register installs conn as the live connection for its user, superseding
// any prior entry.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	prev := h.conns[conn.UserID]
	h.conns[conn.UserID] = conn
	if prev == nil {
		metrics.LiveConnections.Inc()
	}
	h.mu.Unlock()

	entry := logrus.WithFields(logrus.Fields{
		"userId":       conn.UserID,
		"connectionId": conn.ID,
	})
	if prev != nil {
		entry.WithField("supersedes", prev.ID).Info("connection superseded")
	} else {
		entry.Info("connection registered")
	}
}

// Unregister removes conn from the registry, but only if it is still the
// live connection for its user. A late disconnect of a superseded connection
// must not evict the newer one.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.conns[conn.UserID]; ok && existing == conn {
		delete(h.conns, conn.UserID)
		close(conn.Send)
		metrics.LiveConnections.Dec()
		logrus.WithFields(logrus.Fields{
			"userId":       conn.UserID,
			"connectionId": conn.ID,
		}).Info("connection unregistered")
	}
}

// Live returns the current live connection for a user, if any.
func (h *Hub) Live(userID string) (*Connection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[userID]
	return conn, ok
}

// LiveCount returns the number of registered connections.
func (h *Hub) LiveCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// BroadcastToAll fans a message out to every live connection, the originator
// included. Sends are non-blocking; a full buffer drops the message rather
// than stalling delivery to everyone else. Implements service.Broadcaster.
func (h *Hub) BroadcastToAll(msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		logrus.WithError(err).WithField("type", msgType).Error("failed to encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.conns {
		select {
		case conn.Send <- data:
		default:
			metrics.BroadcastsDropped.Inc()
		}
	}
}

// BroadcastToUser sends a message to a single user's live connection, if one
// is registered. The lock is held across the send: Unregister closes the
// channel under the write lock, so sending outside it could hit a closed
// channel. Implements service.Broadcaster.
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		logrus.WithError(err).WithField("type", msgType).Error("failed to encode message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[userID]
	if !ok {
		return
	}
	select {
	case conn.Send <- data:
	default:
		metrics.BroadcastsDropped.Inc()
	}
}
