package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"skyquest/internal/model"
	"skyquest/internal/repository"
	"skyquest/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // sync_state carries a full progress snapshot

	// How long a single event may spend in the store before it fails. The
	// event fails, the connection stays up; retrying is the client's call.
	eventTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	authSvc  *service.AuthService
	gameSvc  *service.GameService
	connRepo repository.ConnectionRepo
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, gameSvc *service.GameService, connRepo repository.ConnectionRepo) *Handler {
	return &Handler{
		hub:      hub,
		authSvc:  authSvc,
		gameSvc:  gameSvc,
		connRepo: connRepo,
	}
}

// GameWS handles GET /v1/ws/game. A connection without a valid identity
// token is rejected before the upgrade, with no further side effects.
func (h *Handler) GameWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("WebSocket upgrade error")
		return
	}

	conn := &Connection{
		ID:     uuid.New().String(),
		UserID: claims.UserID,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(conn)

	ctx, cancel := context.WithTimeout(r.Context(), eventTimeout)
	defer cancel()
	if err := h.connRepo.RecordOpen(ctx, conn.UserID, conn.ID); err != nil {
		logrus.WithError(err).WithField("userId", conn.UserID).Error("failed to record connection open")
	}

	conn.send(MsgConnectionEstablished, &model.ConnectionEstablished{
		ConnectionID: conn.ID,
		UserID:       conn.UserID,
	})

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := h.connRepo.RecordClose(ctx, conn.ID); err != nil {
			logrus.WithError(err).WithField("connectionId", conn.ID).Error("failed to record connection close")
		}
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("userId", conn.UserID).Warn("WebSocket read error")
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			conn.send(MsgError, &model.Rejection{Reason: "BAD_MESSAGE", Message: "malformed message envelope"})
			continue
		}

		h.dispatch(conn, &msg)
	}
}

// dispatch routes one inbound event. Events run synchronously on the
// connection's read loop; concurrency exists across connections, and
// per-player ordering is enforced further down by the game service.
func (h *Handler) dispatch(conn *Connection, msg *Message) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	switch msg.Type {
	case MsgHeartbeat:
		conn.send(MsgHeartbeatResponse, &model.HeartbeatResponse{
			Timestamp:    time.Now(),
			ConnectionID: conn.ID,
		})

	case MsgPlayerMove:
		var ev model.PlayerMoveEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			conn.send(MsgError, &model.Rejection{Reason: "BAD_MESSAGE", Message: "malformed player_move payload"})
			return
		}
		// Pure relay: no persistence, no per-user lock, no ack.
		h.hub.BroadcastToAll(string(MsgPlayerMoved), &model.PlayerMovedBroadcast{
			UserID:   conn.UserID,
			LevelID:  ev.LevelID,
			Position: model.Position{X: ev.X, Y: ev.Y},
		})

	case MsgCollectItem:
		var ev model.CollectItemEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			conn.send(MsgCollectFailed, &model.Rejection{Reason: "BAD_MESSAGE", Message: "malformed collect_item payload"})
			return
		}
		lp, err := h.gameSvc.CollectItem(ctx, conn.UserID, ev)
		if err != nil {
			conn.send(MsgCollectFailed, h.rejection(conn, err, ev.LevelID))
			return
		}
		conn.send(MsgCollectAccepted, &model.CollectItemAck{
			Message:       "Item collected successfully",
			LevelProgress: lp,
		})

	case MsgCompleteLevel:
		var ev model.CompleteLevelEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			conn.send(MsgCompleteFailed, &model.Rejection{Reason: "BAD_MESSAGE", Message: "malformed complete_level payload"})
			return
		}
		result, err := h.gameSvc.CompleteLevel(ctx, conn.UserID, ev)
		if err != nil {
			conn.send(MsgCompleteFailed, h.rejection(conn, err, ev.LevelID))
			return
		}
		conn.send(MsgCompleteAccepted, &model.CompleteLevelAck{
			Message:    "Level completed successfully",
			TotalScore: result.TotalScore,
			Progress:   result.Progress,
		})

	case MsgSyncState:
		var payload model.SyncPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			conn.send(MsgSyncFailed, &model.Rejection{Reason: "BAD_MESSAGE", Message: "malformed sync_state payload"})
			return
		}
		progress, err := h.gameSvc.SyncState(ctx, conn.UserID, payload)
		if err != nil {
			conn.send(MsgSyncFailed, h.rejection(conn, err, 0))
			return
		}
		conn.send(MsgSyncAccepted, &model.SyncAck{
			Message:  "Game state synced successfully",
			Progress: progress,
		})

	default:
		conn.send(MsgError, &model.Rejection{Reason: "UNKNOWN_EVENT", Message: "unknown event type " + string(msg.Type)})
	}
}

// rejection builds the private failure notice for the originator. Expected
// validation rejections carry their reason code; anything else is an
// internal failure that should not leak details to the client.
func (h *Handler) rejection(conn *Connection, err error, levelID int) *model.Rejection {
	if reason, ok := service.RejectionReason(err); ok {
		return &model.Rejection{Reason: reason, Message: err.Error(), LevelID: levelID}
	}
	if errors.Is(err, service.ErrStoreUnavailable) {
		logrus.WithError(err).WithField("userId", conn.UserID).Warn("store unavailable")
		return &model.Rejection{Reason: "STORE_UNAVAILABLE", Message: "store unavailable, retry later", LevelID: levelID}
	}
	logrus.WithError(err).WithField("userId", conn.UserID).Error("event processing failed")
	return &model.Rejection{Reason: "INTERNAL", Message: "event processing failed", LevelID: levelID}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
