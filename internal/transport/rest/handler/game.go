package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"skyquest/internal/cache"
	"skyquest/internal/model"
	"skyquest/internal/service"
	"skyquest/internal/transport/rest/middleware"
)

// GameHandler exposes the gameplay operations over REST, mirroring the
// WebSocket events for clients that fall back to plain HTTP.
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// GetLevel handles GET /v1/game/levels/{levelId}
func (h *GameHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.Atoi(mux.Vars(r)["levelId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level id")
		return
	}

	constraint, err := h.gameSvc.GetLevel(r.Context(), levelID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, constraint)
}

// GetProgress handles GET /v1/game/progress
func (h *GameHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	progress, err := h.gameSvc.GetProgress(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// CollectItem handles PATCH /v1/game/item-collect
func (h *GameHandler) CollectItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var ev model.CollectItemEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lp, err := h.gameSvc.CollectItem(r.Context(), userID, ev)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.CollectItemAck{
		Message:       "Item collected successfully",
		LevelProgress: lp,
	})
}

// CompleteLevel handles PATCH /v1/game/level-complete
func (h *GameHandler) CompleteLevel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var ev model.CompleteLevelEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.gameSvc.CompleteLevel(r.Context(), userID, ev)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.CompleteLevelAck{
		Message:    "Level completed successfully",
		TotalScore: result.TotalScore,
		Progress:   result.Progress,
	})
}

// SyncState handles PATCH /v1/game/sync
func (h *GameHandler) SyncState(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var payload model.SyncPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.gameSvc.SyncState(r.Context(), userID, payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.SyncAck{
		Message:  "Game state synced successfully",
		Progress: progress,
	})
}

type leaderboardResponse struct {
	Entries []cache.LeaderboardEntry `json:"entries"`
	Rank    int64                    `json:"rank"` // caller's position, -1 when unranked
}

// Leaderboard handles GET /v1/game/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.gameSvc.Leaderboard(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rank, err := h.gameSvc.Rank(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &leaderboardResponse{Entries: entries, Rank: rank})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps engine errors to HTTP responses. Validation
// rejections keep their reason code so clients can distinguish a retried
// message from genuine overflow.
func writeServiceError(w http.ResponseWriter, err error) {
	if reason, ok := service.RejectionReason(err); ok {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, service.ErrLevelNotFound) || errors.Is(err, service.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error(), "reason": reason})
		return
	}
	if errors.Is(err, service.ErrStoreUnavailable) {
		logrus.WithError(err).Warn("store unavailable")
		writeError(w, http.StatusServiceUnavailable, "store unavailable, retry later")
		return
	}
	logrus.WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}
