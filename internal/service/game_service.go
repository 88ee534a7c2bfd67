package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"skyquest/internal/cache"
	"skyquest/internal/metrics"
	"skyquest/internal/model"
	"skyquest/internal/repository"
)

// GameService applies gameplay events to player progress. All mutations of a
// player's document go through a per-user lock held across the full
// read-decide-write cycle; see locks.go.
type GameService struct {
	levelRepo    repository.LevelRepo
	progressRepo repository.ProgressRepo
	activityRepo repository.ActivityRepo
	levelCache   cache.LevelCache
	leaderboard  cache.LeaderboardCache
	locks        *userLocks
	broadcaster  Broadcaster
}

// NewGameService creates a new game service.
func NewGameService(
	levelRepo repository.LevelRepo,
	progressRepo repository.ProgressRepo,
	activityRepo repository.ActivityRepo,
	levelCache cache.LevelCache,
	leaderboard cache.LeaderboardCache,
) *GameService {
	return &GameService{
		levelRepo:    levelRepo,
		progressRepo: progressRepo,
		activityRepo: activityRepo,
		levelCache:   levelCache,
		leaderboard:  leaderboard,
		locks:        newUserLocks(),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket fan-out.
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetLevel looks up a level constraint, read-through via the cache.
func (s *GameService) GetLevel(ctx context.Context, levelID int) (*model.LevelConstraint, error) {
	constraint, err := s.levelCache.Get(ctx, levelID)
	if err != nil {
		logrus.WithError(err).WithField("levelId", levelID).Warn("level cache read failed, falling back to store")
	}
	if constraint != nil {
		return constraint, nil
	}

	constraint, err = s.levelRepo.GetByLevelID(ctx, levelID)
	if err != nil {
		return nil, storeFailure(fmt.Sprintf("failed to load level %d", levelID), err)
	}
	if constraint == nil {
		return nil, ErrLevelNotFound
	}

	if err := s.levelCache.Set(ctx, constraint); err != nil {
		logrus.WithError(err).WithField("levelId", levelID).Warn("level cache write failed")
	}
	return constraint, nil
}

// GetProgress returns a player's progress document.
func (s *GameService) GetProgress(ctx context.Context, userID string) (*model.PlayerProgress, error) {
	progress, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeFailure("failed to load progress", err)
	}
	if progress == nil {
		return nil, ErrProfileNotFound
	}
	return progress, nil
}

// validateCollection is the pure accept/reject decision for a collection
// event. The check order is deliberate: a duplicate on an already-full level
// must report the duplicate, not the limit, so clients can tell a retried
// message from genuine overflow.
func validateCollection(lp *model.LevelProgress, c *model.LevelConstraint, ev model.CollectItemEvent) error {
	max := c.MaxFor(ev.ItemType)
	taken := lp.Taken(ev.ItemType)

	if lp.Has(ev.ItemType, ev.ItemIndex) {
		return ErrDuplicateItem
	}
	if len(taken) >= max {
		return ErrItemLimitReached
	}
	if ev.ItemIndex < 0 || ev.ItemIndex >= max {
		return ErrItemIndexOutOfRange
	}
	return nil
}

// CollectItem validates and applies an item-collection event, returning the
// updated level fragment. On acceptance the change is broadcast to all live
// connections.
func (s *GameService) CollectItem(ctx context.Context, userID string, ev model.CollectItemEvent) (*model.LevelProgress, error) {
	if !ev.ItemType.Valid() {
		s.rejected("collect_item", ErrInvalidItemType)
		return nil, ErrInvalidItemType
	}

	constraint, err := s.GetLevel(ctx, ev.LevelID)
	if err != nil {
		s.rejected("collect_item", err)
		return nil, err
	}

	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		s.rejected("collect_item", err)
		return nil, err
	}

	lp := progress.EnsureLevel(ev.LevelID)
	if err := validateCollection(lp, constraint, ev); err != nil {
		s.rejected("collect_item", err)
		return nil, err
	}

	lp.Take(ev.ItemType, ev.ItemIndex)
	if err := s.progressRepo.Replace(ctx, progress); err != nil {
		return nil, storeFailure("failed to save progress", err)
	}

	s.logActivity(ctx, userID, model.ActionItemCollected, map[string]any{
		"levelId":   ev.LevelID,
		"itemType":  ev.ItemType,
		"itemIndex": ev.ItemIndex,
	})

	metrics.EventsAccepted.WithLabelValues("collect_item").Inc()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAll("item_collected", &model.ItemCollectedBroadcast{
			UserID:    userID,
			LevelID:   ev.LevelID,
			ItemType:  ev.ItemType,
			ItemIndex: ev.ItemIndex,
		})
	}

	return lp, nil
}

// CompleteLevel applies a level-completion event. Resends are legal: the
// level entry's score and time are last-write-wins, while the aggregate
// totals accumulate.
func (s *GameService) CompleteLevel(ctx context.Context, userID string, ev model.CompleteLevelEvent) (*model.CompleteLevelResult, error) {
	// Negative numbers would persist a document that fails the read-side
	// shape checks, locking the player out of every later event.
	if ev.Score < 0 || ev.TimeSpent < 0 {
		s.rejected("complete_level", ErrInvalidScore)
		return nil, ErrInvalidScore
	}

	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		s.rejected("complete_level", err)
		return nil, err
	}

	lp := progress.EnsureLevel(ev.LevelID)
	lp.Completed = true
	lp.Score = ev.Score
	lp.TimeSpent = ev.TimeSpent

	progress.TotalScore += ev.Score
	progress.TotalPlayTime += ev.TimeSpent
	if ev.LevelID+1 > progress.CurrentLevel {
		progress.CurrentLevel = ev.LevelID + 1
	}

	if err := s.progressRepo.Replace(ctx, progress); err != nil {
		return nil, storeFailure("failed to save progress", err)
	}

	s.logActivity(ctx, userID, model.ActionLevelCompleted, map[string]any{
		"levelId":   ev.LevelID,
		"score":     ev.Score,
		"timeSpent": ev.TimeSpent,
	})
	s.updateLeaderboard(ctx, userID, progress.TotalScore)

	metrics.EventsAccepted.WithLabelValues("complete_level").Inc()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAll("level_completed", &model.LevelCompletedBroadcast{
			UserID:     userID,
			LevelID:    ev.LevelID,
			Score:      ev.Score,
			TotalScore: progress.TotalScore,
		})
	}

	return &model.CompleteLevelResult{
		TotalScore: progress.TotalScore,
		Progress:   progress,
	}, nil
}

// SyncState reconciles a bulk offline snapshot into canonical progress.
// Present fields overwrite the server state wholesale; absent fields are left
// untouched. An explicit zero total is an overwrite, not a no-op. The client
// is authoritative for its snapshot, so a stale offline client can regress
// progress; that trade-off is accepted.
func (s *GameService) SyncState(ctx context.Context, userID string, payload model.SyncPayload) (*model.PlayerProgress, error) {
	if err := payload.Validate(); err != nil {
		s.rejected("sync_state", ErrInvalidSyncPayload)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyncPayload, err)
	}

	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		s.rejected("sync_state", err)
		return nil, err
	}

	if payload.LevelsData != nil {
		progress.LevelsData = payload.LevelsData
	}
	if payload.Inventory != nil {
		progress.Inventory = payload.Inventory
	}
	if payload.Missions != nil {
		progress.Missions = payload.Missions
	}
	if payload.Achievements != nil {
		progress.Achievements = payload.Achievements
	}
	if payload.TotalScore != nil {
		progress.TotalScore = *payload.TotalScore
	}
	if payload.TotalPlayTime != nil {
		progress.TotalPlayTime = *payload.TotalPlayTime
	}

	progress.PendingSync = false
	progress.LastSyncAt = time.Now()

	if err := s.progressRepo.Replace(ctx, progress); err != nil {
		return nil, storeFailure("failed to save progress", err)
	}

	s.logActivity(ctx, userID, model.ActionGameStateSynced, map[string]any{
		"fields": syncedFields(payload),
	})
	if payload.TotalScore != nil {
		s.updateLeaderboard(ctx, userID, progress.TotalScore)
	}

	metrics.EventsAccepted.WithLabelValues("sync_state").Inc()
	return progress, nil
}

// Leaderboard returns the top total-score entries.
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]cache.LeaderboardEntry, error) {
	return s.leaderboard.GetTop(ctx, limit)
}

// Rank returns a player's 1-indexed leaderboard position, or -1 if the
// player has no score yet.
func (s *GameService) Rank(ctx context.Context, userID string) (int64, error) {
	return s.leaderboard.GetRank(ctx, userID)
}

// storeFailure tags a repository error as transient so the transport layers
// can tell the retry-eligible class apart from other internal failures.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func (s *GameService) rejected(event string, err error) {
	if reason, ok := RejectionReason(err); ok {
		metrics.EventsRejected.WithLabelValues(event, reason).Inc()
	}
}

// logActivity appends to the activity log. The event has already been
// committed at this point; a log failure is reported, not propagated.
func (s *GameService) logActivity(ctx context.Context, userID string, action model.ActivityAction, details map[string]any) {
	if err := s.activityRepo.Append(ctx, userID, action, details); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userId": userID,
			"action": action,
		}).Error("failed to append activity record")
	}
}

func (s *GameService) updateLeaderboard(ctx context.Context, userID string, totalScore int) {
	if err := s.leaderboard.UpdateScore(ctx, userID, totalScore); err != nil {
		logrus.WithError(err).WithField("userId", userID).Warn("failed to update leaderboard")
	}
}

func syncedFields(payload model.SyncPayload) []string {
	var fields []string
	if payload.LevelsData != nil {
		fields = append(fields, "levelsData")
	}
	if payload.Inventory != nil {
		fields = append(fields, "inventory")
	}
	if payload.Missions != nil {
		fields = append(fields, "missions")
	}
	if payload.Achievements != nil {
		fields = append(fields, "achievements")
	}
	if payload.TotalScore != nil {
		fields = append(fields, "totalScore")
	}
	if payload.TotalPlayTime != nil {
		fields = append(fields, "totalPlayTime")
	}
	return fields
}
