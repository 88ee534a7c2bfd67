package model

import (
	"fmt"
	"time"
)

// ItemType distinguishes the two kinds of in-level collectibles.
type ItemType string

const (
	ItemPrimary   ItemType = "primary"
	ItemSecondary ItemType = "secondary"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemPrimary || t == ItemSecondary
}

// LevelProgress is the per-level fragment of a player's progress document.
// Taken sets hold collected item indices; indices are never removed by
// gameplay events, only by a reconciliation overwrite.
type LevelProgress struct {
	PrimaryTaken   []int `json:"primaryTaken" bson:"primaryTaken"`
	SecondaryTaken []int `json:"secondaryTaken" bson:"secondaryTaken"`
	Completed      bool  `json:"completed" bson:"completed"`
	Score          int   `json:"score" bson:"score"`
	TimeSpent      int   `json:"timeSpent" bson:"timeSpent"`
}

// Taken returns the taken set for the given item type.
func (lp *LevelProgress) Taken(t ItemType) []int {
	if t == ItemSecondary {
		return lp.SecondaryTaken
	}
	return lp.PrimaryTaken
}

// Has reports whether index is already in the taken set for the given type.
func (lp *LevelProgress) Has(t ItemType, index int) bool {
	for _, idx := range lp.Taken(t) {
		if idx == index {
			return true
		}
	}
	return false
}

// Take appends index to the taken set for the given type. Callers are
// responsible for duplicate and bound checks.
func (lp *LevelProgress) Take(t ItemType, index int) {
	if t == ItemSecondary {
		lp.SecondaryTaken = append(lp.SecondaryTaken, index)
		return
	}
	lp.PrimaryTaken = append(lp.PrimaryTaken, index)
}

// PlayerProgress is the durable per-player progress document.
type PlayerProgress struct {
	UserID        string                    `json:"userId" bson:"userId"`
	LevelsData    map[string]*LevelProgress `json:"levelsData" bson:"levelsData"`
	Inventory     map[string]int            `json:"inventory" bson:"inventory"`
	Missions      map[string]bool           `json:"missions" bson:"missions"`
	Achievements  []string                  `json:"achievements" bson:"achievements"`
	TotalScore    int                       `json:"totalScore" bson:"totalScore"`
	TotalPlayTime int                       `json:"totalPlayTime" bson:"totalPlayTime"` // seconds
	CurrentLevel  int                       `json:"currentLevel" bson:"currentLevel"`
	PendingSync   bool                      `json:"pendingSync" bson:"pendingSync"`
	LastSyncAt    time.Time                 `json:"lastSyncAt" bson:"lastSyncAt"`
	CreatedAt     time.Time                 `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt" bson:"updatedAt"`
}

// NewPlayerProgress returns a freshly provisioned progress document.
func NewPlayerProgress(userID string) *PlayerProgress {
	now := time.Now()
	return &PlayerProgress{
		UserID:       userID,
		LevelsData:   make(map[string]*LevelProgress),
		Inventory:    make(map[string]int),
		Missions:     make(map[string]bool),
		CurrentLevel: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// LevelKey is the levelsData map key for a level ID.
func LevelKey(levelID int) string {
	return fmt.Sprintf("level_%d", levelID)
}

// Level returns the progress fragment for levelID, or nil if the player has
// not touched that level yet.
func (p *PlayerProgress) Level(levelID int) *LevelProgress {
	return p.LevelsData[LevelKey(levelID)]
}

// EnsureLevel returns the progress fragment for levelID, creating an empty
// one on first use.
func (p *PlayerProgress) EnsureLevel(levelID int) *LevelProgress {
	if p.LevelsData == nil {
		p.LevelsData = make(map[string]*LevelProgress)
	}
	key := LevelKey(levelID)
	lp, ok := p.LevelsData[key]
	if !ok {
		lp = &LevelProgress{}
		p.LevelsData[key] = lp
	}
	return lp
}

// Validate checks the document shape after a store read. A malformed document
// is a data-integrity failure, not something gameplay logic should repair.
func (p *PlayerProgress) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("progress document missing userId")
	}
	if p.CurrentLevel < 1 {
		return fmt.Errorf("progress document for %s has currentLevel %d", p.UserID, p.CurrentLevel)
	}
	if p.TotalScore < 0 || p.TotalPlayTime < 0 {
		return fmt.Errorf("progress document for %s has negative totals", p.UserID)
	}
	for key, lp := range p.LevelsData {
		if lp == nil {
			return fmt.Errorf("progress document for %s has nil entry %q", p.UserID, key)
		}
	}
	return nil
}

// SyncPayload is the bulk snapshot a client submits after offline play.
// Field presence decides what is overwritten: nil fields leave the server
// state untouched, and an explicit zero total is a legitimate overwrite.
type SyncPayload struct {
	LevelsData    map[string]*LevelProgress `json:"levelsData,omitempty"`
	Inventory     map[string]int            `json:"inventory,omitempty"`
	Missions      map[string]bool           `json:"missions,omitempty"`
	Achievements  []string                  `json:"achievements,omitempty"`
	TotalScore    *int                      `json:"totalScore,omitempty"`
	TotalPlayTime *int                      `json:"totalPlayTime,omitempty"`
}

// Validate checks a snapshot before it is allowed to overwrite server state.
// Anything that would produce a document failing the read-side shape checks
// must be rejected here, before the write.
func (p *SyncPayload) Validate() error {
	if p.TotalScore != nil && *p.TotalScore < 0 {
		return fmt.Errorf("totalScore must be non-negative, got %d", *p.TotalScore)
	}
	if p.TotalPlayTime != nil && *p.TotalPlayTime < 0 {
		return fmt.Errorf("totalPlayTime must be non-negative, got %d", *p.TotalPlayTime)
	}
	for key, lp := range p.LevelsData {
		if lp == nil {
			return fmt.Errorf("levelsData entry %q is null", key)
		}
		if lp.Score < 0 || lp.TimeSpent < 0 {
			return fmt.Errorf("levelsData entry %q has negative score or time", key)
		}
	}
	return nil
}
