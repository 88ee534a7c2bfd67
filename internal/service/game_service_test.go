package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"skyquest/internal/cache"
	"skyquest/internal/model"
)

// fakeLevelRepo serves constraints from a map.
type fakeLevelRepo struct {
	levels map[int]*model.LevelConstraint
}

func (r *fakeLevelRepo) GetByLevelID(ctx context.Context, levelID int) (*model.LevelConstraint, error) {
	return r.levels[levelID], nil
}

func (r *fakeLevelRepo) Insert(ctx context.Context, c *model.LevelConstraint) error {
	r.levels[c.LevelID] = c
	return nil
}

func (r *fakeLevelRepo) List(ctx context.Context) ([]*model.LevelConstraint, error) {
	var out []*model.LevelConstraint
	for _, c := range r.levels {
		out = append(out, c)
	}
	return out, nil
}

// fakeProgressRepo mimics the store's behavior: reads return an independent
// copy of the document, like a fresh decode would.
type fakeProgressRepo struct {
	mu   sync.Mutex
	docs map[string]*model.PlayerProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{docs: make(map[string]*model.PlayerProgress)}
}

func (r *fakeProgressRepo) GetByUserID(ctx context.Context, userID string) (*model.PlayerProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, nil
	}
	return cloneProgress(doc), nil
}

func (r *fakeProgressRepo) Create(ctx context.Context, p *model.PlayerProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[p.UserID] = cloneProgress(p)
	return nil
}

func (r *fakeProgressRepo) Replace(ctx context.Context, p *model.PlayerProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[p.UserID] = cloneProgress(p)
	return nil
}

func cloneProgress(p *model.PlayerProgress) *model.PlayerProgress {
	data, _ := json.Marshal(p)
	var clone model.PlayerProgress
	_ = json.Unmarshal(data, &clone)
	return &clone
}

type activityEntry struct {
	userID string
	action model.ActivityAction
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []activityEntry
}

func (r *fakeActivityRepo) Append(ctx context.Context, userID string, action model.ActivityAction, details map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, activityEntry{userID: userID, action: action})
	return nil
}

func (r *fakeActivityRepo) actions() []model.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ActivityAction, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.action
	}
	return out
}

type broadcastCall struct {
	msgType string
	userID  string // empty for fan-out to all
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToAll(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{msgType: msgType})
}

func (b *fakeBroadcaster) BroadcastToUser(userID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{msgType: msgType, userID: userID})
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	for i, c := range b.calls {
		out[i] = c.msgType
	}
	return out
}

type testEnv struct {
	svc       *GameService
	progress  *fakeProgressRepo
	activity  *fakeActivityRepo
	broadcast *fakeBroadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	levels := &fakeLevelRepo{levels: map[int]*model.LevelConstraint{
		1: {LevelID: 1, Name: "Garden Adventure", MaxPrimary: 30, MaxSecondary: 20, TotalElements: 50, Difficulty: model.DifficultyEasy},
		2: {LevelID: 2, Name: "Forest Quest", MaxPrimary: 3, MaxSecondary: 2, TotalElements: 5, Difficulty: model.DifficultyMedium},
	}}
	progress := newFakeProgressRepo()
	activity := &fakeActivityRepo{}
	broadcast := &fakeBroadcaster{}

	svc := NewGameService(levels, progress, activity, cache.NewLevelCache(client), cache.NewLeaderboardCache(client))
	svc.SetBroadcaster(broadcast)

	return &testEnv{svc: svc, progress: progress, activity: activity, broadcast: broadcast}
}

func (e *testEnv) provision(t *testing.T, userID string) {
	t.Helper()
	if err := e.progress.Create(context.Background(), model.NewPlayerProgress(userID)); err != nil {
		t.Fatalf("failed to provision profile: %v", err)
	}
}

func collect(levelID int, itemType model.ItemType, index int) model.CollectItemEvent {
	return model.CollectItemEvent{LevelID: levelID, ItemType: itemType, ItemIndex: index}
}

func TestCollectItem_AcceptThenDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	lp, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 7))
	if err != nil {
		t.Fatalf("first collection rejected: %v", err)
	}
	if !lp.Has(model.ItemPrimary, 7) {
		t.Error("accepted index missing from taken set")
	}

	_, err = env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 7))
	if !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("second collection error = %v, expected ErrDuplicateItem", err)
	}
}

func TestCollectItem_DecisionOrder(t *testing.T) {
	// Level 2 has maxPrimary = 3. The reject reason must follow the fixed
	// check order: duplicate, then limit, then range.
	tests := []struct {
		name    string
		taken   []int
		index   int
		wantErr error
	}{
		{name: "duplicate beats limit on a full level", taken: []int{0, 1, 2}, index: 1, wantErr: ErrDuplicateItem},
		{name: "limit beats range on a full level", taken: []int{0, 1, 2}, index: 9, wantErr: ErrItemLimitReached},
		{name: "range on a non-full level", taken: []int{0}, index: 3, wantErr: ErrItemIndexOutOfRange},
		{name: "negative index", taken: nil, index: -1, wantErr: ErrItemIndexOutOfRange},
		{name: "accept", taken: []int{0}, index: 2, wantErr: nil},
	}

	constraint := &model.LevelConstraint{LevelID: 2, MaxPrimary: 3, MaxSecondary: 2}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp := &model.LevelProgress{PrimaryTaken: tt.taken}
			err := validateCollection(lp, constraint, collect(2, model.ItemPrimary, tt.index))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateCollection() = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollectItem_LimitReached(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	// maxPrimary for level 2 is 3: three distinct indices succeed
	for i := 0; i < 3; i++ {
		if _, err := env.svc.CollectItem(ctx, "u1", collect(2, model.ItemPrimary, i)); err != nil {
			t.Fatalf("collection %d rejected: %v", i, err)
		}
	}

	_, err := env.svc.CollectItem(ctx, "u1", collect(2, model.ItemPrimary, 3))
	if !errors.Is(err, ErrItemLimitReached) {
		t.Errorf("fourth collection error = %v, expected ErrItemLimitReached", err)
	}
}

func TestCollectItem_IndexBounds(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	// Level 1 has maxPrimary = 30: index 29 is the last valid one.
	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 29)); err != nil {
		t.Fatalf("index 29 rejected: %v", err)
	}

	_, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 30))
	if !errors.Is(err, ErrItemIndexOutOfRange) {
		t.Errorf("index 30 error = %v, expected ErrItemIndexOutOfRange", err)
	}
}

func TestCollectItem_SecondaryIndependentOfPrimary(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 5)); err != nil {
		t.Fatalf("primary collection rejected: %v", err)
	}
	// Same index, other type: separate taken set
	lp, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemSecondary, 5))
	if err != nil {
		t.Fatalf("secondary collection rejected: %v", err)
	}
	if !lp.Has(model.ItemPrimary, 5) || !lp.Has(model.ItemSecondary, 5) {
		t.Error("expected index 5 in both taken sets")
	}

	// Secondary has its own upper bound (20 for level 1)
	_, err = env.svc.CollectItem(ctx, "u1", collect(1, model.ItemSecondary, 20))
	if !errors.Is(err, ErrItemIndexOutOfRange) {
		t.Errorf("secondary index 20 error = %v, expected ErrItemIndexOutOfRange", err)
	}
}

func TestCollectItem_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CollectItem(ctx, "u1", collect(99, model.ItemPrimary, 0)); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("unknown level error = %v, expected ErrLevelNotFound", err)
	}
	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, "banana", 0)); !errors.Is(err, ErrInvalidItemType) {
		t.Errorf("bad item type error = %v, expected ErrInvalidItemType", err)
	}
	if _, err := env.svc.CollectItem(ctx, "ghost", collect(1, model.ItemPrimary, 0)); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("missing profile error = %v, expected ErrProfileNotFound", err)
	}
}

func TestCollectItem_SideEffects(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 0)); err != nil {
		t.Fatalf("collection rejected: %v", err)
	}

	actions := env.activity.actions()
	if len(actions) != 1 || actions[0] != model.ActionItemCollected {
		t.Errorf("activity log = %v, expected one ITEM_COLLECTED", actions)
	}
	if types := env.broadcast.types(); len(types) != 1 || types[0] != "item_collected" {
		t.Errorf("broadcasts = %v, expected one item_collected", types)
	}

	// A rejected event must neither log nor broadcast
	env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 0))
	if got := len(env.activity.actions()); got != 1 {
		t.Errorf("activity entries after rejection = %d, expected 1", got)
	}
	if got := len(env.broadcast.types()); got != 1 {
		t.Errorf("broadcasts after rejection = %d, expected 1", got)
	}
}

func TestCompleteLevel_Totals(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	first, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 100, TimeSpent: 60})
	if err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if first.TotalScore != 100 {
		t.Errorf("TotalScore = %d, expected 100", first.TotalScore)
	}

	// A resend with a different score accumulates the total but overwrites
	// the level entry.
	second, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 40, TimeSpent: 30})
	if err != nil {
		t.Fatalf("second completion failed: %v", err)
	}
	if second.TotalScore != 140 {
		t.Errorf("TotalScore = %d, expected 140", second.TotalScore)
	}

	lp := second.Progress.Level(1)
	if lp == nil || !lp.Completed {
		t.Fatal("level 1 not marked completed")
	}
	if lp.Score != 40 {
		t.Errorf("level Score = %d, expected last-write 40", lp.Score)
	}
	if lp.TimeSpent != 30 {
		t.Errorf("level TimeSpent = %d, expected last-write 30", lp.TimeSpent)
	}
	if second.Progress.TotalPlayTime != 90 {
		t.Errorf("TotalPlayTime = %d, expected 90", second.Progress.TotalPlayTime)
	}
}

func TestCompleteLevel_CurrentLevelMonotonic(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	steps := []struct {
		levelID int
		want    int
	}{
		{levelID: 1, want: 2},
		{levelID: 3, want: 4},
		{levelID: 2, want: 4}, // replaying an older level never regresses the pointer
		{levelID: 5, want: 6},
	}
	for _, step := range steps {
		result, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: step.levelID, Score: 10, TimeSpent: 5})
		if err != nil {
			t.Fatalf("completion of level %d failed: %v", step.levelID, err)
		}
		if result.Progress.CurrentLevel != step.want {
			t.Errorf("after level %d: CurrentLevel = %d, expected %d", step.levelID, result.Progress.CurrentLevel, step.want)
		}
	}
}

func TestCompleteLevel_ProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CompleteLevel(context.Background(), "ghost", model.CompleteLevelEvent{LevelID: 1, Score: 10, TimeSpent: 5})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("error = %v, expected ErrProfileNotFound", err)
	}
}

func TestCompleteLevel_RejectsNegativeNumbers(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	// A single negative event must not persist a document that later fails
	// the read-side shape checks.
	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: -1000, TimeSpent: 60}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative score error = %v, expected ErrInvalidScore", err)
	}
	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 10, TimeSpent: -5}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative time error = %v, expected ErrInvalidScore", err)
	}

	doc, _ := env.progress.GetByUserID(ctx, "u1")
	if err := doc.Validate(); err != nil {
		t.Errorf("document no longer validates after rejected events: %v", err)
	}
	if doc.TotalScore != 0 {
		t.Errorf("TotalScore = %d, expected untouched 0", doc.TotalScore)
	}

	// The player is not locked out: a well-formed event still goes through.
	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 100, TimeSpent: 60}); err != nil {
		t.Fatalf("valid completion after rejections failed: %v", err)
	}
}

func TestSyncState_RejectsMalformedPayload(t *testing.T) {
	negative := -50
	tests := []struct {
		name    string
		payload model.SyncPayload
	}{
		{name: "null level entry", payload: model.SyncPayload{LevelsData: map[string]*model.LevelProgress{"level_1": nil}}},
		{name: "negative totalScore", payload: model.SyncPayload{TotalScore: &negative}},
		{name: "negative totalPlayTime", payload: model.SyncPayload{TotalPlayTime: &negative}},
		{name: "negative fragment score", payload: model.SyncPayload{LevelsData: map[string]*model.LevelProgress{"level_1": {Score: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.provision(t, "u1")
			ctx := context.Background()

			if _, err := env.svc.SyncState(ctx, "u1", tt.payload); !errors.Is(err, ErrInvalidSyncPayload) {
				t.Errorf("SyncState() error = %v, expected ErrInvalidSyncPayload", err)
			}

			doc, _ := env.progress.GetByUserID(ctx, "u1")
			if err := doc.Validate(); err != nil {
				t.Errorf("document no longer validates after rejected sync: %v", err)
			}
			if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 0)); err != nil {
				t.Errorf("collection after rejected sync failed: %v", err)
			}
		})
	}
}

func TestSyncState_PartialOverwrite(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 3)); err != nil {
		t.Fatalf("setup collection failed: %v", err)
	}
	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 100, TimeSpent: 60}); err != nil {
		t.Fatalf("setup completion failed: %v", err)
	}

	playTime := 500
	progress, err := env.svc.SyncState(ctx, "u1", model.SyncPayload{TotalPlayTime: &playTime})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if progress.TotalPlayTime != 500 {
		t.Errorf("TotalPlayTime = %d, expected 500", progress.TotalPlayTime)
	}
	if progress.TotalScore != 100 {
		t.Errorf("TotalScore = %d, expected untouched 100", progress.TotalScore)
	}
	if lp := progress.Level(1); lp == nil || !lp.Has(model.ItemPrimary, 3) {
		t.Error("levelsData regressed by a payload that did not carry it")
	}
	if progress.PendingSync {
		t.Error("PendingSync still set after reconciliation")
	}
	if progress.LastSyncAt.IsZero() {
		t.Error("LastSyncAt not stamped")
	}
}

func TestSyncState_ZeroIsAnOverwrite(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 100, TimeSpent: 60}); err != nil {
		t.Fatalf("setup completion failed: %v", err)
	}

	zero := 0
	progress, err := env.svc.SyncState(ctx, "u1", model.SyncPayload{TotalScore: &zero})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if progress.TotalScore != 0 {
		t.Errorf("TotalScore = %d, expected explicit zero overwrite", progress.TotalScore)
	}
}

func TestSyncState_LevelsDataWholesale(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	if _, err := env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 3)); err != nil {
		t.Fatalf("setup collection failed: %v", err)
	}

	snapshot := map[string]*model.LevelProgress{
		model.LevelKey(2): {PrimaryTaken: []int{0, 1}, Completed: true, Score: 50, TimeSpent: 120},
	}
	progress, err := env.svc.SyncState(ctx, "u1", model.SyncPayload{LevelsData: snapshot})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// Wholesale replacement: level 1 progress is gone, the snapshot wins.
	if progress.Level(1) != nil {
		t.Error("expected level 1 entry replaced by snapshot")
	}
	if lp := progress.Level(2); lp == nil || !lp.Completed || lp.Score != 50 {
		t.Errorf("level 2 entry = %+v, expected snapshot values", progress.Level(2))
	}
}

func TestConcurrentCollect_SameIndex(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.svc.CollectItem(ctx, "u1", collect(1, model.ItemPrimary, 12))
		}(i)
	}
	wg.Wait()

	accepted, duplicates := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, ErrDuplicateItem):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 || duplicates != 1 {
		t.Errorf("accepted = %d, duplicates = %d; expected exactly one of each", accepted, duplicates)
	}

	doc, _ := env.progress.GetByUserID(ctx, "u1")
	if got := len(doc.Level(1).PrimaryTaken); got != 1 {
		t.Errorf("persisted taken set has %d entries, expected 1", got)
	}
}

func TestLeaderboard_TracksTotalScore(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")
	env.provision(t, "u2")
	ctx := context.Background()

	if _, err := env.svc.CompleteLevel(ctx, "u1", model.CompleteLevelEvent{LevelID: 1, Score: 100, TimeSpent: 10}); err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if _, err := env.svc.CompleteLevel(ctx, "u2", model.CompleteLevelEvent{LevelID: 1, Score: 250, TimeSpent: 10}); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	entries, err := env.svc.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("leaderboard has %d entries, expected 2", len(entries))
	}
	if entries[0].UserID != "u2" || entries[0].Score != 250 {
		t.Errorf("top entry = %+v, expected u2 with 250", entries[0])
	}

	rank, err := env.svc.Rank(ctx, "u1")
	if err != nil {
		t.Fatalf("rank lookup failed: %v", err)
	}
	if rank != 2 {
		t.Errorf("Rank(u1) = %d, expected 2", rank)
	}
	rank, err = env.svc.Rank(ctx, "ghost")
	if err != nil {
		t.Fatalf("rank lookup failed: %v", err)
	}
	if rank != -1 {
		t.Errorf("Rank(ghost) = %d, expected -1 for an unranked player", rank)
	}
}

// failingProgressRepo rejects writes, simulating a store outage.
type failingProgressRepo struct {
	*fakeProgressRepo
}

func (r *failingProgressRepo) Replace(ctx context.Context, p *model.PlayerProgress) error {
	return errors.New("connection refused")
}

func TestStoreFailure_TaggedRetryable(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t, "u1")

	failing := &failingProgressRepo{fakeProgressRepo: env.progress}
	svc := NewGameService(
		&fakeLevelRepo{levels: map[int]*model.LevelConstraint{1: {LevelID: 1, MaxPrimary: 30, MaxSecondary: 20}}},
		failing, &fakeActivityRepo{},
		env.svc.levelCache, env.svc.leaderboard,
	)

	_, err := svc.CollectItem(context.Background(), "u1", collect(1, model.ItemPrimary, 0))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("error = %v, expected it to wrap ErrStoreUnavailable", err)
	}
	if reason, ok := RejectionReason(err); ok {
		t.Errorf("store failure mapped to rejection reason %q, expected none", reason)
	}
}
