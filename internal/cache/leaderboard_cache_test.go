package cache

import (
	"context"
	"testing"
)

func TestLeaderboardCache_TopOrdering(t *testing.T) {
	c := NewLeaderboardCache(newTestClient(t))
	ctx := context.Background()

	scores := map[string]int{"alice": 300, "bob": 150, "carol": 450}
	for user, score := range scores {
		if err := c.UpdateScore(ctx, user, score); err != nil {
			t.Fatalf("UpdateScore(%s) error = %v", user, err)
		}
	}

	top, err := c.GetTop(ctx, 10)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("GetTop() returned %d entries, expected 3", len(top))
	}
	want := []struct {
		user  string
		score int
	}{{"carol", 450}, {"alice", 300}, {"bob", 150}}
	for i, w := range want {
		if top[i].UserID != w.user || top[i].Score != w.score || top[i].Rank != i+1 {
			t.Errorf("entry %d = %+v, expected %s/%d at rank %d", i, top[i], w.user, w.score, i+1)
		}
	}
}

func TestLeaderboardCache_UpdateReplacesScore(t *testing.T) {
	c := NewLeaderboardCache(newTestClient(t))
	ctx := context.Background()

	if err := c.UpdateScore(ctx, "alice", 100); err != nil {
		t.Fatalf("UpdateScore() error = %v", err)
	}
	if err := c.UpdateScore(ctx, "alice", 250); err != nil {
		t.Fatalf("UpdateScore() error = %v", err)
	}

	top, err := c.GetTop(ctx, 1)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(top) != 1 || top[0].Score != 250 {
		t.Errorf("GetTop() = %+v, expected a single alice/250 entry", top)
	}
}

func TestLeaderboardCache_LimitTruncates(t *testing.T) {
	c := NewLeaderboardCache(newTestClient(t))
	ctx := context.Background()

	for user, score := range map[string]int{"a": 1, "b": 2, "c": 3, "d": 4} {
		if err := c.UpdateScore(ctx, user, score); err != nil {
			t.Fatalf("UpdateScore() error = %v", err)
		}
	}

	top, err := c.GetTop(ctx, 2)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(top) != 2 || top[0].UserID != "d" || top[1].UserID != "c" {
		t.Errorf("GetTop(2) = %+v, expected d then c", top)
	}
}

func TestLeaderboardCache_Rank(t *testing.T) {
	c := NewLeaderboardCache(newTestClient(t))
	ctx := context.Background()

	for user, score := range map[string]int{"alice": 300, "bob": 150} {
		if err := c.UpdateScore(ctx, user, score); err != nil {
			t.Fatalf("UpdateScore() error = %v", err)
		}
	}

	rank, err := c.GetRank(ctx, "bob")
	if err != nil {
		t.Fatalf("GetRank() error = %v", err)
	}
	if rank != 2 {
		t.Errorf("GetRank(bob) = %d, expected 2", rank)
	}

	rank, err = c.GetRank(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetRank() error = %v", err)
	}
	if rank != -1 {
		t.Errorf("GetRank(nobody) = %d, expected -1", rank)
	}
}
