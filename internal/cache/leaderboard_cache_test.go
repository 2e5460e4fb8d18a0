package cache

import (
	"context"
	"testing"

	"anoa.com/rhythmrank/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) (*LeaderboardCache, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewLeaderboardCache("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	inspect := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { inspect.Close() })
	return c, inspect
}

func TestSetHolderReplacesMember(t *testing.T) {
	c, inspect := setupTestCache(t)
	ctx := context.Background()

	if err := c.SetHolder(ctx, 100, model.GameModeStandard, model.RankingScoreV1, 1, 500); err != nil {
		t.Fatalf("SetHolder: %v", err)
	}
	// A lower-valued replacement must still win: the slot tracks the database
	// row, not the historical maximum.
	if err := c.SetHolder(ctx, 100, model.GameModeStandard, model.RankingScoreV1, 2, 300); err != nil {
		t.Fatalf("SetHolder replace: %v", err)
	}

	userID, value, ok, err := c.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if !ok || userID != 2 || value != 300 {
		t.Errorf("got (user=%d, value=%v, ok=%t), want (2, 300, true)", userID, value, ok)
	}

	card, err := inspect.ZCard(ctx, "leaderboard:100:Standard:score_v1").Result()
	if err != nil {
		t.Fatalf("ZCard: %v", err)
	}
	if card != 1 {
		t.Errorf("slot holds %d members, want exactly 1", card)
	}
}

func TestHolderColdKey(t *testing.T) {
	c, _ := setupTestCache(t)

	_, _, ok, err := c.Holder(context.Background(), 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if ok {
		t.Error("cold key reported warm")
	}
}

func TestInvalidateDropsAllSlotsOfBeatmap(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	if err := c.SetHolder(ctx, 100, model.GameModeStandard, model.RankingScoreV1, 1, 500); err != nil {
		t.Fatalf("SetHolder: %v", err)
	}
	if err := c.SetHolder(ctx, 100, model.GameModeMania, model.RankingPpV2, 1, 42); err != nil {
		t.Fatalf("SetHolder: %v", err)
	}
	if err := c.SetHolder(ctx, 200, model.GameModeStandard, model.RankingScoreV1, 1, 500); err != nil {
		t.Fatalf("SetHolder other map: %v", err)
	}

	if err := c.Invalidate(ctx, 100); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	for _, probe := range []struct {
		mode model.GameMode
		rt   model.RankingType
	}{
		{model.GameModeStandard, model.RankingScoreV1},
		{model.GameModeMania, model.RankingPpV2},
	} {
		if _, _, ok, _ := c.Holder(ctx, 100, probe.mode, probe.rt); ok {
			t.Errorf("slot (%s, %s) survived invalidation", probe.mode, probe.rt)
		}
	}
	if _, _, ok, _ := c.Holder(ctx, 200, model.GameModeStandard, model.RankingScoreV1); !ok {
		t.Error("invalidation leaked onto another beatmap")
	}
}

func TestClearDropsEveryKey(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	for _, bid := range []int32{100, 200, 300} {
		if err := c.SetHolder(ctx, bid, model.GameModeStandard, model.RankingScoreV1, 1, 500); err != nil {
			t.Fatalf("SetHolder %d: %v", bid, err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	for _, bid := range []int32{100, 200, 300} {
		if _, _, ok, _ := c.Holder(ctx, bid, model.GameModeStandard, model.RankingScoreV1); ok {
			t.Errorf("beatmap %d slot survived clear", bid)
		}
	}
}
