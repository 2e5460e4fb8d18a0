package service

import (
	"context"
	"testing"

	"anoa.com/rhythmrank/internal/cache"
	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"gorm.io/gorm"
)

// newCachedScoreStack wires the submit pipeline against a real redis-protocol
// server so the cache read path is exercised, not just the nil fallback.
func newCachedScoreStack(t *testing.T, db *gorm.DB) (*miniredis.Miniredis, *cache.LeaderboardCache, ScoreService, LeaderboardService) {
	t.Helper()

	mr := miniredis.RunT(t)
	lbCache, err := cache.NewLeaderboardCache("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect cache: %v", err)
	}
	t.Cleanup(func() { lbCache.Close() })

	scoreRepo := repository.NewScoreRepository(db)
	beatmapRepo := repository.NewBeatmapRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	statsSvc := NewStatsService(statsRepo, scoreRepo)
	leaderboardSvc := NewLeaderboardService(leaderboardRepo, scoreRepo, perfRepo, lbCache)
	scoreSvc := NewScoreService(scoreRepo, beatmapRepo, statsSvc, leaderboardSvc)
	return mr, lbCache, scoreSvc, leaderboardSvc
}

func TestScoreboardServesWarmCacheAndRefillsColdKeys(t *testing.T) {
	db := setupTestDB(t)
	mr, lbCache, scoreSvc, lbSvc := newCachedScoreStack(t, db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "a-1", 12345)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	board, err := lbSvc.Scoreboard(ctx, 100)
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(board) != 1 || board[0].UserID != user.ID || board[0].Value != 12345 {
		t.Fatalf("unexpected scoreboard: %+v", board)
	}

	// Cold cache: the lookup must fall through to the database and warm the
	// key back up.
	mr.FlushAll()
	board, err = lbSvc.Scoreboard(ctx, 100)
	if err != nil {
		t.Fatalf("Scoreboard after flush: %v", err)
	}
	if len(board) != 1 || board[0].Value != 12345 {
		t.Fatalf("cold-key fallback broken: %+v", board)
	}

	userID, value, ok, err := lbCache.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if !ok || userID != user.ID || value != 12345 {
		t.Errorf("key not refilled: (user=%d, value=%v, ok=%t)", userID, value, ok)
	}
}

func TestSubmitCandidateWritesThroughToCache(t *testing.T) {
	db := setupTestDB(t)
	_, lbCache, scoreSvc, _ := newCachedScoreStack(t, db)
	ctx := context.Background()

	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	if _, err := scoreSvc.Submit(ctx, classicSubmission(alice.ID, testMd5, "a-1", 100)); err != nil {
		t.Fatalf("alice Submit: %v", err)
	}
	if _, err := scoreSvc.Submit(ctx, classicSubmission(bob.ID, testMd5, "b-1", 200)); err != nil {
		t.Fatalf("bob Submit: %v", err)
	}

	userID, value, ok, err := lbCache.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if !ok || userID != bob.ID || value != 200 {
		t.Errorf("cache not tracking slot: (user=%d, value=%v, ok=%t)", userID, value, ok)
	}
}

func TestRefreshCachePurgesOrphanedKeys(t *testing.T) {
	db := setupTestDB(t)
	_, lbCache, scoreSvc, lbSvc := newCachedScoreStack(t, db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)
	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "a-1", 500)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// A key whose database row no longer exists, as after a cascade delete.
	if err := lbCache.SetHolder(ctx, 999, model.GameModeStandard, model.RankingScoreV1, 77, 9000); err != nil {
		t.Fatalf("plant orphan: %v", err)
	}

	if err := lbSvc.RefreshCache(ctx); err != nil {
		t.Fatalf("RefreshCache: %v", err)
	}

	if _, _, ok, _ := lbCache.Holder(ctx, 999, model.GameModeStandard, model.RankingScoreV1); ok {
		t.Error("orphaned key survived the refresh")
	}
	userID, value, ok, err := lbCache.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("Holder: %v", err)
	}
	if !ok || userID != user.ID || value != 500 {
		t.Errorf("live slot not repopulated: (user=%d, value=%v, ok=%t)", userID, value, ok)
	}
}

func TestUserDeleteInvalidatesCachedSlots(t *testing.T) {
	db := setupTestDB(t)
	_, lbCache, scoreSvc, lbSvc := newCachedScoreStack(t, db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)
	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "a-1", 500)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	userSvc := NewUserService(repository.NewUserRepository(db), repository.NewSocialRepository(db), lbSvc)
	if err := userSvc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, _, ok, _ := lbCache.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1); ok {
		t.Error("deleted user's slot still cached")
	}
}

func TestBeatmapDeleteInvalidatesCachedSlots(t *testing.T) {
	db := setupTestDB(t)
	_, lbCache, scoreSvc, lbSvc := newCachedScoreStack(t, db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)
	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "a-1", 500)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	beatmapSvc := NewBeatmapService(repository.NewBeatmapRepository(db), lbSvc)
	if err := beatmapSvc.Delete(ctx, 100); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, _, ok, _ := lbCache.Holder(ctx, 100, model.GameModeStandard, model.RankingScoreV1); ok {
		t.Error("deleted beatmap's slot still cached")
	}
}
