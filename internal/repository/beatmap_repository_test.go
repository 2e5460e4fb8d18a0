package repository

import (
	"context"
	"math"
	"testing"

	"anoa.com/rhythmrank/internal/model"
)

func TestBeatmapUpsertRefreshesMetadata(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBeatmapRepository(db)
	ctx := context.Background()

	beatmap := createTestBeatmap(t, db, 100, "11111111111111111111111111111111", model.RankStatusPending)

	beatmap.Stars = 6.66
	beatmap.RankStatus = model.RankStatusRanked
	if err := repo.Upsert(ctx, beatmap); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	loaded, err := repo.FindByBid(ctx, 100)
	if err != nil {
		t.Fatalf("FindByBid: %v", err)
	}
	if loaded.Stars != 6.66 || loaded.RankStatus != model.RankStatusRanked {
		t.Errorf("metadata not refreshed: %+v", loaded)
	}
}

func TestBeatmapUpsertSkipsImmutableRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBeatmapRepository(db)
	ctx := context.Background()

	beatmap := createTestBeatmap(t, db, 100, "11111111111111111111111111111111", model.RankStatusRanked)
	if err := db.Model(beatmap).Update("immutable", true).Error; err != nil {
		t.Fatalf("freeze: %v", err)
	}

	beatmap.Title = "edited after ranking"
	if err := repo.Upsert(ctx, beatmap); err != nil {
		t.Fatalf("upsert against frozen row: %v", err)
	}

	loaded, err := repo.FindByBid(ctx, 100)
	if err != nil {
		t.Fatalf("FindByBid: %v", err)
	}
	if loaded.Title != "test map" {
		t.Errorf("frozen row was rewritten: %q", loaded.Title)
	}
}

func TestBeatmapRatingAverage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBeatmapRepository(db)
	ctx := context.Background()

	md5 := "11111111111111111111111111111111"
	createTestBeatmap(t, db, 100, md5, model.RankStatusRanked)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for _, r := range []struct {
		userID int32
		rating int8
	}{{alice.ID, 10}, {bob.ID, 5}} {
		if err := repo.Rate(ctx, &model.BeatmapRating{UserID: r.userID, MapMd5: md5, Rating: r.rating}); err != nil {
			t.Fatalf("rate: %v", err)
		}
	}

	avg, err := repo.AverageRating(ctx, md5)
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if math.Abs(avg-7.5) > 1e-9 {
		t.Errorf("got average %v, want 7.5", avg)
	}

	// Re-rating replaces, not appends.
	if err := repo.Rate(ctx, &model.BeatmapRating{UserID: alice.ID, MapMd5: md5, Rating: 1}); err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	avg, err = repo.AverageRating(ctx, md5)
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if math.Abs(avg-3) > 1e-9 {
		t.Errorf("got average %v, want 3", avg)
	}
}

func TestAverageRatingEmptyMap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBeatmapRepository(db)

	avg, err := repo.AverageRating(context.Background(), "99999999999999999999999999999999")
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if avg != 0 {
		t.Errorf("got %v, want 0 for unrated map", avg)
	}
}

func TestBeatmapDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBeatmapRepository(db)
	ctx := context.Background()

	md5 := "11111111111111111111111111111111"
	createTestBeatmap(t, db, 100, md5, model.RankStatusRanked)
	user := createTestUser(t, db, "player")
	record := createClassicScore(t, db, user.ID, md5, "a", 100)

	if err := repo.Rate(ctx, &model.BeatmapRating{UserID: user.ID, MapMd5: md5, Rating: 8}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if err := NewLeaderboardRepository(db).Upsert(ctx, &model.Leaderboard{
		BeatmapID:   100,
		Mode:        model.GameModeStandard,
		RankingType: model.RankingScoreV1,
		UserID:      user.ID,
		ScoreID:     record.Score.ID,
	}); err != nil {
		t.Fatalf("leaderboard upsert: %v", err)
	}

	if err := repo.Delete(ctx, 100); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var ratings, slots int64
	if err := db.Model(&model.BeatmapRating{}).Where("map_md5 = ?", md5).Count(&ratings).Error; err != nil {
		t.Fatalf("count ratings: %v", err)
	}
	if err := db.Model(&model.Leaderboard{}).Where("beatmap_id = ?", 100).Count(&slots).Error; err != nil {
		t.Fatalf("count slots: %v", err)
	}
	if ratings != 0 || slots != 0 {
		t.Errorf("dependents survived delete: %d ratings, %d slots", ratings, slots)
	}
}
