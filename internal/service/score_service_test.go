package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
)

const testMd5 = "11111111111111111111111111111111"

func TestSubmitClassicUpdatesStatsAndLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, statsSvc := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	record, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "play-1", 700000))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if record.Score.ID == 0 || record.Classic == nil {
		t.Fatalf("incomplete record: %+v", record)
	}

	stats, err := statsSvc.Get(ctx, user.ID, model.GameModeStandard)
	if err != nil {
		t.Fatalf("stats Get: %v", err)
	}
	if stats.Playcount != 1 || stats.TotalScore != 700000 || stats.RankedScore != 700000 {
		t.Errorf("stats not folded: %+v", stats)
	}

	entry, err := repository.NewLeaderboardRepository(db).Get(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("leaderboard Get: %v", err)
	}
	if entry.UserID != user.ID || entry.ScoreID != record.Score.ID {
		t.Errorf("leaderboard slot not installed: %+v", entry)
	}
}

func TestSubmitBetterScoreTakesSlot(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, _ := newScoreStack(db)
	ctx := context.Background()

	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	first, err := scoreSvc.Submit(ctx, classicSubmission(alice.ID, testMd5, "alice-1", 500000))
	if err != nil {
		t.Fatalf("alice Submit: %v", err)
	}

	// A lower score must leave the incumbent in place.
	if _, err := scoreSvc.Submit(ctx, classicSubmission(bob.ID, testMd5, "bob-low", 400000)); err != nil {
		t.Fatalf("bob low Submit: %v", err)
	}
	lbRepo := repository.NewLeaderboardRepository(db)
	entry, err := lbRepo.Get(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("leaderboard Get: %v", err)
	}
	if entry.UserID != alice.ID || entry.ScoreID != first.Score.ID {
		t.Fatalf("lower score took the slot: %+v", entry)
	}

	better, err := scoreSvc.Submit(ctx, classicSubmission(bob.ID, testMd5, "bob-high", 600000))
	if err != nil {
		t.Fatalf("bob high Submit: %v", err)
	}
	entry, err = lbRepo.Get(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err != nil {
		t.Fatalf("leaderboard Get: %v", err)
	}
	if entry.UserID != bob.ID || entry.ScoreID != better.Score.ID {
		t.Errorf("higher score did not take the slot: %+v", entry)
	}
}

func TestSubmitDuplicateChecksum(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, _ := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "same", 100)); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "same", 200))
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("got %v, want apperror.ErrDuplicate", err)
	}
}

func TestSubmitRequiresExactlyOnePayload(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, _ := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")

	input := classicSubmission(user.ID, testMd5, "both", 100)
	input.Generic = &GenericScoreInput{Mode: "tau", Score: 1, Payload: json.RawMessage(`{}`)}
	if _, err := scoreSvc.Submit(ctx, input); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("both payloads: got %v, want apperror.ErrInvalidInput", err)
	}

	input = SubmitScoreInput{MapHash: testMd5, UserID: user.ID, Cksm: "neither"}
	if _, err := scoreSvc.Submit(ctx, input); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("no payload: got %v, want apperror.ErrInvalidInput", err)
	}
}

func TestSubmitFailedPlayCountsButStaysOffLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, statsSvc := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusRanked)

	input := classicSubmission(user.ID, testMd5, "fail-1", 50000)
	input.Classic.Grade = model.GradeF
	if _, err := scoreSvc.Submit(ctx, input); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stats, err := statsSvc.Get(ctx, user.ID, model.GameModeStandard)
	if err != nil {
		t.Fatalf("stats Get: %v", err)
	}
	if stats.Playcount != 1 || stats.CountFailed != 1 {
		t.Errorf("failed play not counted: %+v", stats)
	}
	if stats.RankedScore != 0 {
		t.Errorf("failed play added ranked score: %d", stats.RankedScore)
	}

	_, err = repository.NewLeaderboardRepository(db).Get(ctx, 100, model.GameModeStandard, model.RankingScoreV1)
	if err == nil {
		t.Error("failed play installed a leaderboard slot")
	}
}

func TestSubmitOnUnrankedMapSkipsRankedScore(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, statsSvc := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	insertTestBeatmap(t, db, 100, testMd5, model.RankStatusWip)

	if _, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "wip-1", 300000)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stats, err := statsSvc.Get(ctx, user.ID, model.GameModeStandard)
	if err != nil {
		t.Fatalf("stats Get: %v", err)
	}
	if stats.TotalScore != 300000 {
		t.Errorf("total score missing: %+v", stats)
	}
	if stats.RankedScore != 0 {
		t.Errorf("unranked map contributed ranked score: %d", stats.RankedScore)
	}
}

func TestSubmitOnUnknownMapStillPersists(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, _ := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")

	record, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "unknown-map", 100))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if record.Score.ID == 0 {
		t.Fatal("score not persisted")
	}
}

func TestSubmitGenericScore(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, statsSvc := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")

	record, err := scoreSvc.Submit(ctx, SubmitScoreInput{
		MapHash:   testMd5,
		UserID:    user.ID,
		Cksm:      "generic-1",
		Completed: true,
		Generic: &GenericScoreInput{
			Mode:    "tau",
			Score:   424242,
			Payload: json.RawMessage(`{"beats":128}`),
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if record.Generic == nil || record.Generic.Mode != "tau" {
		t.Fatalf("generic extension missing: %+v", record)
	}

	// Generic scores have no typed mode, so no classic counters move.
	if _, err := statsSvc.Get(ctx, user.ID, model.GameModeStandard); err == nil {
		t.Error("generic score created classic stats")
	}
}

func TestVerify(t *testing.T) {
	db := setupTestDB(t)
	scoreSvc, _, _, _ := newScoreStack(db)
	ctx := context.Background()

	user := registerTestUser(t, db, "player")
	record, err := scoreSvc.Submit(ctx, classicSubmission(user.ID, testMd5, "v-1", 100))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := scoreSvc.Verify(ctx, record.Score.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	loaded, err := scoreSvc.Get(ctx, record.Score.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Score.VerifiedAt == nil {
		t.Error("score not marked verified")
	}

	if err := scoreSvc.Verify(ctx, 999999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing score: got %v, want apperror.ErrNotFound", err)
	}
}
