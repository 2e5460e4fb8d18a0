package service

import (
	"context"
	"testing"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migration.NewEngine(db).Up(context.Background()); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	return db
}

// newScoreStack wires the submit pipeline the way cmd/server does, minus the
// redis cache.
func newScoreStack(db *gorm.DB) (ScoreService, LeaderboardService, PerformanceService, StatsService) {
	scoreRepo := repository.NewScoreRepository(db)
	beatmapRepo := repository.NewBeatmapRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	statsSvc := NewStatsService(statsRepo, scoreRepo)
	leaderboardSvc := NewLeaderboardService(leaderboardRepo, scoreRepo, perfRepo, nil)
	perfSvc := NewPerformanceService(perfRepo, scoreRepo, beatmapRepo, leaderboardSvc)
	scoreSvc := NewScoreService(scoreRepo, beatmapRepo, statsSvc, leaderboardSvc)
	return scoreSvc, leaderboardSvc, perfSvc, statsSvc
}

func registerTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	res, err := NewAuthService(repository.NewUserRepository(db), "test-secret").Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "correct horse battery staple",
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return res.User
}

func insertTestBeatmap(t *testing.T, db *gorm.DB, bid int32, md5 string, status model.RankStatus) *model.Beatmap {
	t.Helper()

	beatmap, err := NewBeatmapService(repository.NewBeatmapRepository(db), nil).Upsert(context.Background(), UpsertBeatmapInput{
		Bid:          bid,
		Sid:          bid,
		Md5:          md5,
		Title:        "test map",
		FileName:     "test.osu",
		Artist:       "artist",
		DiffName:     "Extra",
		OriginServer: "local",
		MapperName:   "mapper",
		MapperID:     "1",
		RankStatus:   status,
		GameMode:     model.GameModeStandard,
		Stars:        5.5,
		Bpm:          180,
	})
	if err != nil {
		t.Fatalf("upsert beatmap %d: %v", bid, err)
	}
	return beatmap
}

func classicSubmission(userID int32, md5, cksm string, score int32) SubmitScoreInput {
	return SubmitScoreInput{
		MapHash:   md5,
		UserID:    userID,
		Cksm:      cksm,
		Playtime:  120,
		Completed: true,
		Classic: &ClassicScoreInput{
			Mode:          model.GameModeStandard,
			ScoreVersion:  model.ScoreV1,
			Score:         score,
			Accuracy:      0.95,
			Combo:         300,
			N300:          150,
			N100:          10,
			Grade:         model.GradeS,
			ClientVersion: "20260101",
		},
	}
}
