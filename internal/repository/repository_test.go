package repository

import (
	"context"
	"testing"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
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
	// One in-memory database per connection otherwise.
	sqlDB.SetMaxOpenConns(1)

	if err := migration.NewEngine(db).Up(context.Background()); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		NameSafe: name,
		Password: "hashed",
		Email:    name + "@example.com",
	}
	if err := NewUserRepository(db).Create(context.Background(), user, &model.UserSettings{
		ScoreboardRankingType: model.RankingScoreV1,
	}); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestBeatmap(t *testing.T, db *gorm.DB, bid int32, md5 string, status model.RankStatus) *model.Beatmap {
	t.Helper()

	beatmap := &model.Beatmap{
		Bid:          bid,
		Sid:          bid,
		Md5:          md5,
		Title:        "test map",
		FileName:     "test.osu",
		Artist:       "artist",
		DiffName:     "Insane",
		OriginServer: "local",
		MapperName:   "mapper",
		MapperID:     "1",
		RankStatus:   status,
		GameMode:     model.GameModeStandard,
	}
	if err := NewBeatmapRepository(db).Upsert(context.Background(), beatmap); err != nil {
		t.Fatalf("create beatmap %d: %v", bid, err)
	}
	return beatmap
}

func createClassicScore(t *testing.T, db *gorm.DB, userID int32, mapHash, cksm string, score int32) *model.ScoreRecord {
	t.Helper()

	record := &model.ScoreRecord{
		Score: model.Score{
			MapHash:   mapHash,
			UserID:    userID,
			Cksm:      cksm,
			Kind:      model.ScoreKindClassic,
			Playtime:  120,
			Completed: true,
		},
		Classic: &model.ScoreClassic{
			Mode:          model.GameModeStandard,
			ScoreVersion:  model.ScoreV1,
			Score:         score,
			Accuracy:      0.97,
			Combo:         400,
			N300:          200,
			N100:          10,
			Grade:         model.GradeS,
			ClientVersion: "20260101",
		},
	}
	if err := NewScoreRepository(db).CreateRecord(context.Background(), record); err != nil {
		t.Fatalf("create score %s: %v", cksm, err)
	}
	return record
}
