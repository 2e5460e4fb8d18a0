package repository

import (
	"context"
	"errors"
	"testing"

	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "peppy")
	if user.ID == 0 {
		t.Fatal("expected assigned user id")
	}

	found, err := repo.FindBySafeName(ctx, "peppy")
	if err != nil {
		t.Fatalf("FindBySafeName: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("got user %d, want %d", found.ID, user.ID)
	}

	var settings model.UserSettings
	if err := db.First(&settings, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("settings row missing: %v", err)
	}
	if settings.ScoreboardRankingType != model.RankingScoreV1 {
		t.Errorf("got default ranking type %q", settings.ScoreboardRankingType)
	}
}

func TestUserDuplicateNameRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "peppy")

	err := repo.Create(ctx, &model.User{
		Name:     "peppy",
		NameSafe: "peppy",
		Password: "hashed",
		Email:    "other@example.com",
	}, nil)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("got %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestUserPrivileges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin")
	user := createTestUser(t, db, "player")

	privilege := &model.Privilege{Name: "moderator", Priority: 10}
	if err := db.Create(privilege).Error; err != nil {
		t.Fatalf("create privilege: %v", err)
	}

	grant := &model.UserPrivilege{UserID: user.ID, PrivilegeID: privilege.ID, GrantorID: admin.ID}
	if err := repo.GrantPrivilege(ctx, grant); err != nil {
		t.Fatalf("GrantPrivilege: %v", err)
	}

	// Same privilege twice hits the composite key.
	err := repo.GrantPrivilege(ctx, &model.UserPrivilege{UserID: user.ID, PrivilegeID: privilege.ID, GrantorID: admin.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("got %v, want gorm.ErrDuplicatedKey", err)
	}

	privileges, err := repo.Privileges(ctx, user.ID)
	if err != nil {
		t.Fatalf("Privileges: %v", err)
	}
	if len(privileges) != 1 || privileges[0].Name != "moderator" {
		t.Fatalf("got privileges %v", privileges)
	}

	if err := repo.RevokePrivilege(ctx, user.ID, privilege.ID); err != nil {
		t.Fatalf("RevokePrivilege: %v", err)
	}
	privileges, err = repo.Privileges(ctx, user.ID)
	if err != nil {
		t.Fatalf("Privileges after revoke: %v", err)
	}
	if len(privileges) != 0 {
		t.Fatalf("privilege not revoked: %v", privileges)
	}
}

func TestRecordHardwareBumpsUseCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player")
	rec := &model.ClientHardwareRecord{
		UserID:       user.ID,
		PathHash:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Adapters:     "adapter1",
		AdaptersHash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		UninstallID:  "cccccccccccccccccccccccccccccccc",
		DiskID:       "dddddddddddddddddddddddddddddddd",
	}
	if err := repo.RecordHardware(ctx, rec); err != nil {
		t.Fatalf("first RecordHardware: %v", err)
	}
	if err := repo.RecordHardware(ctx, &model.ClientHardwareRecord{
		UserID:       user.ID,
		PathHash:     rec.PathHash,
		Adapters:     rec.Adapters,
		AdaptersHash: rec.AdaptersHash,
		UninstallID:  rec.UninstallID,
		DiskID:       rec.DiskID,
	}); err != nil {
		t.Fatalf("second RecordHardware: %v", err)
	}

	var stored model.ClientHardwareRecord
	if err := db.First(&stored, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if stored.UsedTimes != 2 {
		t.Errorf("got used_times %d, want 2", stored.UsedTimes)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player")
	createTestBeatmap(t, db, 100, "11111111111111111111111111111111", model.RankStatusRanked)
	record := createClassicScore(t, db, user.ID, "11111111111111111111111111111111", "cksm-1", 700000)

	if err := NewLeaderboardRepository(db).Upsert(ctx, &model.Leaderboard{
		BeatmapID:   100,
		Mode:        model.GameModeStandard,
		RankingType: model.RankingScoreV1,
		UserID:      user.ID,
		ScoreID:     record.Score.ID,
	}); err != nil {
		t.Fatalf("leaderboard upsert: %v", err)
	}
	if err := NewStatsRepository(db).Upsert(ctx, &model.UserStats{
		UserID: user.ID, Mode: model.GameModeStandard, Playcount: 1,
	}); err != nil {
		t.Fatalf("stats upsert: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, probe := range []struct {
		name  string
		model any
		where string
	}{
		{"user", &model.User{}, "id = ?"},
		{"settings", &model.UserSettings{}, "user_id = ?"},
		{"scores", &model.Score{}, "user_id = ?"},
		{"scores_classic", &model.ScoreClassic{}, "id = ?"},
		{"leaderboard", &model.Leaderboard{}, "user_id = ?"},
		{"user_stats", &model.UserStats{}, "user_id = ?"},
	} {
		arg := any(user.ID)
		if probe.name == "scores_classic" {
			arg = record.Score.ID
		}
		var count int64
		if err := db.Model(probe.model).Where(probe.where, arg).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", probe.name, err)
		}
		if count != 0 {
			t.Errorf("%s rows survived delete: %d", probe.name, count)
		}
	}
}

func TestDanglingUserIDAllowedWithoutForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	// sqlite runs without enforced foreign keys, so a score pointing at a
	// user that was never created inserts fine. The postgres schema would
	// reject it.
	record := &model.ScoreRecord{
		Score: model.Score{
			MapHash: "22222222222222222222222222222222",
			UserID:  424242,
			Cksm:    "dangling",
			Kind:    model.ScoreKindClassic,
		},
		Classic: &model.ScoreClassic{
			Mode:          model.GameModeStandard,
			ScoreVersion:  model.ScoreV1,
			Grade:         model.GradeB,
			ClientVersion: "20260101",
		},
	}
	if err := NewScoreRepository(db).CreateRecord(context.Background(), record); err != nil {
		t.Fatalf("expected dangling insert to pass on sqlite, got %v", err)
	}
}
