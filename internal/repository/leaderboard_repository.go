package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	// Upsert installs the new holder of a slot. The conflict target is the
	// composite key, so two scores racing for the same slot cannot produce
	// two rows: the second insert replaces the first.
	Upsert(ctx context.Context, entry *model.Leaderboard) error
	Get(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (*model.Leaderboard, error)
	// GetForUpdate reads a slot with a row lock on backends that support
	// SELECT ... FOR UPDATE. Meaningful only inside Transact.
	GetForUpdate(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (*model.Leaderboard, error)
	ListByBeatmap(ctx context.Context, beatmapID int32) ([]model.Leaderboard, error)
	ListByUser(ctx context.Context, userID int32) ([]model.Leaderboard, error)
	ListAll(ctx context.Context) ([]model.Leaderboard, error)
	// Transact runs fn against a repository bound to one transaction; any
	// error rolls the whole unit back.
	Transact(ctx context.Context, fn func(repo LeaderboardRepository) error) error
}

type leaderboardRepository struct {
	db      *gorm.DB
	backend migration.Backend
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db, backend: migration.BackendFor(db.Dialector.Name())}
}

func (r *leaderboardRepository) Upsert(ctx context.Context, entry *model.Leaderboard) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "beatmap_id"}, {Name: "mode"}, {Name: "ranking_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "score_id"}),
	}).Create(entry).Error
}

func (r *leaderboardRepository) Get(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (*model.Leaderboard, error) {
	return r.get(r.db.WithContext(ctx), beatmapID, mode, rankingType)
}

func (r *leaderboardRepository) GetForUpdate(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (*model.Leaderboard, error) {
	q := r.db.WithContext(ctx)
	if r.backend.RowLocking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(q, beatmapID, mode, rankingType)
}

func (r *leaderboardRepository) get(q *gorm.DB, beatmapID int32, mode model.GameMode, rankingType model.RankingType) (*model.Leaderboard, error) {
	var entry model.Leaderboard
	err := q.
		Where("beatmap_id = ? AND mode = ? AND ranking_type = ?", beatmapID, mode, rankingType).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *leaderboardRepository) ListByBeatmap(ctx context.Context, beatmapID int32) ([]model.Leaderboard, error) {
	var entries []model.Leaderboard
	if err := r.db.WithContext(ctx).Where("beatmap_id = ?", beatmapID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) ListByUser(ctx context.Context, userID int32) ([]model.Leaderboard, error) {
	var entries []model.Leaderboard
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) ListAll(ctx context.Context) ([]model.Leaderboard, error) {
	var entries []model.Leaderboard
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) Transact(ctx context.Context, fn func(repo LeaderboardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&leaderboardRepository{db: tx, backend: r.backend})
	})
}
