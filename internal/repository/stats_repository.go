package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	Upsert(ctx context.Context, stats *model.UserStats) error
	Get(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Upsert(ctx context.Context, stats *model.UserStats) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "mode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_score", "ranked_score", "playcount", "total_hits", "accuracy",
			"max_combo", "total_seconds_played", "count300", "count100", "count50",
			"count_miss", "count_failed", "count_quit", "updated_at",
		}),
	}).Create(stats).Error
}

func (r *statsRepository) Get(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND mode = ?", userID, mode).
		First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
