package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PerformanceRepository accepts the tuples the external rating algorithm
// produces. Rows are keyed per pp version so recomputing under a newer
// formula never overwrites older results.
type PerformanceRepository interface {
	UpsertScorePP(ctx context.Context, pp *model.ScorePP) error
	UpsertUserPP(ctx context.Context, pp *model.UserPP) error
	ScorePP(ctx context.Context, scoreID int64, mode model.GameMode, version model.PpVersion) (*model.ScorePP, error)
	UserPP(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) (*model.UserPP, error)
	// BestPpPerMap returns the user's highest pp on each map for one mode and
	// version, best map first. Incomplete and hidden scores don't count.
	BestPpPerMap(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) ([]float64, error)
}

type performanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &performanceRepository{db: db}
}

func (r *performanceRepository) UpsertScorePP(ctx context.Context, pp *model.ScorePP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "score_id"}, {Name: "mode"}, {Name: "pp_version"}},
		DoUpdates: clause.AssignmentColumns([]string{"pp", "raw_pp"}),
	}).Create(pp).Error
}

func (r *performanceRepository) UpsertUserPP(ctx context.Context, pp *model.UserPP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "mode"}, {Name: "pp_version"}},
		DoUpdates: clause.AssignmentColumns([]string{"pp", "raw_pp"}),
	}).Create(pp).Error
}

func (r *performanceRepository) ScorePP(ctx context.Context, scoreID int64, mode model.GameMode, version model.PpVersion) (*model.ScorePP, error) {
	var pp model.ScorePP
	err := r.db.WithContext(ctx).
		Where("score_id = ? AND mode = ? AND pp_version = ?", scoreID, mode, version).
		First(&pp).Error
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *performanceRepository) BestPpPerMap(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) ([]float64, error) {
	var pps []float64
	err := r.db.WithContext(ctx).
		Model(&model.ScorePP{}).
		Joins("JOIN scores ON scores.id = score_pp.score_id").
		Where("scores.user_id = ? AND scores.completed = ? AND scores.invisible = ?", userID, true, false).
		Where("score_pp.mode = ? AND score_pp.pp_version = ?", mode, version).
		Group("scores.map_hash").
		Select("MAX(score_pp.pp) AS best_pp").
		Order("best_pp DESC").
		Scan(&pps).Error
	if err != nil {
		return nil, err
	}
	return pps, nil
}

func (r *performanceRepository) UserPP(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) (*model.UserPP, error) {
	var pp model.UserPP
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND mode = ? AND pp_version = ?", userID, mode, version).
		First(&pp).Error
	if err != nil {
		return nil, err
	}
	return &pp, nil
}
