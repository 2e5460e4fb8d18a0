package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BeatmapRepository interface {
	Upsert(ctx context.Context, beatmap *model.Beatmap) error
	FindByBid(ctx context.Context, bid int32) (*model.Beatmap, error)
	FindByMd5(ctx context.Context, md5 string) (*model.Beatmap, error)
	Rate(ctx context.Context, rating *model.BeatmapRating) error
	AverageRating(ctx context.Context, mapMd5 string) (float64, error)
	Delete(ctx context.Context, bid int32) error
}

type beatmapRepository struct {
	db      *gorm.DB
	backend migration.Backend
}

func NewBeatmapRepository(db *gorm.DB) BeatmapRepository {
	return &beatmapRepository{db: db, backend: migration.BackendFor(db.Dialector.Name())}
}

// Upsert refreshes map metadata unless the row has been frozen by ranking.
func (r *beatmapRepository) Upsert(ctx context.Context, beatmap *model.Beatmap) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bid"}},
		Where:     clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Table: "beatmaps", Name: "immutable"}, Value: false}}},
		UpdateAll: true,
	}).Create(beatmap).Error
}

func (r *beatmapRepository) FindByBid(ctx context.Context, bid int32) (*model.Beatmap, error) {
	var beatmap model.Beatmap
	if err := r.db.WithContext(ctx).First(&beatmap, "bid = ?", bid).Error; err != nil {
		return nil, err
	}
	return &beatmap, nil
}

func (r *beatmapRepository) FindByMd5(ctx context.Context, md5 string) (*model.Beatmap, error) {
	var beatmap model.Beatmap
	if err := r.db.WithContext(ctx).Where("md5 = ?", md5).First(&beatmap).Error; err != nil {
		return nil, err
	}
	return &beatmap, nil
}

// Rate records a user's rating for a map, replacing any previous one.
func (r *beatmapRepository) Rate(ctx context.Context, rating *model.BeatmapRating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "map_md5"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
}

func (r *beatmapRepository) AverageRating(ctx context.Context, mapMd5 string) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.BeatmapRating{}).
		Select("AVG(rating)").
		Where("map_md5 = ?", mapMd5).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *beatmapRepository) Delete(ctx context.Context, bid int32) error {
	if r.backend.ForeignKeys {
		return r.db.WithContext(ctx).Delete(&model.Beatmap{}, "bid = ?", bid).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var beatmap model.Beatmap
		if err := tx.First(&beatmap, "bid = ?", bid).Error; err != nil {
			return err
		}
		if err := tx.Where("map_md5 = ?", beatmap.Md5).Delete(&model.BeatmapRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("beatmap_id = ?", bid).Delete(&model.Leaderboard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Beatmap{}, "bid = ?", bid).Error
	})
}
