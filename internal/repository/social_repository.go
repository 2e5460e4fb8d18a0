package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialRepository covers the follow graph and per-user beatmapset favourites.
type SocialRepository interface {
	Follow(ctx context.Context, rel *model.Follower) error
	Unfollow(ctx context.Context, userID, followID int32) error
	Following(ctx context.Context, userID int32) ([]model.Follower, error)
	Favourite(ctx context.Context, fav *model.FavouriteBeatmap) error
	Unfavourite(ctx context.Context, userID, beatmapsetID int32) error
	Favourites(ctx context.Context, userID int32) ([]model.FavouriteBeatmap, error)
}

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

// Follow upserts on the (user_id, follow_id) pair so re-following only
// refreshes the remark instead of failing.
func (r *socialRepository) Follow(ctx context.Context, rel *model.Follower) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "follow_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"remark"}),
	}).Create(rel).Error
}

func (r *socialRepository) Unfollow(ctx context.Context, userID, followID int32) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND follow_id = ?", userID, followID).
		Delete(&model.Follower{}).Error
}

func (r *socialRepository) Following(ctx context.Context, userID int32) ([]model.Follower, error) {
	var rels []model.Follower
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *socialRepository) Favourite(ctx context.Context, fav *model.FavouriteBeatmap) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "beatmapset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"comment"}),
	}).Create(fav).Error
}

func (r *socialRepository) Unfavourite(ctx context.Context, userID, beatmapsetID int32) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND beatmapset_id = ?", userID, beatmapsetID).
		Delete(&model.FavouriteBeatmap{}).Error
}

func (r *socialRepository) Favourites(ctx context.Context, userID int32) ([]model.FavouriteBeatmap, error) {
	var favs []model.FavouriteBeatmap
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return favs, nil
}
