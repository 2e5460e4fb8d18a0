package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChannelRepository interface {
	// Ensure creates the channel if it doesn't exist yet; existing rows are
	// left untouched so operator edits survive restarts.
	Ensure(ctx context.Context, channel *model.Channel) error
	FindByID(ctx context.Context, id int64) (*model.Channel, error)
	ListAutoJoin(ctx context.Context) ([]model.Channel, error)
	Join(ctx context.Context, channelID int64, userID int32) error
	Leave(ctx context.Context, channelID int64, userID int32) error
	SetHandlePrivilege(ctx context.Context, priv *model.ChannelPrivilege) error
	AppendMessage(ctx context.Context, msg *model.ChatMessage) error
	RecentMessages(ctx context.Context, channelID int64, limit int) ([]model.ChatMessage, error)
	Delete(ctx context.Context, id int64) error
}

type channelRepository struct {
	db      *gorm.DB
	backend migration.Backend
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db, backend: migration.BackendFor(db.Dialector.Name())}
}

func (r *channelRepository) Ensure(ctx context.Context, channel *model.Channel) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(channel).Error
}

func (r *channelRepository) FindByID(ctx context.Context, id int64) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) ListAutoJoin(ctx context.Context) ([]model.Channel, error) {
	var channels []model.Channel
	if err := r.db.WithContext(ctx).Where("auto_join = ?", true).Order("id").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *channelRepository) Join(ctx context.Context, channelID int64, userID int32) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ChannelUser{ChannelID: channelID, UserID: userID}).Error
}

func (r *channelRepository) Leave(ctx context.Context, channelID int64, userID int32) error {
	return r.db.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&model.ChannelUser{}).Error
}

func (r *channelRepository) SetHandlePrivilege(ctx context.Context, priv *model.ChannelPrivilege) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "channel_id"}, {Name: "handle"}},
		DoUpdates: clause.AssignmentColumns([]string{"required_privilege_id"}),
	}).Create(priv).Error
}

func (r *channelRepository) AppendMessage(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *channelRepository) RecentMessages(ctx context.Context, channelID int64, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *channelRepository) Delete(ctx context.Context, id int64) error {
	if r.backend.ForeignKeys {
		return r.db.WithContext(ctx).Delete(&model.Channel{}, "id = ?", id).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.ChannelUser{}, &model.ChannelPrivilege{}, &model.ChatMessage{}} {
			if err := tx.Where("channel_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Channel{}, "id = ?", id).Error
	})
}
