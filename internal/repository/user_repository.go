package repository

import (
	"context"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, settings *model.UserSettings) error
	FindByID(ctx context.Context, id int32) (*model.User, error)
	FindBySafeName(ctx context.Context, nameSafe string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GrantPrivilege(ctx context.Context, grant *model.UserPrivilege) error
	RevokePrivilege(ctx context.Context, userID int32, privilegeID int64) error
	Privileges(ctx context.Context, userID int32) ([]model.Privilege, error)
	RecordHardware(ctx context.Context, rec *model.ClientHardwareRecord) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db      *gorm.DB
	backend migration.Backend
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, backend: migration.BackendFor(db.Dialector.Name())}
}

func (r *userRepository) Create(ctx context.Context, user *model.User, settings *model.UserSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if settings != nil {
			settings.UserID = user.ID
			if err := tx.Create(settings).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id int32) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySafeName(ctx context.Context, nameSafe string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name_safe = ?", nameSafe).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GrantPrivilege(ctx context.Context, grant *model.UserPrivilege) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *userRepository) RevokePrivilege(ctx context.Context, userID int32, privilegeID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND privilege_id = ?", userID, privilegeID).
		Delete(&model.UserPrivilege{}).Error
}

func (r *userRepository) Privileges(ctx context.Context, userID int32) ([]model.Privilege, error) {
	var privileges []model.Privilege
	err := r.db.WithContext(ctx).
		Joins("JOIN user_privileges ON user_privileges.privilege_id = privileges.id").
		Where("user_privileges.user_id = ?", userID).
		Order("privileges.priority").
		Find(&privileges).Error
	if err != nil {
		return nil, err
	}
	return privileges, nil
}

// RecordHardware inserts the fingerprint tuple or, when the client has logged
// in from the same hardware before, bumps its use counter.
func (r *userRepository) RecordHardware(ctx context.Context, rec *model.ClientHardwareRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "path_hash"}, {Name: "adapters_hash"},
			{Name: "uninstall_id"}, {Name: "disk_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"used_times": gorm.Expr("client_hardware_records.used_times + 1"),
		}),
	}).Create(rec).Error
}

// Delete removes a user. On backends with enforced foreign keys the schema
// cascades to every dependent row; elsewhere the same cascade is emulated
// here inside one transaction.
func (r *userRepository) Delete(ctx context.Context, id int32) error {
	if r.backend.ForeignKeys {
		return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var scoreIDs []int64
		if err := tx.Model(&model.Score{}).Where("user_id = ?", id).Pluck("id", &scoreIDs).Error; err != nil {
			return err
		}
		if len(scoreIDs) > 0 {
			for _, m := range []any{&model.ScoreClassic{}, &model.ScoreGeneric{}} {
				if err := tx.Where("id IN ?", scoreIDs).Delete(m).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("score_id IN ?", scoreIDs).Delete(&model.ScorePP{}).Error; err != nil {
				return err
			}
			if err := tx.Where("score_id IN ?", scoreIDs).Delete(&model.Leaderboard{}).Error; err != nil {
				return err
			}
		}

		deletes := []struct {
			model any
			where string
		}{
			{&model.Score{}, "user_id = ?"},
			{&model.Leaderboard{}, "user_id = ?"},
			{&model.UserPP{}, "user_id = ?"},
			{&model.UserStats{}, "user_id = ?"},
			{&model.BeatmapRating{}, "user_id = ?"},
			{&model.UserPrivilege{}, "user_id = ?"},
			{&model.UserPrivilege{}, "grantor_id = ?"},
			{&model.ClientHardwareRecord{}, "user_id = ?"},
			{&model.FavouriteBeatmap{}, "user_id = ?"},
			{&model.Follower{}, "user_id = ?"},
			{&model.Follower{}, "follow_id = ?"},
			{&model.UserSettings{}, "user_id = ?"},
			{&model.ChannelUser{}, "user_id = ?"},
			{&model.ChatMessage{}, "sender_id = ?"},
		}
		for _, d := range deletes {
			if err := tx.Where(d.where, id).Delete(d.model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.User{}, "id = ?", id).Error
	})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
