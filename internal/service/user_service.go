package service

import (
	"context"
	"errors"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"gorm.io/gorm"
)

type HardwareRecordInput struct {
	UserID       int32  `json:"-"`
	TimeOffset   int32  `json:"time_offset"`
	PathHash     string `json:"path_hash" binding:"required,len=32"`
	Adapters     string `json:"adapters" binding:"required"`
	AdaptersHash string `json:"adapters_hash" binding:"required,len=32"`
	UninstallID  string `json:"uninstall_id" binding:"required,len=32"`
	DiskID       string `json:"disk_id" binding:"required,len=32"`
}

type UserService interface {
	Get(ctx context.Context, id int32) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	GrantPrivilege(ctx context.Context, userID, grantorID int32, privilegeID int64) error
	RevokePrivilege(ctx context.Context, userID int32, privilegeID int64) error
	Privileges(ctx context.Context, userID int32) ([]model.Privilege, error)
	RecordHardware(ctx context.Context, input HardwareRecordInput) error
	Follow(ctx context.Context, userID, followID int32, remark *string) error
	Unfollow(ctx context.Context, userID, followID int32) error
	Following(ctx context.Context, userID int32) ([]model.Follower, error)
	Favourite(ctx context.Context, userID, beatmapsetID int32, comment *string) error
	Unfavourite(ctx context.Context, userID, beatmapsetID int32) error
	Favourites(ctx context.Context, userID int32) ([]model.FavouriteBeatmap, error)
	Delete(ctx context.Context, id int32) error
}

type userService struct {
	userRepo     repository.UserRepository
	socialRepo   repository.SocialRepository
	leaderboards LeaderboardService // nil when no leaderboard stack is wired
}

func NewUserService(userRepo repository.UserRepository, socialRepo repository.SocialRepository, leaderboards LeaderboardService) UserService {
	return &userService{userRepo: userRepo, socialRepo: socialRepo, leaderboards: leaderboards}
}

func (s *userService) Get(ctx context.Context, id int32) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByName(ctx context.Context, name string) (*model.User, error) {
	user, err := s.userRepo.FindBySafeName(ctx, SafeName(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GrantPrivilege(ctx context.Context, userID, grantorID int32, privilegeID int64) error {
	err := s.userRepo.GrantPrivilege(ctx, &model.UserPrivilege{
		UserID:      userID,
		PrivilegeID: privilegeID,
		GrantorID:   grantorID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.New(0, "privilege already granted", apperror.ErrDuplicate)
	}
	return err
}

func (s *userService) RevokePrivilege(ctx context.Context, userID int32, privilegeID int64) error {
	return s.userRepo.RevokePrivilege(ctx, userID, privilegeID)
}

func (s *userService) Privileges(ctx context.Context, userID int32) ([]model.Privilege, error) {
	return s.userRepo.Privileges(ctx, userID)
}

func (s *userService) RecordHardware(ctx context.Context, input HardwareRecordInput) error {
	return s.userRepo.RecordHardware(ctx, &model.ClientHardwareRecord{
		UserID:       input.UserID,
		TimeOffset:   input.TimeOffset,
		PathHash:     input.PathHash,
		Adapters:     input.Adapters,
		AdaptersHash: input.AdaptersHash,
		UninstallID:  input.UninstallID,
		DiskID:       input.DiskID,
	})
}

func (s *userService) Follow(ctx context.Context, userID, followID int32, remark *string) error {
	if userID == followID {
		return apperror.New(0, "cannot follow yourself", apperror.ErrInvalidInput)
	}
	if _, err := s.userRepo.FindByID(ctx, followID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return err
	}
	return s.socialRepo.Follow(ctx, &model.Follower{
		UserID:   userID,
		FollowID: followID,
		Remark:   remark,
	})
}

func (s *userService) Unfollow(ctx context.Context, userID, followID int32) error {
	return s.socialRepo.Unfollow(ctx, userID, followID)
}

func (s *userService) Following(ctx context.Context, userID int32) ([]model.Follower, error) {
	return s.socialRepo.Following(ctx, userID)
}

func (s *userService) Favourite(ctx context.Context, userID, beatmapsetID int32, comment *string) error {
	return s.socialRepo.Favourite(ctx, &model.FavouriteBeatmap{
		UserID:       userID,
		BeatmapsetID: beatmapsetID,
		Comment:      comment,
	})
}

func (s *userService) Unfavourite(ctx context.Context, userID, beatmapsetID int32) error {
	return s.socialRepo.Unfavourite(ctx, userID, beatmapsetID)
}

func (s *userService) Favourites(ctx context.Context, userID int32) ([]model.FavouriteBeatmap, error) {
	return s.socialRepo.Favourites(ctx, userID)
}

func (s *userService) Delete(ctx context.Context, id int32) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return err
	}

	// The cascade removes the user's leaderboard rows, so the cached slots
	// must go before the rows do or the lookup for them comes up empty.
	if s.leaderboards != nil {
		if err := s.leaderboards.InvalidateUser(ctx, id); err != nil {
			return err
		}
	}
	return s.userRepo.Delete(ctx, id)
}
