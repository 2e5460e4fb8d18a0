package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name        string  `json:"name" binding:"required,min=3,max=16"`
	NameUnicode *string `json:"name_unicode,omitempty" binding:"omitempty,max=10"`
	Email       string  `json:"email" binding:"required,email,max=64"`
	Password    string  `json:"password" binding:"required,min=8"`
	Country     *string `json:"country,omitempty" binding:"omitempty,max=8"`
}

type LoginInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// SafeName normalizes a display name for lookups: lowercased with spaces
// collapsed to underscores. Two names that collide after normalization are
// the same account as far as login is concerned.
func SafeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:        input.Name,
		NameSafe:    SafeName(input.Name),
		NameUnicode: input.NameUnicode,
		Password:    string(hashed),
		Email:       strings.ToLower(input.Email),
		Country:     input.Country,
	}
	if input.NameUnicode != nil {
		safe := SafeName(*input.NameUnicode)
		user.NameUnicodeSafe = &safe
	}

	settings := &model.UserSettings{
		ScoreboardRankingType: model.RankingScoreV1,
	}

	if err := s.userRepo.Create(ctx, user, settings); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(0, "name or email already taken", apperror.ErrDuplicate)
		}
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.FindBySafeName(ctx, SafeName(input.Name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperror.New(0, "invalid credentials", apperror.ErrUnauthorized)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(int64(user.ID), 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
