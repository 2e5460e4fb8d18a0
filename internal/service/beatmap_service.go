package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"gorm.io/gorm"
)

type UpsertBeatmapInput struct {
	Bid          int32            `json:"bid" binding:"required"`
	Sid          int32            `json:"sid" binding:"required"`
	Md5          string           `json:"md5" binding:"required,len=32"`
	Title        string           `json:"title" binding:"required"`
	FileName     string           `json:"file_name" binding:"required"`
	Artist       string           `json:"artist" binding:"required"`
	DiffName     string           `json:"diff_name" binding:"required"`
	OriginServer string           `json:"origin_server" binding:"required"`
	MapperName   string           `json:"mapper_name" binding:"required"`
	MapperID     string           `json:"mapper_id" binding:"required"`
	RankStatus   model.RankStatus `json:"rank_status" binding:"required"`
	GameMode     model.GameMode   `json:"game_mode" binding:"required"`
	Stars        float64          `json:"stars" binding:"gte=0"`
	Bpm          float64          `json:"bpm" binding:"gte=0"`
	Cs           float64          `json:"cs"`
	Od           float64          `json:"od"`
	Ar           float64          `json:"ar"`
	Hp           float64          `json:"hp"`
	Length       int32            `json:"length" binding:"gte=0"`
	LengthDrain  int32            `json:"length_drain" binding:"gte=0"`
	MaxCombo     *int32           `json:"max_combo,omitempty"`
	ObjectCount  *int32           `json:"object_count,omitempty"`
	SliderCount  *int32           `json:"slider_count,omitempty"`
	SpinnerCount *int32           `json:"spinner_count,omitempty"`
	Immutable    bool             `json:"immutable"`
}

type RateBeatmapInput struct {
	MapMd5 string `json:"map_md5" binding:"required,len=32"`
	UserID int32  `json:"-"`
	Rating int8   `json:"rating" binding:"required,min=1,max=10"`
}

type BeatmapService interface {
	Upsert(ctx context.Context, input UpsertBeatmapInput) (*model.Beatmap, error)
	Get(ctx context.Context, bid int32) (*model.Beatmap, error)
	GetByMd5(ctx context.Context, md5 string) (*model.Beatmap, error)
	Rate(ctx context.Context, input RateBeatmapInput) (float64, error)
	Delete(ctx context.Context, bid int32) error
}

type beatmapService struct {
	beatmapRepo  repository.BeatmapRepository
	leaderboards LeaderboardService // nil when no leaderboard stack is wired
}

func NewBeatmapService(beatmapRepo repository.BeatmapRepository, leaderboards LeaderboardService) BeatmapService {
	return &beatmapService{beatmapRepo: beatmapRepo, leaderboards: leaderboards}
}

func (s *beatmapService) Upsert(ctx context.Context, input UpsertBeatmapInput) (*model.Beatmap, error) {
	if !input.RankStatus.Valid() {
		return nil, apperror.New(0, fmt.Sprintf("unknown rank status %q", input.RankStatus), apperror.ErrInvalidInput)
	}
	if !input.GameMode.Valid() {
		return nil, apperror.New(0, fmt.Sprintf("unknown game mode %q", input.GameMode), apperror.ErrInvalidInput)
	}

	beatmap := &model.Beatmap{
		Bid:          input.Bid,
		Sid:          input.Sid,
		Md5:          input.Md5,
		Title:        input.Title,
		FileName:     input.FileName,
		Artist:       input.Artist,
		DiffName:     input.DiffName,
		OriginServer: input.OriginServer,
		MapperName:   input.MapperName,
		MapperID:     input.MapperID,
		RankStatus:   input.RankStatus,
		GameMode:     input.GameMode,
		Stars:        input.Stars,
		Bpm:          input.Bpm,
		Cs:           input.Cs,
		Od:           input.Od,
		Ar:           input.Ar,
		Hp:           input.Hp,
		Length:       input.Length,
		LengthDrain:  input.LengthDrain,
		MaxCombo:     input.MaxCombo,
		ObjectCount:  input.ObjectCount,
		SliderCount:  input.SliderCount,
		SpinnerCount: input.SpinnerCount,
		Immutable:    input.Immutable,
	}

	if err := s.beatmapRepo.Upsert(ctx, beatmap); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(0, fmt.Sprintf("beatmap md5 %s already registered", input.Md5), apperror.ErrDuplicate)
		}
		return nil, err
	}
	return beatmap, nil
}

func (s *beatmapService) Get(ctx context.Context, bid int32) (*model.Beatmap, error) {
	beatmap, err := s.beatmapRepo.FindByBid(ctx, bid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "beatmap not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return beatmap, nil
}

func (s *beatmapService) GetByMd5(ctx context.Context, md5 string) (*model.Beatmap, error) {
	beatmap, err := s.beatmapRepo.FindByMd5(ctx, md5)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "beatmap not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return beatmap, nil
}

// Rate stores the user's rating and returns the new average for the map.
func (s *beatmapService) Rate(ctx context.Context, input RateBeatmapInput) (float64, error) {
	if _, err := s.beatmapRepo.FindByMd5(ctx, input.MapMd5); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.New(0, "beatmap not found", apperror.ErrNotFound)
		}
		return 0, err
	}

	rating := &model.BeatmapRating{
		UserID: input.UserID,
		MapMd5: input.MapMd5,
		Rating: input.Rating,
	}
	if err := s.beatmapRepo.Rate(ctx, rating); err != nil {
		return 0, err
	}
	return s.beatmapRepo.AverageRating(ctx, input.MapMd5)
}

func (s *beatmapService) Delete(ctx context.Context, bid int32) error {
	if err := s.beatmapRepo.Delete(ctx, bid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(0, "beatmap not found", apperror.ErrNotFound)
		}
		return err
	}

	if s.leaderboards != nil {
		if err := s.leaderboards.InvalidateBeatmap(ctx, bid); err != nil {
			// Rows are gone; a leftover key heals on the next refresh pass.
			log.Printf("leaderboard cache invalidation failed for beatmap %d: %v", bid, err)
		}
	}
	return nil
}
