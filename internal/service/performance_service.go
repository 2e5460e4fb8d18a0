package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"gorm.io/gorm"
)

type ScorePPInput struct {
	ScoreID int64           `json:"score_id" binding:"required"`
	Mode    model.GameMode  `json:"mode" binding:"required"`
	Version model.PpVersion `json:"pp_version" binding:"required"`
	Pp      float64         `json:"pp" binding:"gte=0"`
	RawPp   json.RawMessage `json:"raw_pp,omitempty"`
}

// PerformanceService ingests the pp tuples an external rating calculator
// produces: it stores the per-score value, re-aggregates the user's rating
// and offers the score to the matching pp leaderboard slot.
type PerformanceService interface {
	IngestScorePP(ctx context.Context, input ScorePPInput) error
	UserRating(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) (*model.UserPP, error)
}

type performanceService struct {
	perfRepo       repository.PerformanceRepository
	scoreRepo      repository.ScoreRepository
	beatmapRepo    repository.BeatmapRepository
	leaderboardSvc LeaderboardService
}

func NewPerformanceService(
	perfRepo repository.PerformanceRepository,
	scoreRepo repository.ScoreRepository,
	beatmapRepo repository.BeatmapRepository,
	leaderboardSvc LeaderboardService,
) PerformanceService {
	return &performanceService{
		perfRepo:       perfRepo,
		scoreRepo:      scoreRepo,
		beatmapRepo:    beatmapRepo,
		leaderboardSvc: leaderboardSvc,
	}
}

func (s *performanceService) IngestScorePP(ctx context.Context, input ScorePPInput) error {
	if !input.Mode.Valid() {
		return fmt.Errorf("unknown game mode %q", input.Mode)
	}
	if !input.Version.Valid() {
		return fmt.Errorf("unknown pp version %q", input.Version)
	}

	record, err := s.scoreRepo.FindRecordByID(ctx, input.ScoreID)
	if err != nil {
		return fmt.Errorf("look up score %d: %w", input.ScoreID, err)
	}

	if err := s.perfRepo.UpsertScorePP(ctx, &model.ScorePP{
		ScoreID: input.ScoreID,
		Mode:    input.Mode,
		Version: input.Version,
		Pp:      input.Pp,
		RawPp:   input.RawPp,
	}); err != nil {
		return err
	}

	if err := s.recomputeUserPP(ctx, record.Score.UserID, input.Mode, input.Version); err != nil {
		return err
	}

	if !record.Score.Completed || record.Score.Invisible {
		return nil
	}

	beatmap, err := s.beatmapRepo.FindByMd5(ctx, record.Score.MapHash)
	if err != nil {
		// Scores on maps the server has never seen don't get a leaderboard.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	ranking := model.RankingPpV1
	if input.Version == model.PpV2 {
		ranking = model.RankingPpV2
	}
	_, err = s.leaderboardSvc.SubmitCandidate(ctx, beatmap.Bid, input.Mode, ranking, record.Score.UserID, input.ScoreID, input.Pp)
	return err
}

// recomputeUserPP aggregates the user's best pp per map with exponentially
// decaying weights, so adding one more mediocre play never lowers the rating.
func (s *performanceService) recomputeUserPP(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) error {
	best, err := s.perfRepo.BestPpPerMap(ctx, userID, mode, version)
	if err != nil {
		return err
	}

	var total float64
	for i, pp := range best {
		total += pp * math.Pow(0.95, float64(i))
	}

	return s.perfRepo.UpsertUserPP(ctx, &model.UserPP{
		UserID:  userID,
		Mode:    mode,
		Version: version,
		Pp:      total,
	})
}

func (s *performanceService) UserRating(ctx context.Context, userID int32, mode model.GameMode, version model.PpVersion) (*model.UserPP, error) {
	pp, err := s.perfRepo.UserPP(ctx, userID, mode, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "no rating recorded", apperror.ErrNotFound)
		}
		return nil, err
	}
	return pp, nil
}
