package service

import (
	"context"
	"errors"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"gorm.io/gorm"
)

type StatsService interface {
	// ApplyClassic folds one classic play into the user's per-mode counters.
	// ranked controls whether the score counts towards ranked_score.
	ApplyClassic(ctx context.Context, userID int32, play *model.ScoreClassic, playtime int32, completed, ranked bool) error
	// Recompute rebuilds the counters for one user and mode from the full
	// play history, replacing whatever the incremental path accumulated.
	Recompute(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error)
	Get(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	scoreRepo repository.ScoreRepository
}

func NewStatsService(statsRepo repository.StatsRepository, scoreRepo repository.ScoreRepository) StatsService {
	return &statsService{statsRepo: statsRepo, scoreRepo: scoreRepo}
}

func (s *statsService) ApplyClassic(ctx context.Context, userID int32, play *model.ScoreClassic, playtime int32, completed, ranked bool) error {
	stats, err := s.statsRepo.Get(ctx, userID, play.Mode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stats = &model.UserStats{UserID: userID, Mode: play.Mode}
	}

	foldClassic(stats, play, playtime, completed, ranked)
	return s.statsRepo.Upsert(ctx, stats)
}

func (s *statsService) Recompute(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error) {
	plays, err := s.scoreRepo.ListClassicPlays(ctx, userID, mode)
	if err != nil {
		return nil, err
	}

	stats := &model.UserStats{UserID: userID, Mode: mode}
	for i := range plays {
		play := &plays[i]
		// Recompute can't recover per-play ranked status; completed passes
		// count, which matches the incremental path for ranked maps.
		foldClassic(stats, &play.Classic, play.Score.Playtime, play.Score.Completed, play.Score.Completed)
	}

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *statsService) Get(ctx context.Context, userID int32, mode model.GameMode) (*model.UserStats, error) {
	return s.statsRepo.Get(ctx, userID, mode)
}

func foldClassic(stats *model.UserStats, play *model.ScoreClassic, playtime int32, completed, ranked bool) {
	stats.Playcount++
	stats.TotalScore += int64(play.Score)
	stats.TotalSecondsPlayed += playtime
	stats.TotalHits += play.N300 + play.N100 + play.N50 + play.Geki + play.Katu
	stats.Count300 += play.N300
	stats.Count100 += play.N100
	stats.Count50 += play.N50
	stats.CountMiss += play.Miss

	if ranked && completed && play.Grade != model.GradeF {
		stats.RankedScore += int64(play.Score)
	}
	if play.Grade == model.GradeF {
		stats.CountFailed++
	}
	if !completed {
		stats.CountQuit++
	}
	if play.Combo > stats.MaxCombo {
		stats.MaxCombo = play.Combo
	}

	// Running mean over all plays, weighted equally.
	n := float64(stats.Playcount)
	stats.Accuracy = (stats.Accuracy*(n-1) + play.Accuracy) / n
}
