package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/rhythmrank/internal/cache"
	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"gorm.io/gorm"
)

// ScoreboardEntry is a leaderboard slot with its ordering metric resolved:
// the classic score total for score rankings, the stored pp for pp rankings.
type ScoreboardEntry struct {
	model.Leaderboard
	Value float64 `json:"value"`
}

type LeaderboardService interface {
	// SubmitCandidate offers a score for a leaderboard slot. It installs the
	// score when the slot is empty or the candidate strictly beats the current
	// holder's metric, and reports whether the slot changed. Ties keep the
	// incumbent.
	SubmitCandidate(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType, userID int32, scoreID int64, value float64) (bool, error)
	Scoreboard(ctx context.Context, beatmapID int32) ([]ScoreboardEntry, error)
	InvalidateBeatmap(ctx context.Context, beatmapID int32) error
	InvalidateUser(ctx context.Context, userID int32) error
	RefreshCache(ctx context.Context) error
	StartCacheRefresher(ctx context.Context, interval time.Duration)
}

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	scoreRepo       repository.ScoreRepository
	perfRepo        repository.PerformanceRepository
	cache           *cache.LeaderboardCache // nil when redis is not configured
}

func NewLeaderboardService(
	leaderboardRepo repository.LeaderboardRepository,
	scoreRepo repository.ScoreRepository,
	perfRepo repository.PerformanceRepository,
	lbCache *cache.LeaderboardCache,
) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		scoreRepo:       scoreRepo,
		perfRepo:        perfRepo,
		cache:           lbCache,
	}
}

func (s *leaderboardService) SubmitCandidate(ctx context.Context, beatmapID int32, mode model.GameMode, rankingType model.RankingType, userID int32, scoreID int64, value float64) (bool, error) {
	if !mode.Valid() {
		return false, fmt.Errorf("unknown game mode %q", mode)
	}
	if !rankingType.Valid() {
		return false, fmt.Errorf("unknown ranking type %q", rankingType)
	}

	// Compare-and-install runs in one transaction with the slot row locked,
	// so two racing candidates serialize and the weaker one cannot land last.
	installed := false
	err := s.leaderboardRepo.Transact(ctx, func(txRepo repository.LeaderboardRepository) error {
		current, err := txRepo.GetForUpdate(ctx, beatmapID, mode, rankingType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if current != nil {
			holder, err := s.holderValue(ctx, current)
			if err != nil {
				return err
			}
			if value <= holder {
				return nil
			}
		}

		if err := txRepo.Upsert(ctx, &model.Leaderboard{
			BeatmapID:   beatmapID,
			Mode:        mode,
			RankingType: rankingType,
			UserID:      userID,
			ScoreID:     scoreID,
		}); err != nil {
			return err
		}
		installed = true
		return nil
	})
	if err != nil || !installed {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.SetHolder(ctx, beatmapID, mode, rankingType, userID, value); err != nil {
			// The database row is committed; the stale key heals on the next
			// refresh pass, which rebuilds from scratch.
			log.Printf("leaderboard cache update failed: %v", err)
		}
	}

	return true, nil
}

// holderValue resolves a slot's ordering metric from the database.
func (s *leaderboardService) holderValue(ctx context.Context, entry *model.Leaderboard) (float64, error) {
	switch entry.RankingType {
	case model.RankingScoreV1, model.RankingScoreV2:
		record, err := s.scoreRepo.FindRecordByID(ctx, entry.ScoreID)
		if err != nil {
			return 0, err
		}
		if record.Classic == nil {
			return 0, fmt.Errorf("leaderboard score %d has no classic row", entry.ScoreID)
		}
		return float64(record.Classic.Score), nil
	case model.RankingPpV1, model.RankingPpV2:
		version := model.PpV1
		if entry.RankingType == model.RankingPpV2 {
			version = model.PpV2
		}
		pp, err := s.perfRepo.ScorePP(ctx, entry.ScoreID, entry.Mode, version)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return pp.Pp, nil
	}
	return 0, fmt.Errorf("unknown ranking type %q", entry.RankingType)
}

// cachedHolderValue serves the metric from the redis slot when the cached
// holder matches the database row, falls back to the database on a cold or
// stale key, and warms the key with what it found.
func (s *leaderboardService) cachedHolderValue(ctx context.Context, entry *model.Leaderboard) (float64, error) {
	if s.cache != nil {
		userID, value, ok, err := s.cache.Holder(ctx, entry.BeatmapID, entry.Mode, entry.RankingType)
		if err != nil {
			log.Printf("leaderboard cache read failed: %v", err)
		} else if ok && userID == entry.UserID {
			return value, nil
		}
	}

	value, err := s.holderValue(ctx, entry)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetHolder(ctx, entry.BeatmapID, entry.Mode, entry.RankingType, entry.UserID, value); err != nil {
			log.Printf("leaderboard cache fill failed: %v", err)
		}
	}
	return value, nil
}

// Scoreboard returns a beatmap's slots with their metrics, served from the
// cache where it is warm.
func (s *leaderboardService) Scoreboard(ctx context.Context, beatmapID int32) ([]ScoreboardEntry, error) {
	slots, err := s.leaderboardRepo.ListByBeatmap(ctx, beatmapID)
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreboardEntry, len(slots))
	for i := range slots {
		value, err := s.cachedHolderValue(ctx, &slots[i])
		if err != nil {
			return nil, err
		}
		entries[i] = ScoreboardEntry{Leaderboard: slots[i], Value: value}
	}
	return entries, nil
}

// InvalidateBeatmap drops the cached slots of a deleted beatmap.
func (s *leaderboardService) InvalidateBeatmap(ctx context.Context, beatmapID int32) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, beatmapID)
}

// InvalidateUser drops the cached slots a user holds, for the cascade on
// user deletion. Called before the database rows disappear.
func (s *leaderboardService) InvalidateUser(ctx context.Context, userID int32) error {
	if s.cache == nil {
		return nil
	}

	slots, err := s.leaderboardRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	seen := make(map[int32]struct{}, len(slots))
	for _, slot := range slots {
		if _, done := seen[slot.BeatmapID]; done {
			continue
		}
		seen[slot.BeatmapID] = struct{}{}
		if err := s.cache.Invalidate(ctx, slot.BeatmapID); err != nil {
			return err
		}
	}
	return nil
}

// RefreshCache rebuilds the cache from the database: every key is dropped
// first so slots whose rows were cascade-deleted don't outlive them.
func (s *leaderboardService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	entries, err := s.leaderboardRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	if err := s.cache.Clear(ctx); err != nil {
		return err
	}

	for i := range entries {
		entry := &entries[i]
		value, err := s.holderValue(ctx, entry)
		if err != nil {
			return fmt.Errorf("refresh slot (%d, %s, %s): %w", entry.BeatmapID, entry.Mode, entry.RankingType, err)
		}
		if err := s.cache.SetHolder(ctx, entry.BeatmapID, entry.Mode, entry.RankingType, entry.UserID, value); err != nil {
			return err
		}
	}

	return nil
}

// StartCacheRefresher runs RefreshCache on a ticker until the context ends.
func (s *leaderboardService) StartCacheRefresher(ctx context.Context, interval time.Duration) {
	if s.cache == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RefreshCache(ctx); err != nil {
					log.Printf("leaderboard cache refresh failed: %v", err)
				}
			}
		}
	}()
}
