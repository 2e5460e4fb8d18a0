package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/pkg/apperror"
	"gorm.io/gorm"
)

type ClassicScoreInput struct {
	Mode          model.GameMode     `json:"mode" binding:"required"`
	ScoreVersion  model.ScoreVersion `json:"score_version" binding:"required"`
	Score         int32              `json:"score" binding:"gte=0"`
	Accuracy      float64            `json:"accuracy" binding:"gte=0,lte=1"`
	Combo         int32              `json:"combo" binding:"gte=0"`
	Mods          int32              `json:"mods"`
	N300          int32              `json:"n300" binding:"gte=0"`
	N100          int32              `json:"n100" binding:"gte=0"`
	N50           int32              `json:"n50" binding:"gte=0"`
	Miss          int32              `json:"miss" binding:"gte=0"`
	Geki          int32              `json:"geki" binding:"gte=0"`
	Katu          int32              `json:"katu" binding:"gte=0"`
	Perfect       bool               `json:"perfect"`
	Grade         model.ScoreGrade   `json:"grade" binding:"required"`
	ClientFlags   int32              `json:"client_flags"`
	ClientVersion string             `json:"client_version" binding:"required"`
}

type GenericScoreInput struct {
	Mode    string          `json:"mode" binding:"required"`
	Score   int32           `json:"score" binding:"gte=0"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// SubmitScoreInput carries exactly one of Classic or Generic; which one is
// present decides the extension table the score lands in.
type SubmitScoreInput struct {
	MapHash   string `json:"map_hash" binding:"required,len=32"`
	UserID    int32  `json:"-"`
	Cksm      string `json:"cksm" binding:"required"`
	Playtime  int32  `json:"playtime" binding:"gte=0"`
	Completed bool   `json:"completed"`
	Invisible bool   `json:"invisible"`

	Classic *ClassicScoreInput `json:"classic,omitempty"`
	Generic *GenericScoreInput `json:"generic,omitempty"`
}

type ScoreService interface {
	Submit(ctx context.Context, input SubmitScoreInput) (*model.ScoreRecord, error)
	Get(ctx context.Context, id int64) (*model.ScoreRecord, error)
	Verify(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int32) ([]model.Score, error)
}

type scoreService struct {
	scoreRepo      repository.ScoreRepository
	beatmapRepo    repository.BeatmapRepository
	statsSvc       StatsService
	leaderboardSvc LeaderboardService
}

func NewScoreService(
	scoreRepo repository.ScoreRepository,
	beatmapRepo repository.BeatmapRepository,
	statsSvc StatsService,
	leaderboardSvc LeaderboardService,
) ScoreService {
	return &scoreService{
		scoreRepo:      scoreRepo,
		beatmapRepo:    beatmapRepo,
		statsSvc:       statsSvc,
		leaderboardSvc: leaderboardSvc,
	}
}

// Submit persists the score and, for completed classic plays, folds it into
// the user's stats and offers it to the matching leaderboard slot. Duplicate
// submissions are detected by checksum and rejected.
func (s *scoreService) Submit(ctx context.Context, input SubmitScoreInput) (*model.ScoreRecord, error) {
	record, err := buildRecord(input)
	if err != nil {
		return nil, apperror.New(0, err.Error(), apperror.ErrInvalidInput)
	}

	if err := s.scoreRepo.CreateRecord(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(0, fmt.Sprintf("score %s already submitted", input.Cksm), apperror.ErrDuplicate)
		}
		return nil, err
	}

	if record.Classic == nil {
		return record, nil
	}

	beatmap, err := s.beatmapRepo.FindByMd5(ctx, input.MapHash)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ranked := beatmap != nil && !beatmap.RankStatus.Unranked()

	if err := s.statsSvc.ApplyClassic(ctx, input.UserID, record.Classic, input.Playtime, input.Completed, ranked); err != nil {
		return nil, err
	}

	if beatmap == nil || !input.Completed || input.Invisible || record.Classic.Grade == model.GradeF {
		return record, nil
	}

	ranking := model.RankingScoreV1
	if record.Classic.ScoreVersion == model.ScoreV2 {
		ranking = model.RankingScoreV2
	}
	_, err = s.leaderboardSvc.SubmitCandidate(
		ctx, beatmap.Bid, record.Classic.Mode, ranking,
		input.UserID, record.Score.ID, float64(record.Classic.Score),
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func buildRecord(input SubmitScoreInput) (*model.ScoreRecord, error) {
	if (input.Classic == nil) == (input.Generic == nil) {
		return nil, errors.New("exactly one of classic or generic payload required")
	}

	record := &model.ScoreRecord{
		Score: model.Score{
			MapHash:   input.MapHash,
			UserID:    input.UserID,
			Cksm:      input.Cksm,
			Playtime:  input.Playtime,
			Completed: input.Completed,
			Invisible: input.Invisible,
		},
	}

	if input.Classic != nil {
		c := input.Classic
		if !c.Mode.Valid() {
			return nil, fmt.Errorf("unknown game mode %q", c.Mode)
		}
		if !c.ScoreVersion.Valid() {
			return nil, fmt.Errorf("unknown score version %q", c.ScoreVersion)
		}
		if !c.Grade.Valid() {
			return nil, fmt.Errorf("unknown grade %q", c.Grade)
		}
		record.Score.Kind = model.ScoreKindClassic
		record.Classic = &model.ScoreClassic{
			Mode:          c.Mode,
			ScoreVersion:  c.ScoreVersion,
			Score:         c.Score,
			Accuracy:      c.Accuracy,
			Combo:         c.Combo,
			Mods:          c.Mods,
			N300:          c.N300,
			N100:          c.N100,
			N50:           c.N50,
			Miss:          c.Miss,
			Geki:          c.Geki,
			Katu:          c.Katu,
			Perfect:       c.Perfect,
			Grade:         c.Grade,
			ClientFlags:   c.ClientFlags,
			ClientVersion: c.ClientVersion,
		}
		return record, nil
	}

	g := input.Generic
	if len(g.Payload) == 0 || !json.Valid(g.Payload) {
		return nil, errors.New("generic payload must be valid json")
	}
	record.Score.Kind = model.ScoreKindGeneric
	record.Generic = &model.ScoreGeneric{
		Mode:  g.Mode,
		Score: g.Score,
		JSON:  g.Payload,
	}
	return record, nil
}

func (s *scoreService) Get(ctx context.Context, id int64) (*model.ScoreRecord, error) {
	record, err := s.scoreRepo.FindRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "score not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return record, nil
}

func (s *scoreService) Verify(ctx context.Context, id int64) error {
	if _, err := s.scoreRepo.FindRecordByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(0, "score not found", apperror.ErrNotFound)
		}
		return err
	}
	return s.scoreRepo.MarkVerified(ctx, id)
}

func (s *scoreService) ListByUser(ctx context.Context, userID int32) ([]model.Score, error) {
	return s.scoreRepo.ListByUser(ctx, userID)
}
