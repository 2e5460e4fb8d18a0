package repository

import (
	"context"
	"fmt"

	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"gorm.io/gorm"
)

type ScoreRepository interface {
	// CreateRecord inserts the base row and the extension row named by the
	// discriminator in one transaction, so either both exist or neither.
	CreateRecord(ctx context.Context, record *model.ScoreRecord) error
	FindRecordByID(ctx context.Context, id int64) (*model.ScoreRecord, error)
	FindByCksm(ctx context.Context, cksm string) (*model.Score, error)
	ListByUser(ctx context.Context, userID int32) ([]model.Score, error)
	ListClassicPlays(ctx context.Context, userID int32, mode model.GameMode) ([]ClassicPlay, error)
	MarkVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type scoreRepository struct {
	db      *gorm.DB
	backend migration.Backend
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db, backend: migration.BackendFor(db.Dialector.Name())}
}

func (r *scoreRepository) CreateRecord(ctx context.Context, record *model.ScoreRecord) error {
	if !record.Score.Kind.Valid() {
		return fmt.Errorf("unknown score kind %q", record.Score.Kind)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record.Score).Error; err != nil {
			return err
		}

		switch record.Score.Kind {
		case model.ScoreKindClassic:
			if record.Classic == nil {
				return fmt.Errorf("score kind %q without classic extension", record.Score.Kind)
			}
			record.Classic.ID = record.Score.ID
			return tx.Create(record.Classic).Error
		case model.ScoreKindGeneric:
			if record.Generic == nil {
				return fmt.Errorf("score kind %q without generic extension", record.Score.Kind)
			}
			record.Generic.ID = record.Score.ID
			return tx.Create(record.Generic).Error
		}
		return nil
	})
}

func (r *scoreRepository) FindRecordByID(ctx context.Context, id int64) (*model.ScoreRecord, error) {
	var record model.ScoreRecord
	if err := r.db.WithContext(ctx).First(&record.Score, "id = ?", id).Error; err != nil {
		return nil, err
	}

	switch record.Score.Kind {
	case model.ScoreKindClassic:
		var classic model.ScoreClassic
		if err := r.db.WithContext(ctx).First(&classic, "id = ?", id).Error; err != nil {
			return nil, err
		}
		record.Classic = &classic
	case model.ScoreKindGeneric:
		var generic model.ScoreGeneric
		if err := r.db.WithContext(ctx).First(&generic, "id = ?", id).Error; err != nil {
			return nil, err
		}
		record.Generic = &generic
	}

	return &record, nil
}

func (r *scoreRepository) FindByCksm(ctx context.Context, cksm string) (*model.Score, error) {
	var score model.Score
	if err := r.db.WithContext(ctx).Where("cksm = ?", cksm).First(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) ListByUser(ctx context.Context, userID int32) ([]model.Score, error) {
	var scores []model.Score
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

// ClassicPlay pairs a base score row with its classic extension, for
// aggregation over a user's play history.
type ClassicPlay struct {
	Score   model.Score
	Classic model.ScoreClassic
}

func (r *scoreRepository) ListClassicPlays(ctx context.Context, userID int32, mode model.GameMode) ([]ClassicPlay, error) {
	var classics []model.ScoreClassic
	err := r.db.WithContext(ctx).
		Joins("JOIN scores ON scores.id = scores_classic.id").
		Where("scores.user_id = ? AND scores_classic.mode = ?", userID, mode).
		Order("scores_classic.id").
		Find(&classics).Error
	if err != nil {
		return nil, err
	}
	if len(classics) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(classics))
	for i, c := range classics {
		ids[i] = c.ID
	}

	var bases []model.Score
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&bases).Error; err != nil {
		return nil, err
	}
	baseByID := make(map[int64]model.Score, len(bases))
	for _, b := range bases {
		baseByID[b.ID] = b
	}

	plays := make([]ClassicPlay, len(classics))
	for i, c := range classics {
		plays[i] = ClassicPlay{Score: baseByID[c.ID], Classic: c}
	}
	return plays, nil
}

func (r *scoreRepository) MarkVerified(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Score{}).
		Where("id = ?", id).
		Update("verified_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *scoreRepository) Delete(ctx context.Context, id int64) error {
	if r.backend.ForeignKeys {
		return r.db.WithContext(ctx).Delete(&model.Score{}, "id = ?", id).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.ScoreClassic{}, &model.ScoreGeneric{}} {
			if err := tx.Where("id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("score_id = ?", id).Delete(&model.ScorePP{}).Error; err != nil {
			return err
		}
		if err := tx.Where("score_id = ?", id).Delete(&model.Leaderboard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Score{}, "id = ?", id).Error
	})
}
