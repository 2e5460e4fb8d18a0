package model

import (
	"encoding/json"
	"time"
)

// Score is the base row shared by every submitted score. Kind names the
// extension table that owns the mode-specific payload; exactly one extension
// row must exist per score, which the write path enforces inside a single
// transaction (the schema cannot express the sum type).
type Score struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	MapHash    string     `gorm:"size:32;not null" json:"map_hash"`
	UserID     int32      `gorm:"not null" json:"user_id"`
	Cksm       string     `gorm:"uniqueIndex;not null" json:"cksm"`
	Kind       ScoreKind  `gorm:"not null" json:"kind"`
	Playtime   int32      `gorm:"not null" json:"playtime"`
	Completed  bool       `gorm:"not null;default:false" json:"completed"`
	Invisible  bool       `gorm:"not null;default:false" json:"invisible"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"` // non-nil means verified
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Score) TableName() string { return "scores" }

// ScoreClassic extends Score for the classic game modes. It shares its
// primary key with the base row.
type ScoreClassic struct {
	ID            int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Mode          GameMode     `gorm:"not null" json:"mode"`
	ScoreVersion  ScoreVersion `gorm:"not null" json:"score_version"`
	Score         int32        `gorm:"not null" json:"score"`
	Accuracy      float64      `gorm:"not null" json:"accuracy"`
	Combo         int32        `gorm:"not null" json:"combo"`
	Mods          int32        `gorm:"not null" json:"mods"`
	N300          int32        `gorm:"not null" json:"n300"`
	N100          int32        `gorm:"not null" json:"n100"`
	N50           int32        `gorm:"not null" json:"n50"`
	Miss          int32        `gorm:"not null" json:"miss"`
	Geki          int32        `gorm:"not null" json:"geki"`
	Katu          int32        `gorm:"not null" json:"katu"`
	Perfect       bool         `gorm:"not null;default:false" json:"perfect"`
	Grade         ScoreGrade   `gorm:"not null" json:"grade"`
	ClientFlags   int32        `gorm:"not null" json:"client_flags"`
	ClientVersion string       `gorm:"not null" json:"client_version"`
}

func (ScoreClassic) TableName() string { return "scores_classic" }

// ScoreGeneric extends Score for modes without a dedicated typed table. The
// payload is opaque; Score is duplicated out of it for cheap comparison.
type ScoreGeneric struct {
	ID    int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Mode  string          `gorm:"not null" json:"mode"`
	Score int32           `gorm:"not null" json:"score"`
	JSON  json.RawMessage `gorm:"type:json;not null" json:"json"`
}

func (ScoreGeneric) TableName() string { return "scores_generic" }

// ScoreRecord is the tagged-union view of a score: the base row plus exactly
// one extension, selected by Score.Kind.
type ScoreRecord struct {
	Score   Score
	Classic *ScoreClassic
	Generic *ScoreGeneric
}

// Extension returns the extension row matching the discriminator, or nil if
// the record is inconsistent.
func (r *ScoreRecord) Extension() any {
	switch r.Score.Kind {
	case ScoreKindClassic:
		if r.Classic != nil {
			return r.Classic
		}
	case ScoreKindGeneric:
		if r.Generic != nil {
			return r.Generic
		}
	}
	return nil
}
