package model

import "encoding/json"

// ScorePP is a derived performance rating for one score under one pp
// algorithm version. Rows for different versions coexist so recomputation
// never destroys prior results.
type ScorePP struct {
	ScoreID int64           `gorm:"primaryKey;autoIncrement:false" json:"score_id"`
	Mode    GameMode        `gorm:"primaryKey" json:"mode"`
	Version PpVersion       `gorm:"primaryKey;column:pp_version" json:"pp_version"`
	Pp      float64         `gorm:"not null" json:"pp"`
	RawPp   json.RawMessage `gorm:"type:json" json:"raw_pp,omitempty"`
}

func (ScorePP) TableName() string { return "score_pp" }

// UserPP is the aggregated performance rating per user, mode and pp version.
type UserPP struct {
	UserID  int32           `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Mode    GameMode        `gorm:"primaryKey" json:"mode"`
	Version PpVersion       `gorm:"primaryKey;column:pp_version" json:"pp_version"`
	Pp      float64         `gorm:"not null" json:"pp"`
	RawPp   json.RawMessage `gorm:"type:json" json:"raw_pp,omitempty"`
}

func (UserPP) TableName() string { return "user_pp" }
