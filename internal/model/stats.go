package model

import "time"

// UserStats holds the aggregate counters for one user in one mode. One row
// per mode the user has actually played.
type UserStats struct {
	UserID             int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Mode               GameMode  `gorm:"primaryKey" json:"mode"`
	TotalScore         int64     `gorm:"not null" json:"total_score"`
	RankedScore        int64     `gorm:"not null" json:"ranked_score"`
	Playcount          int32     `gorm:"not null" json:"playcount"`
	TotalHits          int32     `gorm:"not null" json:"total_hits"`
	Accuracy           float64   `gorm:"not null" json:"accuracy"`
	MaxCombo           int32     `gorm:"not null" json:"max_combo"`
	TotalSecondsPlayed int32     `gorm:"not null" json:"total_seconds_played"`
	Count300           int32     `gorm:"not null" json:"count300"`
	Count100           int32     `gorm:"not null" json:"count100"`
	Count50            int32     `gorm:"not null" json:"count50"`
	CountMiss          int32     `gorm:"not null" json:"count_miss"`
	CountFailed        int32     `gorm:"not null" json:"count_failed"`
	CountQuit          int32     `gorm:"not null" json:"count_quit"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserStats) TableName() string { return "user_stats" }
