package model

// Leaderboard is the "current best" pointer for one (beatmap, mode,
// ranking type) slot, not score history. The composite key guarantees at most
// one row per slot; updates go through an upsert keyed on it.
type Leaderboard struct {
	BeatmapID   int32       `gorm:"primaryKey;autoIncrement:false" json:"beatmap_id"`
	Mode        GameMode    `gorm:"primaryKey" json:"mode"`
	RankingType RankingType `gorm:"primaryKey" json:"ranking_type"`
	UserID      int32       `gorm:"not null" json:"user_id"`
	ScoreID     int64       `gorm:"not null" json:"score_id"`
}

func (Leaderboard) TableName() string { return "leaderboard" }
