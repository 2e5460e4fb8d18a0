package model

import (
	"time"
)

// Beatmap metadata, keyed by the server-assigned map id. Once a map is ranked
// the Immutable flag is set and its difficulty fields stop being refreshed.
type Beatmap struct {
	Bid          int32      `gorm:"primaryKey;autoIncrement:false" json:"bid"`
	Sid          int32      `gorm:"not null" json:"sid"`
	Md5          string     `gorm:"size:32;uniqueIndex;not null" json:"md5"`
	Title        string     `gorm:"not null" json:"title"`
	FileName     string     `gorm:"not null" json:"file_name"`
	Artist       string     `gorm:"not null" json:"artist"`
	DiffName     string     `gorm:"not null" json:"diff_name"`
	OriginServer string     `gorm:"not null" json:"origin_server"`
	MapperName   string     `gorm:"not null" json:"mapper_name"`
	MapperID     string     `gorm:"not null" json:"mapper_id"`
	RankStatus   RankStatus `gorm:"not null;default:Pending" json:"rank_status"`
	GameMode     GameMode   `gorm:"not null" json:"game_mode"`
	Stars        float64    `gorm:"not null" json:"stars"`
	Bpm          float64    `gorm:"not null" json:"bpm"`
	Cs           float64    `gorm:"not null" json:"cs"`
	Od           float64    `gorm:"not null" json:"od"`
	Ar           float64    `gorm:"not null" json:"ar"`
	Hp           float64    `gorm:"not null" json:"hp"`
	Length       int32      `gorm:"not null" json:"length"`
	LengthDrain  int32      `gorm:"not null" json:"length_drain"`
	Source       *string    `json:"source,omitempty"`
	Tags         *string    `json:"tags,omitempty"`
	GenreID      *int16     `json:"genre_id,omitempty"`
	LanguageID   *int16     `json:"language_id,omitempty"`
	Storyboard   *bool      `json:"storyboard,omitempty"`
	Video        *bool      `json:"video,omitempty"`
	ObjectCount  *int32     `json:"object_count,omitempty"`
	SliderCount  *int32     `json:"slider_count,omitempty"`
	SpinnerCount *int32     `json:"spinner_count,omitempty"`
	MaxCombo     *int32     `json:"max_combo,omitempty"`
	Immutable    bool       `gorm:"not null;default:false" json:"immutable"`
	LastUpdate   time.Time  `gorm:"autoCreateTime" json:"last_update"`
	UploadTime   time.Time  `gorm:"autoCreateTime" json:"upload_time"`
	ApprovedTime *time.Time `json:"approved_time,omitempty"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Beatmap) TableName() string { return "beatmaps" }

type BeatmapRating struct {
	UserID    int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MapMd5    string    `gorm:"primaryKey;size:32" json:"map_md5"`
	Rating    int8      `gorm:"not null" json:"rating"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BeatmapRating) TableName() string { return "beatmap_ratings" }
