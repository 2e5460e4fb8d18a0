package model

import (
	"time"
)

// User holds the three name variants: the display names and their
// case/width-normalized "safe" projections used for lookups. Name, safe name,
// unicode-safe name and email are each globally unique.
type User struct {
	ID              int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"size:16;uniqueIndex;not null" json:"name"`
	NameSafe        string    `gorm:"size:16;uniqueIndex;not null" json:"name_safe"`
	NameUnicode     *string   `gorm:"size:10;uniqueIndex" json:"name_unicode,omitempty"`
	NameUnicodeSafe *string   `gorm:"size:10;uniqueIndex" json:"name_unicode_safe,omitempty"`
	Password        string    `gorm:"not null" json:"-"`
	Email           string    `gorm:"size:64;uniqueIndex;not null" json:"email"`
	Country         *string   `gorm:"size:8" json:"country,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Privilege struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	Priority    int16     `gorm:"not null;default:1000" json:"priority"`
	CreatorID   *int32    `json:"creator_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Privilege) TableName() string { return "privileges" }

// UserPrivilege joins a user to a privilege with the user who granted it.
// The composite (user_id, privilege_id) key means a user can hold many
// privileges but each one at most once.
type UserPrivilege struct {
	UserID      int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PrivilegeID int64     `gorm:"primaryKey;autoIncrement:false" json:"privilege_id"`
	GrantorID   int32     `gorm:"not null" json:"grantor_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserPrivilege) TableName() string { return "user_privileges" }

type UserSettings struct {
	UserID                int32       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	DisplayUnicodeName    bool        `gorm:"not null;default:false" json:"display_unicode_name"`
	ScoreboardRankingType RankingType `gorm:"not null;default:score_v1" json:"scoreboard_ranking_type"`
	InvisibleOnline       bool        `gorm:"not null;default:false" json:"invisible_online"`
}

func (UserSettings) TableName() string { return "user_settings" }

type Follower struct {
	UserID    int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FollowID  int32     `gorm:"primaryKey;autoIncrement:false" json:"follow_id"`
	Remark    *string   `gorm:"size:16" json:"remark,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Follower) TableName() string { return "followers" }

type FavouriteBeatmap struct {
	UserID       int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BeatmapsetID int32     `gorm:"primaryKey;autoIncrement:false" json:"beatmapset_id"`
	Comment      *string   `gorm:"size:15" json:"comment,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FavouriteBeatmap) TableName() string { return "favourite_beatmaps" }

// ClientHardwareRecord tracks the hardware fingerprints a user's client has
// logged in with. Identity is the full fingerprint tuple.
type ClientHardwareRecord struct {
	UserID       int32     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	TimeOffset   int32     `gorm:"not null" json:"time_offset"`
	PathHash     string    `gorm:"primaryKey;size:32" json:"path_hash"`
	Adapters     string    `gorm:"not null" json:"adapters"`
	AdaptersHash string    `gorm:"primaryKey;size:32" json:"adapters_hash"`
	UninstallID  string    `gorm:"primaryKey;size:32" json:"uninstall_id"`
	DiskID       string    `gorm:"primaryKey;size:32" json:"disk_id"`
	UsedTimes    int32     `gorm:"not null;default:1" json:"used_times"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClientHardwareRecord) TableName() string { return "client_hardware_records" }
