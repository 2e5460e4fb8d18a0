package model

import "time"

// Chat entities are persisted here for relationship-graph completeness; the
// real-time delivery layer lives outside this service.

type Channel struct {
	ID          int64       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ChannelType ChannelType `gorm:"not null" json:"channel_type"`
	Name        *string     `gorm:"uniqueIndex" json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Icon        *string     `json:"icon,omitempty"`
	AutoJoin    bool        `gorm:"not null;default:false" json:"auto_join"`
	CreatorID   *int64      `json:"creator_id,omitempty"`
}

func (Channel) TableName() string { return "channels" }

type ChannelUser struct {
	ChannelID int64 `gorm:"primaryKey;autoIncrement:false" json:"channel_id"`
	UserID    int32 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
}

func (ChannelUser) TableName() string { return "channel_users" }

type ChannelPrivilege struct {
	ChannelID           int64             `gorm:"primaryKey;autoIncrement:false" json:"channel_id"`
	Handle              ChannelHandleType `gorm:"primaryKey" json:"handle"`
	RequiredPrivilegeID int64             `gorm:"not null" json:"required_privilege_id"`
}

func (ChannelPrivilege) TableName() string { return "channel_privileges" }

type ChatMessage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID      int32     `gorm:"not null" json:"sender_id"`
	ChannelID     int64     `gorm:"not null" json:"channel_id"`
	Timestamp     time.Time `gorm:"autoCreateTime" json:"timestamp"`
	ContentString string    `gorm:"type:text;not null" json:"content_string"`
	ContentHtml   *string   `gorm:"type:text" json:"content_html,omitempty"`
	IsAction      bool      `gorm:"not null;default:false" json:"is_action"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
