package model

import (
	"time"
)

// Like 同一 (user, post) 至多一条，由唯一索引兜底
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_like_user_post,priority:1" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_like_user_post,priority:2;index:idx_like_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
