package model

import (
	"time"
)

type Post struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	AuthorID   uint64    `gorm:"not null;index:idx_author_id" json:"author_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	LikesCount int64     `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联关系
	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
}

func (Post) TableName() string {
	return "posts"
}
