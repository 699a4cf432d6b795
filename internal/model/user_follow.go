package model

import "time"

type UserFollow struct {
	FollowerID  uint64    `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_following_id" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

// Models 需要自动迁移的表
func Models() []any {
	return []any{&User{}, &Post{}, &Like{}, &UserFollow{}}
}
