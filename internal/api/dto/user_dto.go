package dto

import "time"

// RegisterDTO 注册，JSON / 表单 / query 均可
type RegisterDTO struct {
	Username string `json:"username" form:"username" binding:"required" validate:"notblank,max=50"`
	Email    string `json:"email" form:"email" binding:"required" validate:"email,max=255"`
}

// SearchUserDTO 按用户名查找
type SearchUserDTO struct {
	Username string `form:"username" binding:"required"`
}

type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowingDTO struct {
	UserID    uint64   `json:"user_id"`
	Following []uint64 `json:"following"`
}
