package dto

import "time"

type CreatePostDTO struct {
	Title string `json:"title" form:"title" binding:"required" validate:"notblank,max=255"`
	Body  string `json:"body" form:"body" binding:"required" validate:"notblank"`
}

// ListPostsDTO user_id 为空时返回全部帖子
type ListPostsDTO struct {
	UserID *uint64 `form:"user_id"`
}

type PostDTO struct {
	ID         uint64    `json:"id"`
	AuthorID   uint64    `json:"author_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	Author     UserDTO   `json:"author" copier:"-"`
}

type LikeCountDTO struct {
	PostID uint64 `json:"post_id"`
	Likes  int64  `json:"likes"`
}
