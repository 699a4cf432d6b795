package handler

import (
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeSvc service.LikeService
}

func NewLikeHandler(likeSvc service.LikeService) *LikeHandler {
	return &LikeHandler{likeSvc: likeSvc}
}

func (s *LikeHandler) LikePost(c *gin.Context) {
	s.like(c, "user_id", "post_id")
}

// LikePostByPost /posts/:id/like/:user_id 的别名入口
func (s *LikeHandler) LikePostByPost(c *gin.Context) {
	s.like(c, "user_id", "id")
}

func (s *LikeHandler) UnlikePost(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.likeSvc.UnlikePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Post unliked successfully")
}

func (s *LikeHandler) like(c *gin.Context, userKey, postKey string) {
	userID, err := parseID(c, userKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, err := parseID(c, postKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.likeSvc.LikePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Post liked successfully")
}
