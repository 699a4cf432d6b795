package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/pkg/util"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
	likeSvc service.LikeService
}

func NewPostHandler(postSvc service.PostService, likeSvc service.LikeService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
		likeSvc: likeSvc,
	}
}

// CreatePost 路径中的 id 为作者 id
func (s *PostHandler) CreatePost(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePostDTO
	if err = c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, req.Title, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toPostDTO(post))
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var req dto.ListPostsDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if req.UserID != nil {
		posts, err := s.postSvc.GetPostsByUser(ctx, *req.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, toPostDTOs(posts))
		return
	}

	posts, err := s.postSvc.GetAllPosts(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTOs(posts))
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toPostDTO(post))
}

func (s *PostHandler) GetLikeCount(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := s.likeSvc.GetLikeCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeCountDTO{PostID: postID, Likes: count})
}
