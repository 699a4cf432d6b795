package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/pkg/util"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.RegisterUser(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toUserDTO(user))
}

func (s *UserHandler) Follow(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	targetID, err := parseID(c, "target_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.userSvc.FollowUser(c.Request.Context(), userID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "User followed successfully")
}

func (s *UserHandler) GetUser(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

// SearchUser 按用户名查找，不存在返回 404
func (s *UserHandler) SearchUser(c *gin.Context) {
	var req dto.SearchUserDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := s.userSvc.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, service.ErrUserNotFound)
		return
	}
	response.Success(c, toUserDTO(user))
}

func (s *UserHandler) GetFollowing(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	ids, err := s.userSvc.GetFollowing(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FollowingDTO{UserID: userID, Following: ids})
}

func (s *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.userSvc.DeleteUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "User deleted successfully")
}
