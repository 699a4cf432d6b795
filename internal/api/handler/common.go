package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/model"
	"Murmur/internal/service"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// parseID 解析路径参数中的 id
func parseID(c *gin.Context, key string) (uint64, error) {
	raw := c.Param(key)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", service.ErrParamInvalid, key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", service.ErrParamInvalid, key, raw)
	}
	return id, nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	out := &dto.UserDTO{}
	_ = copier.Copy(out, user)
	return out
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{}
	_ = copier.Copy(out, post)
	_ = copier.Copy(&out.Author, &post.Author)
	return out
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostDTO(post))
	}
	return out
}
