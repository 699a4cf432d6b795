package util

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDTO(t *testing.T) {
	ok := dto.RegisterDTO{Username: "alice", Email: "a@x.io"}
	assert.NoError(t, ValidateDTO(&ok))

	blank := dto.RegisterDTO{Username: "   ", Email: "a@x.io"}
	err := ValidateDTO(&blank)
	assert.ErrorIs(t, err, service.ErrParamInvalid)
	assert.Contains(t, err.Error(), "Username")

	badEmail := dto.RegisterDTO{Username: "alice", Email: "not-an-email"}
	assert.ErrorIs(t, ValidateDTO(&badEmail), service.ErrParamInvalid)

	post := dto.CreatePostDTO{Title: "t", Body: "\n"}
	assert.ErrorIs(t, ValidateDTO(&post), service.ErrParamInvalid)
}
