package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("invalid parameter")
	ErrUserNotFound       = errors.New("user not found")
	ErrTargetUserNotFound = errors.New("target user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrPostAlreadyLiked   = errors.New("post already liked by the user")
	UnExpectedError       = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrTargetUserNotFound: NotFound,
	ErrPostNotFound:       NotFound,
	ErrLikeNotFound:       NotFound,
	ErrPostAlreadyLiked:   Conflict,
	UnExpectedError:       InternalServerError,
}

// CodeOf 返回 err 链上第一个已登记错误对应的状态码
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
