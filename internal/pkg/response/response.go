package response

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/service"
	stdjson "encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Created 资源创建成功
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// Message 只返回提示信息
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: message,
	})
}

// Fail 失败返回封装，HTTP 状态码与 code 一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// BindError 请求体或参数绑定失败
func BindError(c *gin.Context, err error) {
	log.DebugContext(c.Request.Context(), "bind request failed", "err", err)
	Error(c, fmt.Errorf("%w: %w", service.ErrParamInvalid, err))
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, service.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	// gin 默认用 encoding/json 绑定，带 go_json 构建标签时换成 goccy
	var stdTypeErr *stdjson.UnmarshalTypeError
	if errors.As(err, &stdTypeErr) {
		Fail(c, service.BadRequest, typeErrorMessage(stdTypeErr.Field, stdTypeErr.Type.String()))
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		Fail(c, service.BadRequest, typeErrorMessage(typeErr.Field, typeErr.Type.String()))
		return
	}
	var stdSyntaxErr *stdjson.SyntaxError
	var syntaxErr *json.SyntaxError
	if errors.As(err, &stdSyntaxErr) || errors.As(err, &syntaxErr) {
		Fail(c, service.BadRequest, service.ErrParamInvalid.Error()+": malformed json")
		return
	}

	code, ok := service.CodeOf(err)
	if !ok || code == service.InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, service.InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, err.Error())
}

func typeErrorMessage(field, want string) string {
	if field == "" {
		return service.ErrParamInvalid.Error()
	}
	return fmt.Sprintf("%s: %s must be %s", service.ErrParamInvalid, field, want)
}
