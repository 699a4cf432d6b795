package util

import (
	"Murmur/internal/service"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateDTO 返回的错误均可被识别为 service.ErrParamInvalid
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: field [%s] failed rule [%s]",
				service.ErrParamInvalid,
				firstError.Field(),
				firstError.Tag())
		}
		return fmt.Errorf("%w: %v", service.ErrParamInvalid, err)
	}
	return nil
}
