package dto

import (
	"sync"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the "runmode" and "period" tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("runmode", validateRunMode)
		_ = v.RegisterValidation("period", validatePeriod)
	})
}

func validateRunMode(fl validator.FieldLevel) bool {
	_, err := domain.ParseRunMode(fl.Field().String())
	return err == nil
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, err := domain.ParsePeriod(fl.Field().String())
	return err == nil
}
