package server

import (
	"regexp"
	"sync"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	validatorOnce sync.Once
	validatorErr  error
)

func validUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.UnitMeters, model.UnitSets:
		return true
	}
	return false
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the unit and phone tags to gin's validator
func RegisterValidators() error {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if validatorErr = v.RegisterValidation("unit", validUnit); validatorErr != nil {
			return
		}
		validatorErr = v.RegisterValidation("phone", validPhone)
	})
	return validatorErr
}
