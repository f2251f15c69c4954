package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom tags used by request types.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("pastdate", isPastDate)
}

func isPastDate(fl validator.FieldLevel) bool {
	var d Date
	switch v := fl.Field().Interface().(type) {
	case Date:
		d = v
	case *Date:
		if v == nil {
			return true
		}
		d = *v
	case time.Time:
		d = DateOf(v)
	default:
		return false
	}
	return d.Before(DateOf(time.Now()))
}
