package val

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const tagFuture = "future"

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation(tagFuture, isFuture)
}

// isFuture accepts a time.Time that lies after the current moment.
func isFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now())
}
