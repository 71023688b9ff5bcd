package middleware

import (
	"time"

	"redacao-app/config"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators wires custom binding rules into gin's validator.
// "futuredate" enforces the scheduling invariant: a scheduled publish
// timestamp must be strictly after now at submission time.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(config.Now())
	})
}
