package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingRules installs custom validation tags on gin's binding
// engine. Called once during bootstrap.
func RegisterBindingRules() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		return IsValidStudentID(fl.Field().String())
	})
}
