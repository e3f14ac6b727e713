package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

var (
	roleTag  = "role"
	roleText = "must be one of STUDENT, TEACHER, PARENT or ADMIN"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// roleValidation checks that the provided role is in the closed Role set.
func roleValidation(fl validator.FieldLevel) bool {
	if role, ok := fl.Field().Interface().(Role); ok {
		return role.IsValid()
	}
	return false
}
