package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate        *validator.Validate
	poolNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,63}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("poolname", func(fl validator.FieldLevel) bool {
		return IsValidPoolName(fl.Field().String())
	})
}

// ValidateStruct validates obj against its `validate` tags.
func ValidateStruct(obj interface{}) error {
	return validate.Struct(obj)
}

// IsValidPoolName reports whether name can be used as a pool identifier.
func IsValidPoolName(name string) bool {
	return poolNamePattern.MatchString(name)
}
