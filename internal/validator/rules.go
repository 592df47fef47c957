package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	// skill_level: уровень навыка 0..5
	_ = v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().Int()
		return level >= 0 && level <= 5
	})
}
