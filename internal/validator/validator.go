package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError — это кастомный тип ошибки, который содержит
// карту ошибок "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator — это наша обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New()

	// Используем JSON-теги в сообщениях об ошибках, чтобы клиент
	// видел имена полей так, как они определены в DTO.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Какая-то другая ошибка (например, ошибка рефлексии)
		return err
	}

	customErrors := make(map[string]string)

	for _, fe := range validationErrors {
		// fe.Field() вернет имя из json-тега благодаря RegisterTagNameFunc
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

// getErrorMessage - вспомогательная функция для генерации сообщений.
func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at most %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "skill_level":
		return "Skill level must be between 0 and 5"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
