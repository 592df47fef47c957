package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - ошибка приложения с кодом, доменом и HTTP статусом.
// Сервисы возвращают ее вместо голых error, хендлеры маппят в ответ.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New создает ошибку без вложенной причины
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap оборачивает причину, сохраняя ее для errors.Is/As
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails добавляет структурированные детали к ответу
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON прячет Err и HTTPCode из тела ответа
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is проксирует errors.Is, чтобы вызывающим не импортировать оба пакета
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As проксирует errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Общие хелперы без привязки к домену ---

// InternalError оборачивает неизвестную системную ошибку
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Failed to process request", http.StatusInternalServerError)
}

// ValidationError создает ошибку валидации с деталями
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// NewUnauthorizedError создает ошибку авторизации
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// NewForbiddenError создает ошибку доступа
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewBadRequestError создает ошибку 400
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
