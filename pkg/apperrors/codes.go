package apperrors

// ErrorCode - машиночитаемый код ошибки в теле ответа.
// Клиенты разбирают код, а не текст сообщения.
type ErrorCode string

const (
	// Системный слой
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Бизнес-логика, коды переиспользуются фабриками из domain.go
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)
