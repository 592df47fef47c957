package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Auth ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (access, refresh).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInsufficientPermissions - используется, когда не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Portfolio ---

// ErrPortfolioNotFound - портфолио не существует.
var ErrPortfolioNotFound = New(
	CodeNotFound,
	"portfolio",
	"Portfolio not found",
	http.StatusNotFound,
)

// ErrNotPortfolioOwner - действие доступно только владельцу портфолио.
var ErrNotPortfolioOwner = New(
	CodeForbidden,
	"portfolio",
	"Only the portfolio owner can perform this action",
	http.StatusForbidden,
)

// ErrPortfolioPrivate - портфолио скрыто и недоступно без одобренного запроса.
var ErrPortfolioPrivate = New(
	CodeForbidden,
	"portfolio",
	"This portfolio is private",
	http.StatusForbidden,
)

// --- Access requests ---

// ErrAccessRequestExists - запрос для пары (портфолио, пользователь) уже существует.
// По контракту API дубликат отдается как 400, а не 409.
var ErrAccessRequestExists = New(
	CodeAlreadyExists,
	"access_request",
	"Access request already exists",
	http.StatusBadRequest,
)

// ErrAccessRequestNotFound - запрос не найден.
var ErrAccessRequestNotFound = New(
	CodeNotFound,
	"access_request",
	"Access request not found",
	http.StatusNotFound,
)

// ErrOwnPortfolioRequest - владелец запрашивает доступ к своему же портфолио.
var ErrOwnPortfolioRequest = New(
	CodeInvalidOperation,
	"access_request",
	"You already own this portfolio",
	http.StatusBadRequest,
)

// ErrRequestAlreadyDecided - запрос уже одобрен или отклонен, повторное решение невозможно.
var ErrRequestAlreadyDecided = New(
	CodeInvalidStatus,
	"access_request",
	"Access request has already been decided",
	http.StatusConflict,
)

// --- Notifications ---

// ErrNotificationNotFound - уведомление не найдено или принадлежит другому пользователю.
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)
