package handlers

import (
	"fmt"
	"strconv"

	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/validator"
	"portfolia_backend/pkg/apperrors"
	"portfolia_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context.
// Требует включенного DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// Методы привязки и валидации

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed (query)", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error (query)", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// Обработка сервисных ошибок

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// Вспомогательные функции

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	ctx := c.Request.Context()

	userIDVal, exists := c.Get("userID")
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok || userIDStr == "" {
		logger.CtxWarn(ctx, "Unauthorized access: invalid userID in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}

	return userIDStr, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const defaultPage = 1
	const defaultPageSize = 20
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
