package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - единый конверт ошибки для всех эндпоинтов
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler пишет AppError в ответ Gin.
// При Debug=true неизвестные ошибки отдаются с исходным текстом.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			// Текст системной ошибки наружу не уходит
			appErr.Message = "Failed to process request"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - шорткат с выключенным Debug
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, err)
}

// AsAppError достает *AppError из цепочки ошибок
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
