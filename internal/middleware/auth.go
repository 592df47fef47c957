package middleware

import (
	"net/http"
	"strings"

	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Сохраняем claims в контекст запроса и в контекст логгера
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// OptionalAuthMiddleware - как AuthMiddleware, но пропускает анонимов.
// Нужен для просмотра портфолио: публичные видны без токена,
// а залогиненный зритель должен опознаваться для gating и журнала.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			// Протухший токен на публичном маршруте не валит запрос
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RoleMiddleware - middleware ограничения по ролям
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			// Попытка преобразовать из string, если роль сохранена как строка
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
