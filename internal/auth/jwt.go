package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	tokenTTL  = 60 * time.Minute
)

var ErrTokenInvalid = errors.New("invalid or expired token")

// Claims - полезная нагрузка access-токена.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Init настраивает секрет и время жизни access-токенов.
// Вызывается один раз при старте приложения (и в тестах).
func Init(secret string, ttlMinutes int) {
	jwtSecret = []byte(secret)
	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// GenerateToken выпускает подписанный access-токен для пользователя.
func GenerateToken(userID, role string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    "portfolia",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Защита от подмены алгоритма подписи
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("portfolia"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
