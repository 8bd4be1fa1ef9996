package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gmpsaude/clinic-scheduler/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := parseToken(c.GetHeader("Authorization"), cfg.JWTSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// OptionalAuthMiddleware popula o contexto quando há token válido, mas
// deixa a requisição seguir anônima quando não há. Usado no cadastro:
// só um admin autenticado escolhe papel.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := parseToken(c.GetHeader("Authorization"), cfg.JWTSecret); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextUserRole, role)
		}
		c.Next()
	}
}

func parseToken(authHeader, secret string) (uint, string, bool) {
	if authHeader == "" {
		return 0, "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", false
	}
	role, _ := claims["role"].(string)

	return uint(userID), role, true
}
