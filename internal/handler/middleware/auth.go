package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"promo-engine/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates calling services. Every caller presents an
// HS256 bearer token naming itself; there is no per-user identity here.
type AuthMiddleware struct {
	tokens *token.Service
}

const ctxCallerServiceKey = "caller_service"

func NewAuthMiddleware(tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bearer string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			bearer = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if bearer == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(bearer)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxCallerServiceKey, claims.Service)
		c.Next()
	}
}

// GetCallerService returns the authenticated caller name, or "" before
// authentication ran.
func GetCallerService(c *gin.Context) string {
	if service, exists := c.Get(ctxCallerServiceKey); exists {
		if s, ok := service.(string); ok {
			return s
		}
	}
	return ""
}
