package middleware

import (
	"log/slog"

	"promo-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exists for browser-based admin tooling; service callers
// never preflight. Idempotency-Key must stay in the allowed headers or
// browser retries silently lose their request key.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("cors enabled", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
