package bootstrap

import (
	"time"

	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/token"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenService,
	),
)

func NewTokenService(cfg config.Config) *token.Service {
	return token.NewService(cfg.Auth.Secret, time.Hour)
}
