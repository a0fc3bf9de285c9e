//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/token"
)

// ServiceToken mints a valid caller token for the configured secret.
func ServiceToken(t *testing.T, cfg config.AuthConfig, serviceName string) string {
	t.Helper()
	svc := token.NewService(cfg.Secret, time.Hour)
	tok, err := svc.GenerateToken(serviceName)
	require.NoError(t, err)
	return tok
}

// ExpiredServiceToken mints a token that is already past its expiry.
func ExpiredServiceToken(t *testing.T, cfg config.AuthConfig, serviceName string) string {
	t.Helper()
	svc := token.NewService(cfg.Secret, 1*time.Millisecond)
	tok, err := svc.GenerateToken(serviceName)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return tok
}
