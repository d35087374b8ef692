package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 2, cfg.WorkerPoolSize)
	assert.True(t, cfg.AllowNegativeStock)
	assert.Equal(t, 3, cfg.PaymentMaxRetries)
	assert.Equal(t, 10*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, 4*time.Hour, cfg.ProductCacheTTL)
	assert.Equal(t, "Toko", cfg.StoreName)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "false")
	t.Setenv("PAYMENT_MAX_RETRIES", "5")
	t.Setenv("RECONCILE_INTERVAL", "0s")
	t.Setenv("STORE_NAME", "Toko Makmur")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.AllowNegativeStock)
	assert.Equal(t, 5, cfg.PaymentMaxRetries)
	assert.Zero(t, cfg.ReconcileInterval)
	assert.Equal(t, "Toko Makmur", cfg.StoreName)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PAYMENT_MAX_RETRIES", "0")

	_, err := Load()
	assert.Error(t, err)
}
