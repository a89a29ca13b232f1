package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatkit/core/config"
)

// Each test uses its own struct type: the loader caches by type, so sharing
// one across tests would make them order-dependent.

func TestLoad_Defaults(t *testing.T) {
	type defaultsConfig struct {
		TTL   time.Duration `env:"TEST_DEFAULTS_TTL" envDefault:"15m"`
		Limit int           `env:"TEST_DEFAULTS_LIMIT" envDefault:"50"`
	}

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 15*time.Minute, cfg.TTL)
	assert.Equal(t, 50, cfg.Limit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	type envConfig struct {
		TTL     time.Duration `env:"TEST_ENV_TTL" envDefault:"15m"`
		Enabled bool          `env:"TEST_ENV_ENABLED" envDefault:"false"`
	}

	t.Setenv("TEST_ENV_TTL", "90s")
	t.Setenv("TEST_ENV_ENABLED", "true")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 90*time.Second, cfg.TTL)
	assert.True(t, cfg.Enabled)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// Changing the environment after the first load has no effect.
	t.Setenv("TEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoad_InvalidValue(t *testing.T) {
	type invalidConfig struct {
		TTL time.Duration `env:"TEST_INVALID_TTL" envDefault:"15m"`
	}

	t.Setenv("TEST_INVALID_TTL", "not-a-duration")

	var cfg invalidConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingFailed)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type panicConfig struct {
		Required string `env:"TEST_PANIC_REQUIRED,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
