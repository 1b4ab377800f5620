package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderNoop, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "openai")
	t.Setenv("GENERATOR_MODEL", "gpt-4o")
	t.Setenv("GENERATOR_TIMEOUT", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "flan-t5")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini", Timeout: time.Minute}
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewNoopProvider(t *testing.T) {
	cfg := Config{Provider: ProviderNoop, Timeout: time.Minute}
	model, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, model)
}
