package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE", "REQUEST_TIMEOUT",
		"TELEGRAM_BOT_TOKEN", "WEBHOOK_URL", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Nil(t, cfg.GeminiTemperature)
	assert.False(t, cfg.HasGeminiKey())
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadFrom_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "  secret  ")
	t.Setenv("GEMINI_TEMPERATURE", "0.3")
	t.Setenv("REQUEST_TIMEOUT", "15s")

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.True(t, cfg.HasGeminiKey())
	require.NotNil(t, cfg.GeminiTemperature)
	assert.InDelta(t, 0.3, *cfg.GeminiTemperature, 1e-6)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadFrom_LegacyAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.GeminiAPIKey)
}

func TestLoadFrom_DotEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("GEMINI_API_KEY=from-file\nGEMINI_MODEL=gemini-2.0-flash\n"), 0o600))
	t.Setenv("GEMINI_MODEL", "from-env")

	cfg, err := LoadFrom(file)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "from-env", cfg.GeminiModel)
}

func TestLoadFrom_MissingFileIsFine(t *testing.T) {
	clearEnv(t)

	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.env"))

	assert.NoError(t, err)
}

func TestLoadFrom_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := LoadFrom("")
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "0s")
	_, err = LoadFrom("")
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT must be positive")
}
