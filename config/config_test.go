package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, DefaultAIBaseURL, cfg.AIBaseURL)
	require.Equal(t, DefaultModelID, cfg.ModelID)
	require.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	require.Equal(t, DefaultStorePath, cfg.StorePath)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "SERVER_ADDRESS: \":9090\"\nMODEL_ID: from-file\nREQUEST_TIMEOUT: 5s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	t.Setenv("MODEL_ID", "from-env")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.ServerAddress)
	require.Equal(t, "from-env", cfg.ModelID)
	require.Equal(t, "secret", cfg.GeminiAPIKey)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("SERVER_ADDRESS: [unclosed"), 0600))

	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, Config{LogLevel: "DEBUG"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, Config{LogLevel: "warning"}.SlogLevel())
	require.Equal(t, slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, Config{}.SlogLevel())
}
