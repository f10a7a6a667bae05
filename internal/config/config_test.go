package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"matterdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3.2:1b", cfg.Ollama.DefaultModel)
	assert.Equal(t, 5*time.Minute, cfg.Ollama.Timeout)
	assert.Equal(t, 3, cfg.Ollama.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Ollama.RetryDelay)
	assert.True(t, cfg.Ollama.LogPrompts)
	assert.False(t, cfg.Ollama.LogResponses)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
	assert.Empty(t, cfg.Extraction.Model)
	assert.Equal(t, "native", cfg.Document.Provider)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, []string{"http://localhost:4200", "https://localhost:4200"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(25*1024*1024), cfg.Contract.MaxFileSizeBytes())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("MATTERDESK_OLLAMA_BASE_URL", "http://ollama:11434/")
	t.Setenv("MATTERDESK_OLLAMA_TIMEOUT", "90s")
	t.Setenv("MATTERDESK_OLLAMA_LOG_PROMPTS", "false")
	t.Setenv("MATTERDESK_EXTRACTION_CONCURRENCY", "10")
	t.Setenv("MATTERDESK_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MATTERDESK_SERVER_ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://ollama:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Ollama.Timeout)
	assert.False(t, cfg.Ollama.LogPrompts)
	assert.Equal(t, 10, cfg.Extraction.Concurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Server.IsDevelopment())
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)

	t.Setenv("MATTERDESK_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	yaml := "ollama:\n  default_model: mistral\n  max_retries: 5\ncontract:\n  archive_uploads: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("MATTERDESK_OLLAMA_MAX_RETRIES", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "mistral", cfg.Ollama.DefaultModel)
	assert.Equal(t, 2, cfg.Ollama.MaxRetries, "env wins over the file")
	assert.True(t, cfg.Contract.ArchiveUploads)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ollama: [unclosed"), 0o600))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, config.InitLogger(config.LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, config.InitLogger(config.LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, config.InitLogger(config.LogConfig{Level: "loud"}))
}
