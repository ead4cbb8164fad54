package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadInTempDir(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("PHOTO_STORAGE_PATH", filepath.Join(dir, "images"))

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadInTempDir(t)

	assert.Equal(t, ":5000", cfg.ServerAddress)
	assert.Equal(t, int64(16), cfg.PhotoStorage.MaxFileSizeMB)
	assert.Contains(t, cfg.PhotoStorage.AllowedExtensions, ".jpg")
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Keyword.BaseURL)
	assert.Equal(t, 10, cfg.Keyword.TimeoutSeconds)
	assert.Equal(t, "+91", cfg.Share.DefaultCountryCode)
	assert.Equal(t, "X-API-Key", cfg.Security.APIKeyHeader)
	assert.False(t, cfg.UseSQLite())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("DATABASE_PATH", "/tmp/photos.db")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("SHARE_COUNTRY_CODE", "+44")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := loadInTempDir(t)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.True(t, cfg.UseSQLite())
	assert.Equal(t, "gsk_test", cfg.Keyword.APIKey)
	assert.Equal(t, "+44", cfg.Share.DefaultCountryCode)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"serverAddress": ":9090",
		"share": {"defaultCountryCode": "+1"}
	}`), 0644))

	t.Setenv("CONFIG_PATH", configPath)
	cfg := loadInTempDir(t)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "+1", cfg.Share.DefaultCountryCode)
}

func TestLoadCreatesDirectories(t *testing.T) {
	cfg := loadInTempDir(t)

	info, err := os.Stat(cfg.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Stat(cfg.PhotoStorage.BasePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.True(t, filepath.IsAbs(cfg.PhotoStorage.BasePath))
}

func TestKeywordAPIKeyNotSerialized(t *testing.T) {
	cfg := defaultConfig()
	cfg.Keyword.APIKey = "gsk_secret"

	// the json:"-" tag keeps the key out of any marshaled config
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gsk_secret")
}
