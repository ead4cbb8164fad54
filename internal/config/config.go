package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string       `json:"serverAddress"`
	PublicBaseURL string       `json:"publicBaseUrl"`
	DataDir       string       `json:"dataDir"`
	DatabasePath  string       `json:"databasePath"`
	PhotoStorage  PhotoStorage `json:"photoStorage"`
	Keyword       Keyword      `json:"keyword"`
	Share         Share        `json:"share"`
	Security      Security     `json:"security"`
	CORS          CORS         `json:"cors"`
}

// PhotoStorage configuration
type PhotoStorage struct {
	BasePath          string   `json:"basePath"`
	MaxFileSizeMB     int64    `json:"maxFileSizeMB"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

// Keyword holds the external keyword-model settings. An empty APIKey
// disables the model and keyword extraction runs locally.
type Keyword struct {
	APIKey         string `json:"-"`
	BaseURL        string `json:"baseUrl"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Share configuration
type Share struct {
	DefaultCountryCode string `json:"defaultCountryCode"`
}

// Security configuration
type Security struct {
	APIKey       string `json:"apiKey"`
	APIKeyHeader string `json:"apiKeyHeader"`
}

// CORS configuration
type CORS struct {
	AllowedOrigins []string `json:"allowedOrigins"`
}

// UseSQLite returns true if the SQLite record-store backend is configured
func (c *Config) UseSQLite() bool {
	return c.DatabasePath != ""
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":5000",
		DataDir:       "./data",
		PhotoStorage: PhotoStorage{
			BasePath:          "./storage/images",
			MaxFileSizeMB:     16,
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		},
		Keyword: Keyword{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.3-70b-versatile",
			TimeoutSeconds: 10,
		},
		Share: Share{
			DefaultCountryCode: "+91",
		},
		Security: Security{
			APIKeyHeader: "X-API-Key",
		},
	}
}

// Load loads configuration from .env, config file, and environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment variables
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.ServerAddress = addr
	}
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		cfg.PublicBaseURL = base
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if basePath := os.Getenv("PHOTO_STORAGE_PATH"); basePath != "" {
		cfg.PhotoStorage.BasePath = basePath
	}
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		cfg.Security.APIKey = apiKey
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
			}
		}
	}

	cfg.Keyword.APIKey = os.Getenv("GROQ_API_KEY")
	if url := os.Getenv("GROQ_BASE_URL"); url != "" {
		cfg.Keyword.BaseURL = url
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		cfg.Keyword.Model = model
	}
	if timeout := os.Getenv("KEYWORD_TIMEOUT_SECONDS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			cfg.Keyword.TimeoutSeconds = secs
		}
	}
	if code := os.Getenv("SHARE_COUNTRY_CODE"); code != "" {
		cfg.Share.DefaultCountryCode = code
	}

	// Ensure data and storage directories exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.PhotoStorage.BasePath, 0755); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(cfg.PhotoStorage.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.PhotoStorage.BasePath = absPath

	return cfg, nil
}
