package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Log        LogConfig
	CORS       CORSConfig
	Ollama     OllamaConfig
	Extraction ExtractionConfig
	Document   DocumentConfig
	Storage    StorageConfig
	S3         S3Config
	Contract   ContractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (s ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(s.Environment, "development")
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OllamaConfig holds settings for the local Ollama endpoint.
type OllamaConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	DefaultModel      string        `mapstructure:"default_model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	LogPrompts        bool          `mapstructure:"log_prompts"`
	LogResponses      bool          `mapstructure:"log_responses"` // potentially sensitive
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// ExtractionConfig holds contract field extraction settings.
type ExtractionConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Model       string `mapstructure:"model"` // empty uses ollama.default_model
}

// DocumentConfig selects the PDF text extraction backend.
type DocumentConfig struct {
	Provider      string `mapstructure:"provider"`
	PdfToTextPath string `mapstructure:"pdftotext_path"`
}

// StorageConfig selects where contract files are read from and archived to.
type StorageConfig struct {
	Provider string `mapstructure:"provider"`
	LocalDir string `mapstructure:"local_dir"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// ContractConfig holds contract source settings.
type ContractConfig struct {
	DefaultKey     string `mapstructure:"default_key"`
	ArchiveUploads bool   `mapstructure:"archive_uploads"`
	MaxFileSizeMB  int64  `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (c ContractConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

var envBindings = map[string]string{
	"server.port":                "MATTERDESK_SERVER_PORT",
	"server.read_timeout":        "MATTERDESK_SERVER_READ_TIMEOUT",
	"server.write_timeout":       "MATTERDESK_SERVER_WRITE_TIMEOUT",
	"server.environment":         "MATTERDESK_SERVER_ENVIRONMENT",
	"db.host":                    "MATTERDESK_DB_HOST",
	"db.port":                    "MATTERDESK_DB_PORT",
	"db.user":                    "MATTERDESK_DB_USER",
	"db.password":                "MATTERDESK_DB_PASSWORD",
	"db.name":                    "MATTERDESK_DB_NAME",
	"db.sslmode":                 "MATTERDESK_DB_SSLMODE",
	"db.max_open":                "MATTERDESK_DB_MAX_OPEN",
	"db.max_idle":                "MATTERDESK_DB_MAX_IDLE",
	"db.auto_migrate":            "MATTERDESK_DB_AUTO_MIGRATE",
	"log.level":                  "MATTERDESK_LOG_LEVEL",
	"log.format":                 "MATTERDESK_LOG_FORMAT",
	"cors.allowed_origins":       "MATTERDESK_CORS_ALLOWED_ORIGINS",
	"ollama.base_url":            "MATTERDESK_OLLAMA_BASE_URL",
	"ollama.default_model":       "MATTERDESK_OLLAMA_DEFAULT_MODEL",
	"ollama.timeout":             "MATTERDESK_OLLAMA_TIMEOUT",
	"ollama.max_retries":         "MATTERDESK_OLLAMA_MAX_RETRIES",
	"ollama.retry_delay":         "MATTERDESK_OLLAMA_RETRY_DELAY",
	"ollama.log_prompts":         "MATTERDESK_OLLAMA_LOG_PROMPTS",
	"ollama.log_responses":       "MATTERDESK_OLLAMA_LOG_RESPONSES",
	"ollama.requests_per_second": "MATTERDESK_OLLAMA_REQUESTS_PER_SECOND",
	"extraction.concurrency":     "MATTERDESK_EXTRACTION_CONCURRENCY",
	"extraction.model":           "MATTERDESK_EXTRACTION_MODEL",
	"document.provider":          "MATTERDESK_DOCUMENT_PROVIDER",
	"document.pdftotext_path":    "MATTERDESK_DOCUMENT_PDFTOTEXT_PATH",
	"storage.provider":           "MATTERDESK_STORAGE_PROVIDER",
	"storage.local_dir":          "MATTERDESK_STORAGE_LOCAL_DIR",
	"s3.region":                  "MATTERDESK_S3_REGION",
	"s3.bucket":                  "MATTERDESK_S3_BUCKET",
	"s3.endpoint":                "MATTERDESK_S3_ENDPOINT",
	"s3.access_key":              "MATTERDESK_S3_ACCESS_KEY",
	"s3.secret_key":              "MATTERDESK_S3_SECRET_KEY",
	"contract.default_key":       "MATTERDESK_CONTRACT_DEFAULT_KEY",
	"contract.archive_uploads":   "MATTERDESK_CONTRACT_ARCHIVE_UPLOADS",
	"contract.max_file_size_mb":  "MATTERDESK_CONTRACT_MAX_FILE_SIZE_MB",
}

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables with the MATTERDESK_ prefix.
// Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("MATTERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "matterdesk")
	v.SetDefault("db.password", "matterdesk_secret")
	v.SetDefault("db.name", "matterdesk")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.auto_migrate", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// CORS defaults (the Angular dev server)
	v.SetDefault("cors.allowed_origins", "http://localhost:4200,https://localhost:4200")

	// Ollama defaults
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.default_model", "llama3.2:1b")
	v.SetDefault("ollama.timeout", "5m")
	v.SetDefault("ollama.max_retries", 3)
	v.SetDefault("ollama.retry_delay", "2s")
	v.SetDefault("ollama.log_prompts", true)
	v.SetDefault("ollama.log_responses", false)
	v.SetDefault("ollama.requests_per_second", 0)

	// Extraction defaults
	v.SetDefault("extraction.concurrency", 4)
	v.SetDefault("extraction.model", "")

	// Document defaults
	v.SetDefault("document.provider", "native")
	v.SetDefault("document.pdftotext_path", "pdftotext")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_dir", "resources")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "matterdesk-contracts")
	v.SetDefault("s3.endpoint", "")

	// Contract defaults
	v.SetDefault("contract.default_key", "sample-contract.pdf")
	v.SetDefault("contract.archive_uploads", false)
	v.SetDefault("contract.max_file_size_mb", 25)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if MATTERDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MATTERDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:        v.GetString("db.host"),
		Port:        v.GetInt("db.port"),
		User:        v.GetString("db.user"),
		Password:    v.GetString("db.password"),
		Name:        v.GetString("db.name"),
		SSLMode:     v.GetString("db.sslmode"),
		MaxOpen:     v.GetInt("db.max_open"),
		MaxIdle:     v.GetInt("db.max_idle"),
		AutoMigrate: v.GetBool("db.auto_migrate"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	cfg.Ollama = OllamaConfig{
		BaseURL:           strings.TrimRight(v.GetString("ollama.base_url"), "/"),
		DefaultModel:      v.GetString("ollama.default_model"),
		Timeout:           v.GetDuration("ollama.timeout"),
		MaxRetries:        v.GetInt("ollama.max_retries"),
		RetryDelay:        v.GetDuration("ollama.retry_delay"),
		LogPrompts:        v.GetBool("ollama.log_prompts"),
		LogResponses:      v.GetBool("ollama.log_responses"),
		RequestsPerSecond: v.GetFloat64("ollama.requests_per_second"),
	}
	cfg.Extraction = ExtractionConfig{
		Concurrency: v.GetInt("extraction.concurrency"),
		Model:       v.GetString("extraction.model"),
	}
	cfg.Document = DocumentConfig{
		Provider:      v.GetString("document.provider"),
		PdfToTextPath: v.GetString("document.pdftotext_path"),
	}
	cfg.Storage = StorageConfig{
		Provider: v.GetString("storage.provider"),
		LocalDir: v.GetString("storage.local_dir"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Contract = ContractConfig{
		DefaultKey:     v.GetString("contract.default_key"),
		ArchiveUploads: v.GetBool("contract.archive_uploads"),
		MaxFileSizeMB:  v.GetInt64("contract.max_file_size_mb"),
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
