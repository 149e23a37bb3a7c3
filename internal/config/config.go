package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Env  string `json:"env"`
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver     string `json:"db_driver"`
	DBHost       string `json:"db_host"`
	DBPort       string `json:"db_port"`
	DBName       string `json:"db_name"`
	DBUser       string `json:"db_user"`
	DBPassword   string `json:"db_password"`
	DBSSLMode    string `json:"db_sslmode"`
	DBPath       string `json:"db_path"`
	DBMaxRetries int    `json:"db_max_retries"`

	// Local stores and files
	FallbackStorePath string `json:"fallback_store_path"`
	PreferencesPath   string `json:"preferences_path"`
	ReportsDir        string `json:"reports_dir"`
	LedgerPath        string `json:"ledger_path"`

	// Artifact storage
	StorageDriver  string `json:"storage_driver"`
	S3Endpoint     string `json:"s3_endpoint"`
	S3Region       string `json:"s3_region"`
	S3Bucket       string `json:"s3_bucket"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3UsePathStyle bool   `json:"s3_use_path_style"`

	// Receipts and tax documents
	ReceiptPDFEnabled bool          `json:"receipt_pdf_enabled"`
	ChromeRemoteURL   string        `json:"chrome_remote_url"`
	NFEDelay          time.Duration `json:"nfe_delay"`

	// Logging configuration
	LogLevel string `json:"log_level"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, "+
		"FallbackStorePath: %s, PreferencesPath: %s, ReportsDir: %s, LedgerPath: %s, StorageDriver: %s, S3Endpoint: %s, S3Bucket: %s, "+
		"S3AccessKey: %s, S3SecretKey: [REDACTED], ReceiptPDFEnabled: %t, NFEDelay: %s, LogLevel: %s}",
		c.Env, c.Port, c.Host, c.DBDriver, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPath,
		c.FallbackStorePath, c.PreferencesPath, c.ReportsDir, c.LedgerPath, c.StorageDriver, c.S3Endpoint, c.S3Bucket,
		maskKey(c.S3AccessKey), c.ReceiptPDFEnabled, c.NFEDelay, c.LogLevel)
}

// maskKey keeps the first four characters of an access key
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return key[:4] + "[REDACTED]"
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is malformed or a driver is unknown
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config := &Config{
		Env:  GetEnvWithDefault("APP_ENV", "development"),
		Port: port,
		Host: GetEnvWithDefault("APP_HOST", "localhost"),

		DBDriver:     strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite")),
		DBHost:       GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:       GetEnvWithDefault("DB_PORT", "5432"),
		DBName:       GetEnvWithDefault("DB_NAME", "pizzaone"),
		DBUser:       GetEnvWithDefault("DB_USER", "pizzaone"),
		DBPassword:   GetEnvWithDefault("DB_PASSWORD", ""),
		DBSSLMode:    GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:       GetEnvWithDefault("DB_PATH", "pizzaone.sqlite"),
		DBMaxRetries: GetEnvAsType("DB_MAX_RETRIES", 5),

		FallbackStorePath: GetEnvWithDefault("FALLBACK_STORE_PATH", "data/pedidos_local.db"),
		PreferencesPath:   GetEnvWithDefault("PREFERENCES_PATH", "data/preferences.yaml"),
		ReportsDir:        GetEnvWithDefault("REPORTS_DIR", "reports"),
		LedgerPath:        GetEnvWithDefault("LEDGER_PATH", "csv/ativos.csv"),

		StorageDriver:  strings.ToLower(GetEnvWithDefault("STORAGE_DRIVER", "local")),
		S3Endpoint:     GetEnvWithDefault("S3_ENDPOINT", ""),
		S3Region:       GetEnvWithDefault("S3_REGION", "us-east-1"),
		S3Bucket:       GetEnvWithDefault("S3_BUCKET", ""),
		S3AccessKey:    GetEnvWithDefault("S3_ACCESS_KEY", ""),
		S3SecretKey:    GetEnvWithDefault("S3_SECRET_KEY", ""),
		S3UsePathStyle: GetEnvAsType("S3_USE_PATH_STYLE", true),

		ReceiptPDFEnabled: GetEnvAsType("RECEIPT_PDF_ENABLED", false),
		ChromeRemoteURL:   GetEnvWithDefault("CHROME_REMOTE_URL", ""),
		NFEDelay:          time.Duration(GetEnvAsType("NFE_DELAY_MS", 1000)) * time.Millisecond,

		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", c.DBDriver)
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER is s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (supported: local, s3)", c.StorageDriver)
	}
	if c.NFEDelay < 0 {
		return fmt.Errorf("NFE_DELAY_MS must not be negative")
	}
	return nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	case time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return any(d).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
