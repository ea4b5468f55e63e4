package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	SQLite    SQLiteConfig
	Model     ModelConfig
	Reconcile ReconcileConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// BodyLimit in bytes; training uploads can be large.
	BodyLimit int
}

// StoreConfig selects the pair store implementation.
type StoreConfig struct {
	Backend string // postgres, sqlite or memory
}

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

type ModelConfig struct {
	Path string
	// Bootstrap trains on the built-in synthetic set when no artifact exists at Path.
	Bootstrap bool
	// ParamsPath optionally points at a YAML file of training parameters.
	ParamsPath string
}

type ReconcileConfig struct {
	MaxAttempts int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	bodyLimitMB, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "16"))
	maxAttempts, err := strconv.Atoi(getEnv("RECONCILE_MAX_ATTEMPTS", "3"))
	if err != nil || maxAttempts < 1 {
		maxAttempts = 3
	}
	bootstrap := getEnv("MODEL_BOOTSTRAP", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			BodyLimit:    bodyLimitMB << 20,
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "item_pairs"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/item_pairs.db"),
		},
		Model: ModelConfig{
			Path:       getEnv("MODEL_PATH", "models/similarity_model.json"),
			Bootstrap:  bootstrap,
			ParamsPath: getEnv("MODEL_PARAMS_PATH", ""),
		},
		Reconcile: ReconcileConfig{
			MaxAttempts: maxAttempts,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
