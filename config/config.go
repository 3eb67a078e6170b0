// Package config loads service settings from the environment, an optional
// .env file and an optional YAML field-label file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/pkg/database"
	"github.com/tair/stockledger/pkg/tracing"
)

// Store drivers
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// RedisConfig holds the redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds the data-updated broadcast settings. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Config is the full service configuration
type Config struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	HTTPPort        string
	RequestTimeout  time.Duration
	StoreDriver     string
	DataFile        string
	Database        database.Config
	Redis           RedisConfig
	Kafka           KafkaConfig
	Tracing         tracing.Config
	UploadRateLimit int
	FieldLabels     excel.FieldLabelConfig
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads .env if present, then the environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "stockledger"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8082"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		DataFile:    getEnv("DATA_FILE", "data/db.json"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "stockledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "inventory-data-updated"),
			GroupID: getEnv("KAFKA_GROUP_ID", "stockledger"),
		},
		FieldLabels: excel.DefaultFieldLabels(),
	}
	cfg.Tracing = tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		Environment:    cfg.Environment,
		Endpoint:       getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.UploadRateLimit, err = getInt("UPLOAD_RATE_LIMIT", 30); err != nil {
		return nil, err
	}
	if cfg.Tracing.Enabled, err = getBool("TRACING_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case StoreFile, StorePostgres:
	case StoreRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("STORE_DRIVER=redis requires REDIS_ADDR")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if path := getEnv("FIELD_LABELS_FILE", ""); path != "" {
		labels, err := LoadFieldLabels(path)
		if err != nil {
			return nil, err
		}
		cfg.FieldLabels = excel.DefaultFieldLabels().Merge(labels)
	}

	return cfg, nil
}

// LoadFieldLabels reads a YAML field-label file
func LoadFieldLabels(path string) (excel.FieldLabelConfig, error) {
	var labels excel.FieldLabelConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return labels, fmt.Errorf("read field labels: %w", err)
	}
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return labels, fmt.Errorf("parse field labels: %w", err)
	}
	for _, d := range labels.Fields {
		if !d.Key.Valid() {
			return labels, fmt.Errorf("field labels: unknown field %q", d.Key)
		}
	}
	return labels, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
