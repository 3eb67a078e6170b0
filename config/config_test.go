package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/excel"
)

func TestLoad_Defaults(t *testing.T) {
	// Setup
	for _, k := range []string{"STORE_DRIVER", "HTTP_PORT", "KAFKA_BROKERS", "FIELD_LABELS_FILE", "REQUEST_TIMEOUT", "TRACING_ENABLED"} {
		t.Setenv(k, "")
	}

	// Execute
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, excel.DefaultFieldLabels(), cfg.FieldLabels)
}

func TestLoad_Overrides(t *testing.T) {
	// Setup
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("TRACING_ENABLED", "true")

	// Execute
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "redis without address", env: map[string]string{"STORE_DRIVER": "redis", "REDIS_ADDR": ""}},
		{name: "bad timeout", env: map[string]string{"REQUEST_TIMEOUT": "soon"}},
		{name: "bad bool", env: map[string]string{"TRACING_ENABLED": "maybe"}},
		{name: "missing label file", env: map[string]string{"FIELD_LABELS_FILE": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Execute
			_, err := Load()

			// Assert
			assert.Error(t, err)
		})
	}
}

func TestLoad_FieldLabelsFile(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fields:
  - key: unit
    label: "단위(필수 아님)"
    required: false
  - key: location
    label: "위치"
    required: true
`), 0o600))
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("FIELD_LABELS_FILE", path)

	// Execute
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "단위(필수 아님)", cfg.FieldLabels.Label(excel.FieldUnit))
	missing := cfg.FieldLabels.Missing(excel.Mapping{})
	keys := make([]excel.Field, len(missing))
	for i, d := range missing {
		keys[i] = d.Key
	}
	assert.Equal(t, []excel.Field{excel.FieldCategory, excel.FieldName, excel.FieldCurrentStock, excel.FieldLocation}, keys)
}

func TestLoadFieldLabels_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - key: colour\n    label: x\n"), 0o600))

	_, err := LoadFieldLabels(path)

	assert.ErrorContains(t, err, "colour")
}
