package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, cfg.Database.WriterDSN, cfg.Database.ReaderDSN)
	assert.True(t, cfg.Database.CheckSchema)
	assert.Equal(t, "restaurants.events", cfg.Messaging.Kafka.Topic)
	assert.Equal(t, 20, cfg.Listing.DefaultLimit)
	assert.Equal(t, 100, cfg.Listing.MaxLimit)
	assert.Equal(t, "restaurants", cfg.Observability.ServiceName)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("MESSAGING_ENABLED", "false")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_WRITER_DSN", "file::memory:")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("CACHE_DEFAULT_TTL", "30s")
	t.Setenv("OBS_LOG_LEVEL", " DEBUG ")
	t.Setenv("OBS_PROMETHEUS_PATH", "prom")
	t.Setenv("LIST_DEFAULT_LIMIT", "500")
	t.Setenv("LIST_MAX_LIMIT", "50")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "noop", cfg.Cache.Driver)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.ReaderDSN)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Messaging.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "/prom", cfg.Observability.PrometheusPath)
	assert.Equal(t, 50, cfg.Listing.DefaultLimit)
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"http port":       {"HTTP_PORT": "0"},
		"cache driver":    {"CACHE_DRIVER": "memcached"},
		"messaging":       {"MESSAGING_DRIVER": "nats"},
		"database driver": {"DB_DRIVER": "oracle"},
		"writer dsn":      {"DB_WRITER_DSN": ""},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestListingClamp(t *testing.T) {
	l := Listing{DefaultLimit: 20, MaxLimit: 100}

	assert.Equal(t, 20, l.Clamp(0))
	assert.Equal(t, 20, l.Clamp(-5))
	assert.Equal(t, 7, l.Clamp(7))
	assert.Equal(t, 100, l.Clamp(500))
}
