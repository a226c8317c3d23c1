package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"GRPC_PORT", "HTTP_PORT", "DB_HOST", "DB_PASSWORD", "KAFKA_BROKERS",
		"KAFKA_TOPIC", "TIMEZONE", "ASSET_ARREARS_WINDOW_DAYS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "holdings.events", cfg.Kafka.Topic)
	assert.Equal(t, "Asia/Colombo", cfg.Timezone)
	assert.Equal(t, 30, cfg.ArrearsWindowDays)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("ASSET_ARREARS_WINDOW_DAYS", "45")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("GRPC_REFLECTION", "true")

	cfg := Load()

	assert.Equal(t, 7001, cfg.GRPCPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 45, cfg.ArrearsWindowDays)
	assert.False(t, cfg.Tracing.Insecure)
	assert.True(t, cfg.GRPC.Reflection)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.True(t, cfg.Tracing.Insecure)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DB:                DatabaseConfig{Password: "secret"},
			Kafka:             KafkaConfig{Brokers: []string{"localhost:9092"}},
			Timezone:          "Asia/Colombo",
			ArrearsWindowDays: 30,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing password", mutate: func(c *Config) { c.DB.Password = "" }, wantErr: "DB_PASSWORD"},
		{name: "zero window", mutate: func(c *Config) { c.ArrearsWindowDays = 0 }, wantErr: "ASSET_ARREARS_WINDOW_DAYS"},
		{name: "no brokers", mutate: func(c *Config) { c.Kafka.Brokers = nil }, wantErr: "KAFKA_BROKERS"},
		{name: "half tls pair", mutate: func(c *Config) { c.GRPC.TLSCertFile = "/etc/tls/cert.pem" }, wantErr: "GRPC_TLS_KEY_FILE"},
		{name: "client ca without server cert", mutate: func(c *Config) { c.GRPC.TLSClientCAFile = "/etc/tls/ca.pem" }, wantErr: "GRPC_TLS_CLIENT_CA_FILE"},
		{name: "unknown zone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
