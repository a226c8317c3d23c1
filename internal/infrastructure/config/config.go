package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
	TLSCAFile     string
}

type GRPCConfig struct {
	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
	Reflection      bool
}

type LogConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Endpoint string
	Insecure bool
}

type Config struct {
	GRPCPort          int
	HTTPPort          int
	GRPC              GRPCConfig
	DB                DatabaseConfig
	Kafka             KafkaConfig
	Log               LogConfig
	Tracing           TracingConfig
	ServiceName       string
	Timezone          string
	ArrearsWindowDays int
	MigrationsDir     string
}

// Validate reports the first setting that makes the process unable to start.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.ArrearsWindowDays <= 0 {
		return fmt.Errorf("ASSET_ARREARS_WINDOW_DAYS must be positive, got %d", c.ArrearsWindowDays)
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must name at least one broker")
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.GRPC.TLSClientCAFile != "" && c.GRPC.TLSCertFile == "" {
		return fmt.Errorf("GRPC_TLS_CLIENT_CA_FILE requires GRPC_TLS_CERT_FILE")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPC: GRPCConfig{
			TLSCertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			TLSClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
			Reflection:      getEnvBool("GRPC_REFLECTION", false),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "holdings"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ranrev_holdings"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "holdings.events"),

			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
			TLSCAFile:     getEnv("KAFKA_TLS_CA_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		ServiceName:       getEnv("SERVICE_NAME", "holdings-service"),
		Timezone:          getEnv("TIMEZONE", "Asia/Colombo"),
		ArrearsWindowDays: getEnvInt("ASSET_ARREARS_WINDOW_DAYS", 30),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "file://internal/infrastructure/persistence/postgres/migrations"),
	}
}

// Location resolves the business time zone used for month arithmetic and
// dashboard buckets.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
