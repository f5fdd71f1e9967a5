package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/pkg/postgres"
)

// KafkaConfig holds broker settings for event publication.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// SMTPConfig holds mail delivery settings for member notifications.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	ServiceName string
	HTTPPort    int
	LogLevel    string
	LogFormat   string

	DB    postgres.Config
	Kafka KafkaConfig
	JWT   JWTConfig
	SMTP  SMTPConfig

	// GuarantorRemunerationPct is the percentage of each payment owed to
	// the sponsoring guarantor.
	GuarantorRemunerationPct decimal.Decimal

	// OverdueSweepSpec is the cron expression of the penalty sweep.
	OverdueSweepSpec string

	// DocumentDir is where proofs, receipts and quittances are stored.
	DocumentDir string

	MigrationsPath string
}

// Validate reports configuration the service cannot start without.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return errors.New("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	return nil
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		ServiceName: "credit-service",
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "karacoop"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "karacoop_credit"),
			SSLMode:  getEnv("DB_SSLMODE", "prefer"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "credit.events"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Issuer:     getEnv("JWT_ISSUER", "karacoop"),
			Expiration: time.Duration(getEnvInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "credit@karacoop.example"),
		},
		GuarantorRemunerationPct: getEnvDecimal("GUARANTOR_REMUNERATION_PCT", "2"),
		OverdueSweepSpec:         getEnv("OVERDUE_SWEEP_SPEC", "0 2 * * *"),
		DocumentDir:              getEnv("DOCUMENT_DIR", "./documents"),
		MigrationsPath:           getEnv("MIGRATIONS_PATH", "file://migrations"),
	}
}

// HTTPAddr is the listen address of the REST server.
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

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
