package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-me"

type MySQL struct {
	User     string
	Password string
	Host     string // go-sql-driver address form, e.g. tcp(127.0.0.1:3306)
	Database string
}

type Notify struct {
	Driver       string // none, redis or kafka
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
	QueueSize    int
}

type Config struct {
	Port            string
	MySQL           MySQL
	AutoMigrate     bool
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	LogLevel        string
	Notify          Notify
	ShutdownTimeout time.Duration
	CORSOrigin      string
}

// DevSecret reports whether the JWT secret is the built-in development value.
func (c Config) DevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "8080"),
		MySQL: MySQL{
			User:     getEnv("MYSQL_USER", "user"),
			Password: getEnv("MYSQL_PWD", "password"),
			Host:     getEnv("MYSQL_HOST", "tcp(127.0.0.1:3306)"),
			Database: getEnv("MYSQL_DATABASE", "hackathon_db"),
		},
		JWTSecret:  getEnv("JWT_SECRET", devJWTSecret),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		CORSOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		Notify: Notify{
			Driver:       strings.ToLower(getEnv("NOTIFY_DRIVER", "none")),
			RedisURL:     getEnv("REDIS_URL", "127.0.0.1:6379"),
			KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "127.0.0.1:9092")),
			KafkaTopic:   getEnv("KAFKA_NOTIFICATION_TOPIC", "seller.notifications"),
		},
	}

	var err error
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", false); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 0); err != nil {
		return Config{}, err
	}
	// 0 selects the bcrypt default.
	if cfg.BcryptCost != 0 && (cfg.BcryptCost < 4 || cfg.BcryptCost > 31) {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Notify.QueueSize, err = getInt("NOTIFY_QUEUE_SIZE", 256); err != nil {
		return Config{}, err
	}
	if cfg.Notify.QueueSize < 1 {
		return Config{}, fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive, got %d", cfg.Notify.QueueSize)
	}

	switch cfg.Notify.Driver {
	case "none", "redis", "kafka":
	default:
		return Config{}, fmt.Errorf("NOTIFY_DRIVER must be one of none, redis, kafka, got %q", cfg.Notify.Driver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
