package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DatabaseName string `mapstructure:"database_name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Host           string `mapstructure:"host"`
	LoanEventTopic string `mapstructure:"loan_event_topic"`
}

type Config struct {
	HTTPAddr  string         `mapstructure:"http_addr"`
	Database  DatabaseConfig `mapstructure:"database"`
	Redis     RedisConfig    `mapstructure:"redis"`
	Kafka     KafkaConfig    `mapstructure:"kafka"`
	LoanDays  int            `mapstructure:"loan_days"`
	ItemTTL   time.Duration  `mapstructure:"item_ttl"`
	RateLimit int            `mapstructure:"rate_limit"`
	RateWin   time.Duration  `mapstructure:"rate_window"`

	SweepEvery time.Duration `mapstructure:"sweep_every"`
	RelayEvery time.Duration `mapstructure:"relay_every"`
	RelayBatch int           `mapstructure:"relay_batch"`
}

// Load reads configuration from the environment, falling back to defaults
// that match the local docker-compose setup. A .env file is honored if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 3306),
			Username:     getEnv("DB_USER", "pap"),
			Password:     getEnv("DB_PASSWORD", "pap"),
			DatabaseName: getEnv("DB_NAME", "pap"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Host:           getEnv("KAFKA_HOST", "localhost:29092"),
			LoanEventTopic: getEnv("KAFKA_LOAN_TOPIC", "LOAN_EVENTS"),
		},
		LoanDays:   getEnvInt("LOAN_DAYS", 14),
		ItemTTL:    getEnvDuration("ITEM_CACHE_TTL", 5*time.Minute),
		RateLimit:  getEnvInt("RATE_LIMIT", 100),
		RateWin:    getEnvDuration("RATE_WINDOW", time.Minute),
		SweepEvery: getEnvDuration("OVERDUE_SWEEP_EVERY", time.Minute),
		RelayEvery: getEnvDuration("OUTBOX_RELAY_EVERY", 5*time.Second),
		RelayBatch: getEnvInt("OUTBOX_RELAY_BATCH", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
