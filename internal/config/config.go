package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBURL      string
	LogLevel   string
	DBMaxConns int

	RedisAddr     string
	RedisPassword string

	KafkaBrokers       []string
	KafkaIncidentTopic string

	RateLimitRPS      float64
	RateLimitBurst    int
	ReconcileInterval time.Duration
	MaxRetries        int
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load("config.env")

	reconcile, err := time.ParseDuration(getEnv("RECONCILE_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	return &Config{
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: os.Getenv("LOG_LEVEL"),
		DBURL: fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 8),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:       getEnvSlice("KAFKA_BROKERS"),
		KafkaIncidentTopic: getEnv("KAFKA_INCIDENT_TOPIC", "settlement.incidents"),
		RateLimitRPS:       rps,
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		ReconcileInterval:  reconcile,
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvSlice(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
