// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/JeanGrijp/secure-api/internal/core/domain"
)

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Storage     StorageConfig
	RateLimiter RateLimiterConfig
}

type ServerConfig struct {
	Port           string
	TrustProxy     bool
	BodyLimitBytes int64
}

type LogConfig struct {
	BaseDir string
	Level   logrus.Level
}

// Dir é o diretório onde ficam error.log e combined.log.
func (c LogConfig) Dir() string {
	return filepath.Join(c.BaseDir, "logs")
}

type StorageConfig struct {
	Type  string
	Redis RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	IPRule     domain.RateLimitRule
	AddHeaders bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	server, err := buildServerConfig()
	if err != nil {
		return Config{}, err
	}

	logConfig, err := buildLogConfig()
	if err != nil {
		return Config{}, err
	}

	storageType := strings.ToLower(getEnv("STORAGE_TYPE", "memory"))
	if storageType != "memory" && storageType != "redis" {
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE: %s", storageType)
	}

	redisConfig, err := buildRedisConfig()
	if err != nil {
		return Config{}, err
	}

	rateLimiterConfig, err := buildRateLimiterConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: server,
		Log:    logConfig,
		Storage: StorageConfig{
			Type:  storageType,
			Redis: redisConfig,
		},
		RateLimiter: rateLimiterConfig,
	}, nil
}

func buildServerConfig() (ServerConfig, error) {
	port := getEnv("PORT", "5000")
	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT: %w", err)
	}

	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY", "false"))
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}

	bodyLimit, err := strconv.ParseInt(getEnv("BODY_LIMIT_BYTES", "102400"), 10, 64)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid BODY_LIMIT_BYTES: %w", err)
	}
	if bodyLimit <= 0 {
		return ServerConfig{}, fmt.Errorf("BODY_LIMIT_BYTES must be > 0")
	}

	return ServerConfig{Port: port, TrustProxy: trustProxy, BodyLimitBytes: bodyLimit}, nil
}

func buildLogConfig() (LogConfig, error) {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return LogConfig{
		BaseDir: getEnv("LOG_BASE_DIR", "."),
		Level:   level,
	}, nil
}

func buildRedisConfig() (RedisConfig, error) {
	host := getEnv("REDIS_HOST", "localhost")
	port, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func buildRateLimiterConfig() (RateLimiterConfig, error) {
	requests, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	window, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "3m"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	block, err := time.ParseDuration(getEnv("RATE_LIMIT_BLOCK_DURATION", "0s"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_BLOCK_DURATION: %w", err)
	}
	addHeaders, err := strconv.ParseBool(getEnv("RATE_LIMIT_HEADERS", "true"))
	if err != nil {
		return RateLimiterConfig{}, fmt.Errorf("invalid RATE_LIMIT_HEADERS: %w", err)
	}

	if requests <= 0 {
		return RateLimiterConfig{}, fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if window <= 0 {
		return RateLimiterConfig{}, fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	if block < 0 {
		return RateLimiterConfig{}, fmt.Errorf("RATE_LIMIT_BLOCK_DURATION must be >= 0")
	}

	return RateLimiterConfig{
		IPRule: domain.RateLimitRule{
			Requests:      requests,
			Window:        window,
			BlockDuration: block,
		},
		AddHeaders: addHeaders,
	}, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
