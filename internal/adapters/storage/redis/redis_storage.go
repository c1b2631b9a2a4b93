// Package redis disponibiliza a implementação do storage baseada em Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/JeanGrijp/secure-api/internal/core/domain"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
)

// incrementScript incrementa o contador e arma a expiração só no primeiro hit da janela.
// Retorna {count, pttl}.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if count == 1 or ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type Storage struct {
	client *redis.Client
	now    func() time.Time
}

var _ ports.Storage = (*Storage)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client, now: time.Now}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Increment(ctx context.Context, key string, window time.Duration) (domain.WindowState, error) {
	values, err := incrementScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return domain.WindowState{}, err
	}
	if len(values) != 2 {
		return domain.WindowState{}, fmt.Errorf("unexpected script reply: %v", values)
	}

	ttl := time.Duration(values[1]) * time.Millisecond
	return domain.WindowState{
		Count:       values[0],
		WindowStart: s.now().Add(ttl - window),
	}, nil
}

func (s *Storage) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) SetBlock(ctx context.Context, key string, duration time.Duration) error {
	if duration <= 0 {
		return s.client.Del(ctx, key).Err()
	}
	return s.client.Set(ctx, key, "1", duration).Err()
}
