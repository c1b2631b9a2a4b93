package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/JeanGrijp/secure-api/internal/core/domain"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
)

// Config agrega os limites utilizados pelo serviço de rate limiting.
type Config struct {
	Rule domain.RateLimitRule
}

// RateLimiterService implementa a lógica central de rate limiting por endereço de cliente.
type RateLimiterService struct {
	storage ports.Storage
	config  Config
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço.
func NewRateLimiterService(storage ports.Storage, cfg Config) (*RateLimiterService, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if cfg.Rule.Requests <= 0 || cfg.Rule.Window <= 0 {
		return nil, fmt.Errorf("rate limit rule must have positive values")
	}
	if cfg.Rule.BlockDuration < 0 {
		return nil, fmt.Errorf("block duration must not be negative")
	}

	return &RateLimiterService{storage: storage, config: cfg}, nil
}

// Allow conta a requisição na janela do cliente e decide se ela pode prosseguir.
func (s *RateLimiterService) Allow(ctx context.Context, req domain.RateLimitRequest) (domain.Decision, error) {
	rule := s.config.Rule

	keys, err := resolveKeys(req)
	if err != nil {
		return domain.Decision{}, err
	}

	if rule.BlockDuration > 0 {
		blocked, err := s.storage.IsBlocked(ctx, keys.blockKey)
		if err != nil {
			return domain.Decision{}, fmt.Errorf("check block: %w", err)
		}
		if blocked {
			return domain.Decision{Allowed: false, Identifier: keys.identifier, AppliedRule: rule}, domain.ErrBlocked
		}
	}

	state, err := s.storage.Increment(ctx, keys.counterKey, rule.Window)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("increment counter: %w", err)
	}

	decision := domain.Decision{
		Identifier:   keys.identifier,
		AppliedRule:  rule,
		CurrentCount: state.Count,
		Remaining:    remaining(rule.Requests, state.Count),
		ResetAt:      state.ResetAt(rule.Window),
	}

	if state.Count > int64(rule.Requests) {
		if rule.BlockDuration > 0 {
			if setErr := s.storage.SetBlock(ctx, keys.blockKey, rule.BlockDuration); setErr != nil {
				return domain.Decision{}, fmt.Errorf("set block: %w", setErr)
			}
		}
		return decision, domain.ErrBlocked
	}

	decision.Allowed = true
	return decision, nil
}

type resolvedKeys struct {
	counterKey string
	blockKey   string
	identifier string
}

func resolveKeys(req domain.RateLimitRequest) (resolvedKeys, error) {
	ip := strings.ToLower(strings.TrimSpace(req.IP))
	if ip == "" {
		return resolvedKeys{}, fmt.Errorf("ip address is required")
	}

	return resolvedKeys{
		counterKey: fmt.Sprintf("ratelimit:ip:%s", ip),
		blockKey:   fmt.Sprintf("ratelimit:ip:%s:block", ip),
		identifier: ip,
	}, nil
}

func remaining(limit int, count int64) int {
	left := int64(limit) - count
	if left < 0 {
		return 0
	}
	return int(left)
}
