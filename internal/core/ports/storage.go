// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/JeanGrijp/secure-api/internal/core/domain"
)

// Storage guarda os contadores de janela fixa por chave.
// Increment reinicia a contagem em 1 quando a janela anterior expirou.
type Storage interface {
	Increment(ctx context.Context, key string, window time.Duration) (domain.WindowState, error)
	IsBlocked(ctx context.Context, key string) (bool, error)
	SetBlock(ctx context.Context, key string, duration time.Duration) error
}
