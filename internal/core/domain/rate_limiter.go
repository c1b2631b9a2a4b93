// Package domain concentra entidades e estruturas centrais da API.
package domain

import "time"

type RateLimitRule struct {
	Requests      int
	Window        time.Duration
	BlockDuration time.Duration
}

type RateLimitRequest struct {
	IP string
}

// WindowState é o contador de uma janela fixa para um identificador.
type WindowState struct {
	Count       int64
	WindowStart time.Time
}

// ResetAt retorna o instante em que a janela expira.
func (s WindowState) ResetAt(window time.Duration) time.Time {
	return s.WindowStart.Add(window)
}

type Decision struct {
	Allowed      bool
	Identifier   string
	AppliedRule  RateLimitRule
	CurrentCount int64
	Remaining    int
	ResetAt      time.Time
}
