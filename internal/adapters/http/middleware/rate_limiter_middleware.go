// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
	"github.com/JeanGrijp/secure-api/internal/core/domain"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
)

const RateLimitExceededMessage = "Trop de tentatives veuillez reessayer ulterieurement"

// rejectionLogInterval limita os avisos de rejeição no log.
const rejectionLogInterval = 10 * time.Second

type RateLimiterOptions struct {
	// AddHeaders envia RateLimit-Limit, RateLimit-Remaining e RateLimit-Reset.
	AddHeaders bool
	Now        func() time.Time
}

func NewRateLimiterMiddleware(limiter ports.RateLimiter, logger logrus.FieldLogger, opts RateLimiterOptions) func(http.Handler) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rejections := &rate.Sometimes{First: 1, Interval: rejectionLogInterval}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := reqctx.ClientIP(r)

			decision, err := limiter.Allow(r.Context(), domain.RateLimitRequest{IP: ip})
			if err != nil && !domain.IsBlockedError(err) {
				logger.WithError(err).Errorf("Échec du rate limiter - IP: %s", ip)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			now := opts.Now()
			if opts.AddHeaders {
				writeRateLimitHeaders(w, decision, now)
			}

			if err != nil || !decision.Allowed {
				rejections.Do(func() {
					logger.Infof("Limite de requêtes atteinte - IP: %s", rejectedIdentifier(decision, ip))
				})
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision, now)))
				writeTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectedIdentifier(decision domain.Decision, ip string) string {
	if decision.Identifier != "" {
		return decision.Identifier
	}
	return ip
}

func writeRateLimitHeaders(w http.ResponseWriter, decision domain.Decision, now time.Time) {
	if decision.AppliedRule.Requests <= 0 {
		return
	}
	h := w.Header()
	h.Set("RateLimit-Limit", strconv.Itoa(decision.AppliedRule.Requests))
	h.Set("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	if !decision.ResetAt.IsZero() {
		h.Set("RateLimit-Reset", strconv.Itoa(secondsUntil(decision.ResetAt, now)))
	}
}

func retryAfterSeconds(decision domain.Decision, now time.Time) int {
	if !decision.ResetAt.IsZero() {
		return secondsUntil(decision.ResetAt, now)
	}
	return int(math.Ceil(decision.AppliedRule.BlockDuration.Seconds()))
}

func secondsUntil(t, now time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

func writeTooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(RateLimitExceededMessage))
}
