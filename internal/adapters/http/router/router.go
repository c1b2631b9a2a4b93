// Package router monta a cadeia de middlewares e as rotas da API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	httpHandlers "github.com/JeanGrijp/secure-api/internal/adapters/http/handlers"
	httpMiddleware "github.com/JeanGrijp/secure-api/internal/adapters/http/middleware"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
)

type Deps struct {
	Logger    logrus.FieldLogger
	Limiter   ports.RateLimiter
	RateLimit httpMiddleware.RateLimiterOptions
	// TrustProxy faz o endereço do cliente vir de True-Client-IP, X-Real-IP ou X-Forwarded-For.
	TrustProxy bool
	BodyLimit  int64
}

// New aplica, nesta ordem: rate limit, cabeçalhos de segurança, parse do JSON,
// log da requisição e o handler da rota.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	if deps.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(httpMiddleware.NewRateLimiterMiddleware(deps.Limiter, deps.Logger, deps.RateLimit))
	r.Use(httpMiddleware.SecurityHeaders())
	r.Use(httpMiddleware.BodyParser(deps.BodyLimit))
	r.Use(httpMiddleware.RequestLogger(deps.Logger))

	h := httpHandlers.New(deps.Logger)
	r.Get("/", h.Welcome)
	r.Get("/error", h.SimulatedError)
	r.Post("/login", h.Login)

	return r
}
