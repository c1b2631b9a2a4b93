package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
)

// RequestLogger registra uma linha info por requisição antes do handler.
func RequestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Infof("Requête recue : %s %s - IP : %s", r.Method, r.URL.RequestURI(), reqctx.ClientIP(r))
			next.ServeHTTP(w, r)
		})
	}
}
