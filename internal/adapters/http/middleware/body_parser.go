package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
)

// DefaultBodyLimit equivale aos 100kb padrão do express.json.
const DefaultBodyLimit int64 = 100 * 1024

// BodyParser decodifica corpos JSON e os anexa ao contexto.
// Outros tipos de conteúdo seguem com um objeto vazio.
func BodyParser(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}

			if r.Body != nil && r.Body != http.NoBody && isJSON(r.Header.Get("Content-Type")) {
				raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
				if err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
					return
				}

				if len(bytes.TrimSpace(raw)) > 0 {
					if err := json.Unmarshal(raw, &body); err != nil {
						http.Error(w, "invalid JSON body", http.StatusBadRequest)
						return
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(reqctx.WithBody(r.Context(), body)))
		})
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
