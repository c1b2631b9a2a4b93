package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// extraSecurityHeaders completa o conjunto de cabeçalhos onde secure.Options não tem opção.
var extraSecurityHeaders = map[string]string{
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
}

// SecurityHeaders aplica a política padrão de cabeçalhos de proteção a toda resposta.
func SecurityHeaders() func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		BrowserXssFilter:        true,
		CustomBrowserXssValue:   "0",
		ContentSecurityPolicy:   contentSecurityPolicy,
		ReferrerPolicy:          "no-referrer",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          true,
	})

	return func(next http.Handler) http.Handler {
		extras := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range extraSecurityHeaders {
				h.Set(name, value)
			}
			h.Del("X-Powered-By")
			next.ServeHTTP(w, r)
		})
		return sec.Handler(extras)
	}
}
