// Package reqctx guarda no contexto da requisição os valores resolvidos pelos middlewares.
package reqctx

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ctxKey int

const (
	bodyKey ctxKey = iota
)

// ClientIP retorna o host de RemoteAddr. Quando o servidor confia no proxy,
// o RealIP do chi já reescreveu RemoteAddr a partir dos cabeçalhos encaminhados.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// WithBody anexa o corpo JSON decodificado.
func WithBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey, body)
}

// Body retorna o corpo JSON decodificado, ou um objeto vazio.
func Body(ctx context.Context) map[string]any {
	body, ok := ctx.Value(bodyKey).(map[string]any)
	if !ok || body == nil {
		return map[string]any{}
	}
	return body
}
