package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
)

func parse(t *testing.T, limit int64, contentType, body string) (*httptest.ResponseRecorder, map[string]any, bool) {
	t.Helper()
	var got map[string]any
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		got = reqctx.Body(r.Context())
	})

	r := httptest.NewRequest(http.MethodPost, "http://example/login", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	BodyParser(limit)(next).ServeHTTP(w, r)
	return w, got, reached
}

func TestBodyParser_DecodesJSONObject(t *testing.T) {
	_, body, reached := parse(t, 0, "application/json; charset=utf-8", `{"login":"alice","password":"secret123"}`)
	require.True(t, reached)
	assert.Equal(t, "alice", body["login"])
	assert.Equal(t, "secret123", body["password"])
}

func TestBodyParser_IgnoresOtherContentTypes(t *testing.T) {
	_, body, reached := parse(t, 0, "text/plain", `{"login":"alice"}`)
	require.True(t, reached)
	assert.Empty(t, body)
}

func TestBodyParser_EmptyBody(t *testing.T) {
	_, body, reached := parse(t, 0, "application/json", "")
	require.True(t, reached)
	assert.Empty(t, body)
}

func TestBodyParser_RejectsMalformedJSON(t *testing.T) {
	for _, payload := range []string{`{"login":`, `["a","b"]`, `"text"`} {
		w, _, reached := parse(t, 0, "application/json", payload)
		assert.False(t, reached, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, payload)
	}
}

func TestBodyParser_RejectsArrayBody(t *testing.T) {
	w, _, reached := parse(t, 0, "application/json", `[1,2]`)
	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON body\n", w.Body.String())
}

func TestBodyParser_RejectsOversizedBody(t *testing.T) {
	payload := `{"login":"` + strings.Repeat("a", 64) + `"}`
	w, _, reached := parse(t, 16, "application/json", payload)
	assert.False(t, reached)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestIsJSON(t *testing.T) {
	assert.True(t, isJSON("application/json"))
	assert.True(t, isJSON("application/vnd.api+json"))
	assert.False(t, isJSON(""))
	assert.False(t, isJSON("application/x-www-form-urlencoded"))
}
