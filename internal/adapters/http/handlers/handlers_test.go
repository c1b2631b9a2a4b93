package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
)

func newTestHandler() (*Handler, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return New(logger), hook
}

func loginRequest(body map[string]any) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if body != nil {
		r = r.WithContext(reqctx.WithBody(r.Context(), body))
	}
	return r
}

func TestWelcome(t *testing.T) {
	h, hook := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()

	h.Welcome(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bienvenue sur l'API sécurisée", w.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Accès à la page principale depuis 10.0.0.1", hook.LastEntry().Message)
}

func TestSimulatedError(t *testing.T) {
	h, hook := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/error", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()

	h.SimulatedError(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Une erreur est survenue", w.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Erreur simulée - Requête de 10.0.0.1", hook.LastEntry().Message)
}

func TestLogin_MasksPassword(t *testing.T) {
	h, hook := newTestHandler()
	w := httptest.NewRecorder()

	h.Login(w, loginRequest(map[string]any{"login": "alice", "password": "secret123"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, map[string]string{"message": "Connexion réussie"}, resp)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Tentative de connexion - Login: alice, Password: ********* - IP: 10.0.0.1", entry.Message)
	assert.False(t, strings.Contains(entry.Message, "secret123"))
}

func TestLogin_EmptyPassword(t *testing.T) {
	h, hook := newTestHandler()
	w := httptest.NewRecorder()

	h.Login(w, loginRequest(map[string]any{"login": "bob", "password": ""}))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "Login: bob, Password:  - IP:")
}

func TestLogin_MissingPassword(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"no body":      nil,
		"absent":       {"login": "bob"},
		"not a string": {"login": "bob", "password": 42.0},
	} {
		t.Run(name, func(t *testing.T) {
			h, hook := newTestHandler()
			w := httptest.NewRecorder()

			h.Login(w, loginRequest(body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp["error"])
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		})
	}
}

func TestLogin_NonTextLoginSucceeds(t *testing.T) {
	h, hook := newTestHandler()
	w := httptest.NewRecorder()

	h.Login(w, loginRequest(map[string]any{"login": 42.0, "password": "abc"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Connexion réussie"}`, w.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Tentative de connexion - Login: 42, Password: *** - IP: 10.0.0.1", hook.LastEntry().Message)
}
