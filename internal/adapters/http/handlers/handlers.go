// Package handlers agrupa os handlers HTTP da API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/JeanGrijp/secure-api/internal/adapters/http/reqctx"
	"github.com/JeanGrijp/secure-api/internal/core/domain"
)

const (
	WelcomeMessage      = "Bienvenue sur l'API sécurisée"
	SimulatedErrorText  = "Une erreur est survenue"
	LoginSuccessMessage = "Connexion réussie"
)

// Handler não guarda estado entre requisições; só o logger.
type Handler struct {
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *Handler {
	return &Handler{logger: logger}
}

// Welcome responde GET /.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.logger.Infof("Accès à la page principale depuis %s", reqctx.ClientIP(r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(WelcomeMessage))
}

// SimulatedError responde GET /error com 500 para exercitar o error.log.
func (h *Handler) SimulatedError(w http.ResponseWriter, r *http.Request) {
	h.logger.Errorf("Erreur simulée - Requête de %s", reqctx.ClientIP(r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(SimulatedErrorText))
}

// Login responde POST /login. Qualquer credencial é aceita; a senha só aparece mascarada no log.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := reqctx.ClientIP(r)

	attempt, err := domain.NewLoginAttempt(reqctx.Body(r.Context()))
	if err != nil {
		h.logger.Errorf("Tentative de connexion invalide - %v - IP: %s", err, ip)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	masked := attempt.Masked()
	h.logger.Infof("Tentative de connexion - Login: %s, Password: %s - IP: %s", masked.Login, masked.Password, ip)

	writeJSON(w, http.StatusOK, map[string]string{"message": LoginSuccessMessage})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
