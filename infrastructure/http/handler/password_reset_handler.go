package handler

import (
	"net/http"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type PasswordResetHandler struct {
	reset inbound.PasswordResetUseCase
	log   logger.Logger
}

func NewPasswordResetHandler(reset inbound.PasswordResetUseCase, log logger.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{reset: reset, log: log}
}

// Request answers identically whether or not the email exists.
func (h *PasswordResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req inbound.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	if err := h.reset.Request(r.Context(), req); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Si un compte existe avec cet email, un lien de réinitialisation a été envoyé", nil)
}

func (h *PasswordResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req inbound.PasswordResetConfirm
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	if err := h.reset.Reset(r.Context(), req); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Mot de passe réinitialisé avec succès", nil)
}

func (h *PasswordResetHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.reset.VerifyToken(r.Context(), q.Get("token"), q.Get("type")); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Token valide", nil)
}
