package handler

import (
	"net/http"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/http/validator"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type AuthHandler struct {
	auth inbound.AuthUseCase
	log  logger.Logger
}

func NewAuthHandler(auth inbound.AuthUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	if !validator.ValidateEmail(req.Email) || !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Email et mot de passe sont requis")
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Connexion réussie", result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := h.auth.Logout(r.Context(), principal); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Déconnexion réussie", nil)
}

// Me returns the freshly resolved principal behind the current token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		response.Unauthorized(w, "Authentification requise")
		return
	}

	var payload interface{}
	switch {
	case principal.Admin != nil:
		payload = principal.Admin
	case principal.User != nil:
		payload = principal.User
	case principal.Club != nil:
		payload = principal.Club
	}
	response.Success(w, http.StatusOK, "Profil récupéré", payload)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	var req inbound.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	if err := h.auth.ChangePassword(r.Context(), principal, req); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Mot de passe modifié avec succès", nil)
}
