package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/http/validator"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type UserHandler struct {
	users inbound.UserManagementUseCase
	log   logger.Logger
}

func NewUserHandler(users inbound.UserManagementUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := inbound.UserQuery{
		PageQuery: pageQuery(r),
		Filters: outbound.UserFilters{
			Role:   q.Get("role"),
			Statut: q.Get("statut"),
			Search: q.Get("search"),
		},
	}
	page, err := h.users.List(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Utilisateurs récupérés", page)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Utilisateur récupéré", user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Email invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	user, err := h.users.Create(r.Context(), principal, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Utilisateur créé avec succès", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	user, err := h.users.Update(r.Context(), principal, mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Utilisateur mis à jour", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := h.users.Delete(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Utilisateur supprimé avec succès", nil)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := h.users.ResetPassword(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Mot de passe réinitialisé et envoyé par email", nil)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statistiques récupérées", stats)
}
