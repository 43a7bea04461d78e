package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type ClubHandler struct {
	clubs inbound.ClubUseCase
	log   logger.Logger
}

func NewClubHandler(clubs inbound.ClubUseCase, log logger.Logger) *ClubHandler {
	return &ClubHandler{clubs: clubs, log: log}
}

func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := inbound.ClubQuery{
		PageQuery: pageQuery(r),
		Filters: outbound.ClubFilters{
			Statut:    q.Get("statut"),
			Categorie: q.Get("categorie"),
			Search:    q.Get("search"),
		},
	}
	page, err := h.clubs.List(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Clubs récupérés", page)
}

func (h *ClubHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := inbound.ClubQuery{
		PageQuery: pageQuery(r),
		Filters: outbound.ClubFilters{
			Categorie: q.Get("categorie"),
			Search:    q.Get("search"),
		},
	}
	page, err := h.clubs.PublicList(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Clubs récupérés", page)
}

func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	club, err := h.clubs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Club récupéré", club)
}

func (h *ClubHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	club, err := h.clubs.PublicGet(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Club récupéré", club)
}

func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateClubRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	created, err := h.clubs.Create(r.Context(), principal, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Club créé avec succès", created)
}

func (h *ClubHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statut      string `json:"statut"`
		RaisonRejet string `json:"raisonRejet"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	club, err := h.clubs.UpdateStatus(r.Context(), principal, mux.Vars(r)["id"], req.Statut, req.RaisonRejet)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statut du club mis à jour", club)
}

func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := h.clubs.Delete(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Club supprimé avec succès", nil)
}

func (h *ClubHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	club, err := h.clubs.MyProfile(r.Context(), principal)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Profil récupéré", club)
}

func (h *ClubHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateClubProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	club, err := h.clubs.UpdateProfile(r.Context(), principal, mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Profil mis à jour", club)
}

func (h *ClubHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clubs.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statistiques récupérées", stats)
}

func (h *ClubHandler) CheckFirstLogin(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	first, err := h.clubs.CheckFirstLogin(r.Context(), principal)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statut de première connexion", map[string]bool{"premiereConnexion": first})
}

func (h *ClubHandler) CompleteFirstLogin(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateClubProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	club, err := h.clubs.CompleteFirstLogin(r.Context(), principal, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Profil complété avec succès", club)
}
