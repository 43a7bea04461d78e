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

type EventHandler struct {
	events inbound.EventUseCase
	log    logger.Logger
}

func NewEventHandler(events inbound.EventUseCase, log logger.Logger) *EventHandler {
	return &EventHandler{events: events, log: log}
}

func eventQueryFrom(r *http.Request) inbound.EventQuery {
	q := r.URL.Query()
	return inbound.EventQuery{
		PageQuery: pageQuery(r),
		Filters: outbound.EventFilters{
			Statut:    q.Get("statut"),
			TypeEvent: q.Get("typeEvent"),
			Search:    q.Get("search"),
			From:      queryTime(r, "from"),
			To:        queryTime(r, "to"),
		},
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	query := eventQueryFrom(r)
	query.Filters.ClubID = r.URL.Query().Get("clubId")
	page, err := h.events.List(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événements récupérés", page)
}

func (h *EventHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	page, err := h.events.PublicList(r.Context(), eventQueryFrom(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événements récupérés", page)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événement récupéré", event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := h.events.Create(r.Context(), principal, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Événement créé avec succès", event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := h.events.Update(r.Context(), principal, mux.Vars(r)["id"], req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événement mis à jour", event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if err := h.events.Delete(r.Context(), principal, mux.Vars(r)["id"]); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événement supprimé avec succès", nil)
}

func (h *EventHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statut      string `json:"statut"`
		RaisonRejet string `json:"raisonRejet"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Corps de requête invalide")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := h.events.Validate(r.Context(), principal, mux.Vars(r)["id"], req.Statut, req.RaisonRejet)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statut de l'événement mis à jour", event)
}

func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	page, err := h.events.MyEvents(r.Context(), principal, eventQueryFrom(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événements récupérés", page)
}

func (h *EventHandler) ByClub(w http.ResponseWriter, r *http.Request) {
	page, err := h.events.ByClub(r.Context(), mux.Vars(r)["id"], eventQueryFrom(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Événements récupérés", page)
}

func (h *EventHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.events.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statistiques récupérées", stats)
}
