package handler

import (
	"net/http"
	"strconv"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type LogHandler struct {
	logs inbound.LogUseCase
	log  logger.Logger
}

func NewLogHandler(logs inbound.LogUseCase, log logger.Logger) *LogHandler {
	return &LogHandler{logs: logs, log: log}
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := inbound.LogQuery{
		PageQuery: pageQuery(r),
		Filters: outbound.LogFilters{
			Action: q.Get("action"),
			UserID: q.Get("userId"),
			From:   queryTime(r, "from"),
			To:     queryTime(r, "to"),
		},
	}
	page, err := h.logs.List(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Logs récupérés", page)
}

func (h *LogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.logs.Recent(r.Context(), limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Logs récupérés", logs)
}

func (h *LogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logs.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statistiques récupérées", stats)
}

func (h *LogHandler) CreateTestLogs(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	count, err := h.logs.CreateTestLogs(r.Context(), principal.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Logs de test créés", map[string]int{"created": count})
}

func (h *LogHandler) DeleteTestLogs(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.logs.DeleteTestLogs(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Logs de test supprimés", map[string]int64{"deleted": deleted})
}

func (h *LogHandler) CleanOrphanLogs(w http.ResponseWriter, r *http.Request) {
	report, err := h.logs.CleanOrphanLogs(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Nettoyage des logs orphelins terminé", report)
}
