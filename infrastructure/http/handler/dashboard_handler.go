package handler

import (
	"net/http"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type DashboardHandler struct {
	admin inbound.AdminUseCase
	log   logger.Logger
}

func NewDashboardHandler(admin inbound.AdminUseCase, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{admin: admin, log: log}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.DashboardStats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Statistiques du tableau de bord récupérées", stats)
}
