package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/sportscore-system/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: ds,
	}
}

func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	sportID := r.URL.Query().Get("sport_id")
	if sportID == "" {
		badRequestResponse(w, r, fmt.Errorf("sport_id query parameter is required"))
		return
	}

	rankings, err := h.dashboardService.GetRankings(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"rankings": rankings}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.dashboardService.GetSchedule(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"schedule": schedule}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit query parameter: %q", limitStr))
			return
		}
		limit = parsed
	}

	players, err := h.dashboardService.GetTopScorers(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"players": players}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
