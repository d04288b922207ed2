package handlers

import (
	"net/http"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

// StatsHandler serves the admin reporting views.
type StatsHandler struct {
	Reporting *reporting.Service
}

func NewStatsHandler(rep *reporting.Service) *StatsHandler {
	return &StatsHandler{Reporting: rep}
}

// GET /api/admin/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reporting.BuildStats()
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}

// GET /api/admin/all-borrowals
func (h *StatsHandler) GetAllBorrowals(w http.ResponseWriter, r *http.Request) {
	records, err := h.Reporting.AllBorrowals()
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, records)
}
