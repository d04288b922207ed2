package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

// DashboardHandler serves the borrower's dashboard view.
type DashboardHandler struct {
	Reporting *reporting.Service
}

func NewDashboardHandler(rep *reporting.Service) *DashboardHandler {
	return &DashboardHandler{Reporting: rep}
}

type dashboardResponse struct {
	Status string `json:"status"`
	reporting.Dashboard
}

// GET /dashboard-data/{email}
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		utils.JSONError(w, "Email is required", http.StatusBadRequest)
		return
	}

	dash, err := h.Reporting.BuildDashboard(email)
	if err != nil {
		utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, dashboardResponse{Status: "success", Dashboard: dash})
}
