package http

import (
	"net/http"

	"github.com/hadirhq/hadir-backend-go/internal/domain/dashboard"
	"github.com/hadirhq/hadir-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	TodaySummary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// TodaySummary implements DashboardHandler.
func (d *DashboardHandlerImpl) TodaySummary(w http.ResponseWriter, r *http.Request) {
	result, err := d.dashboardService.TodaySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
