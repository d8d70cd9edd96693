package http

import (
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/dashboard"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetOverview returns site-wide counts and recent activity
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetAttendance returns today's snapshot and the stats over a date window
	GetAttendance(w http.ResponseWriter, r *http.Request)
	GetProducts(w http.ResponseWriter, r *http.Request)
	GetTeam(w http.ResponseWriter, r *http.Request)
	GetContacts(w http.ResponseWriter, r *http.Request)
	// GetAnalytics returns growth over the trailing period in days
	GetAnalytics(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetOverview handles GET /dashboard/overview
func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAttendance handles GET /dashboard/attendance?start_date=&end_date=
func (h *dashboardHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	filter := dashboard.AttendanceDashboardFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}

	result, err := h.dashboardService.GetAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetProducts handles GET /dashboard/products
func (h *dashboardHandlerImpl) GetProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetProducts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeam handles GET /dashboard/team
func (h *dashboardHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetTeam(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetContacts handles GET /dashboard/contacts
func (h *dashboardHandlerImpl) GetContacts(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetContacts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAnalytics handles GET /dashboard/analytics?period=30
func (h *dashboardHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	filter := dashboard.AnalyticsFilter{Period: queryInt(r, "period", 0)}

	result, err := h.dashboardService.GetAnalytics(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
