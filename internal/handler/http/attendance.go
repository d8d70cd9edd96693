package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/middleware"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/export"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IPAddress = clientIP(r)
	req.Device = r.UserAgent()

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	// The body is optional.
	var req attendance.CheckOutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CheckOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckOut(r.Context(), id, req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// GetByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeId")
	if !ok {
		return
	}

	filter := attendance.EmployeeAttendanceFilter{
		EmployeeID: employeeID,
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}

	results, err := h.attendanceService.GetByEmployee(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	results, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	filter := attendance.StatsFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}

	stats, err := h.attendanceService.GetStats(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetMonthlyReport implements AttendanceHandler. With ?format=csv|pdf the
// report is returned as a file download.
func (h *attendanceHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := attendance.MonthlyReportRequest{
		Year:  queryInt(r, "year", 0),
		Month: queryInt(r, "month", 0),
	}

	if raw := queryString(r, "format"); raw != nil && *raw != "json" {
		format, err := export.ParseFormat(*raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		file, err := h.attendanceService.ExportMonthlyReport(r.Context(), req, format)
		if err != nil {
			slog.Error("ExportMonthlyReport service error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.File(w, file)
		return
	}

	report, err := h.attendanceService.GetMonthlyReport(r.Context(), req)
	if err != nil {
		slog.Error("GetMonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		Params:     listing.FromRequest(r),
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		IsApproved: queryBool(r, "is_approved"),
	}

	results, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Attendances, results.Meta)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements AttendanceHandler.
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance created successfully", result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attendanceService.Approve(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		slog.Error("ApproveAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
