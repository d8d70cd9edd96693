package attendance

import (
	"time"
	"unicode/utf8"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const maxNotesLength = 500

// ========================================
// CHECK-IN / CHECK-OUT
// ========================================

type CheckInRequest struct {
	EmployeeID string    `json:"employee_id"`
	Location   *Location `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	IPAddress  string    `json:"-"`
	Device     string    `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, validateLocation(r.Location)...)
	errs = append(errs, validateNotes(r.Notes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	if errs := validateNotes(r.Notes); len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// ADMIN CRUD
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID string    `json:"employee_id"`
	Date       *string   `json:"date,omitempty"`      // YYYY-MM-DD, defaults to the check-in day
	CheckIn    string    `json:"check_in"`            // RFC3339
	CheckOut   *string   `json:"check_out,omitempty"` // RFC3339
	Status     *string   `json:"status,omitempty"`
	LeaveType  *string   `json:"leave_type,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`

	ParsedDate     *time.Time `json:"-"`
	ParsedCheckIn  time.Time  `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDate = &d
		}
	}

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	} else {
		r.ParsedCheckIn = t
	}

	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		} else {
			r.ParsedCheckOut = &t
		}
	}

	if r.ParsedCheckOut != nil && !r.ParsedCheckIn.IsZero() && !r.ParsedCheckOut.After(r.ParsedCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: ErrCheckOutBeforeCheckIn.Error(),
		})
	}

	errs = append(errs, validateStatus(r.Status, r.LeaveType)...)
	errs = append(errs, validateLocation(r.Location)...)
	errs = append(errs, validateNotes(r.Notes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is the admin override path. Derived fields given
// here win over recomputation.
type UpdateAttendanceRequest struct {
	Date        *string   `json:"date,omitempty"`
	CheckIn     *string   `json:"check_in,omitempty"`
	CheckOut    *string   `json:"check_out,omitempty"`
	Status      *string   `json:"status,omitempty"`
	LeaveType   *string   `json:"leave_type,omitempty"`
	WorkHours   *float64  `json:"work_hours,omitempty"`
	Overtime    *float64  `json:"overtime,omitempty"`
	LateMinutes *int      `json:"late_minutes,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Notes       *string   `json:"notes,omitempty"`

	ParsedDate     *time.Time `json:"-"`
	ParsedCheckIn  *time.Time `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date == nil && r.CheckIn == nil && r.CheckOut == nil && r.Status == nil && r.LeaveType == nil &&
		r.WorkHours == nil && r.Overtime == nil && r.LateMinutes == nil && r.Location == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}

	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDate = &d
		}
	}

	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC3339 timestamp",
			})
		} else {
			r.ParsedCheckIn = &t
		}
	}

	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		} else {
			r.ParsedCheckOut = &t
		}
	}

	if r.WorkHours != nil && *r.WorkHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours",
			Message: "work_hours must not be negative",
		})
	}
	if r.Overtime != nil && *r.Overtime < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime",
			Message: "overtime must not be negative",
		})
	}
	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_minutes",
			Message: "late_minutes must not be negative",
		})
	}

	errs = append(errs, validateStatus(r.Status, r.LeaveType)...)
	errs = append(errs, validateLocation(r.Location)...)
	errs = append(errs, validateNotes(r.Notes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// QUERIES
// ========================================

type AttendanceFilter struct {
	listing.Params
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	IsApproved *bool
}

var SortableFields = []string{"date", "check_in", "status", "work_hours", "late_minutes", "created_at"}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := f.Params.Validate(SortableFields, "date", "desc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}
	errs = append(errs, validateRange(f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	Attendances []Attendance `json:"attendances"`
	Meta        listing.Meta `json:"-"`
}

type EmployeeAttendanceFilter struct {
	EmployeeID string
	StartDate  *string
	EndDate    *string
}

func (f *EmployeeAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	errs = append(errs, validateRange(f.StartDate, f.EndDate)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatsFilter struct {
	StartDate *string
	EndDate   *string
}

func (f *StatsFilter) Validate() error {
	if errs := validateRange(f.StartDate, f.EndDate); len(errs) > 0 {
		return errs
	}
	return nil
}

type StatusStat struct {
	Status        Status  `json:"status"`
	Count         int64   `json:"count"`
	AvgWorkHours  float64 `json:"avg_work_hours"`
	TotalOvertime float64 `json:"total_overtime"`
}

type AttendanceStats struct {
	TotalEmployees int64        `json:"total_employees"`
	TodayPresent   int64        `json:"today_present"`
	TodayAbsent    int64        `json:"today_absent"`
	ByStatus       []StatusStat `json:"by_status"`
	LateComers     []Attendance `json:"late_comers"`
}

// MonthlyReportRequest selects a calendar month. Zero values mean the
// current month.
type MonthlyReportRequest struct {
	Year  int
	Month int
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year != 0 && (r.Year < 2000 || r.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.Month != 0 && (r.Month < 1 || r.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeRollup is the raw per-employee aggregate for a period.
type EmployeeRollup struct {
	EmployeeID       string
	EmployeeName     string
	EmployeePosition string
	TotalDays        int
	PresentDays      int
	LateDays         int
	AbsentDays       int
	TotalWorkHours   float64
	TotalOvertime    float64
	AvgLateMinutes   float64
}

type MonthlyReportRow struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	EmployeePosition string  `json:"employee_position"`
	TotalDays        int     `json:"total_days"`
	PresentDays      int     `json:"present_days"`
	LateDays         int     `json:"late_days"`
	AbsentDays       int     `json:"absent_days"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	TotalOvertime    float64 `json:"total_overtime"`
	AvgLateMinutes   float64 `json:"avg_late_minutes"`
	AttendanceRate   float64 `json:"attendance_rate"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type MonthlyReport struct {
	Period Period             `json:"period"`
	Count  int                `json:"count"`
	Rows   []MonthlyReportRow `json:"rows"`
}

// ========================================
// SHARED CHECKS
// ========================================

func validateNotes(notes *string) validator.ValidationErrors {
	if notes != nil && utf8.RuneCountInString(*notes) > maxNotesLength {
		return validator.ValidationErrors{{Field: "notes", Message: "notes must not exceed 500 characters"}}
	}
	return nil
}

func validateLocation(loc *Location) validator.ValidationErrors {
	if loc == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if loc.Latitude != nil && (*loc.Latitude < -90 || *loc.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if loc.Longitude != nil && (*loc.Longitude < -180 || *loc.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if (loc.Latitude == nil) != (loc.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	return errs
}

func validateStatus(status, leaveType *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if status != nil && !validator.IsInSlice(*status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half-day, leave, holiday",
		})
	}
	if leaveType != nil && !validator.IsInSlice(*leaveType, LeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: sick, casual, annual, unpaid, other",
		})
	}
	return errs
}

func validateRange(start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	var from, to time.Time
	if start != nil && *start != "" {
		d, ok := validator.IsValidDate(*start)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		from = d
	}
	if end != nil && *end != "" {
		d, ok := validator.IsValidDate(*end)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		to = d
	}
	if len(errs) == 0 && !from.IsZero() && !to.IsZero() && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	return errs
}
