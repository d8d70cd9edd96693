package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

var Statuses = []string{
	string(StatusPresent), string(StatusAbsent), string(StatusLate),
	string(StatusHalfDay), string(StatusLeave), string(StatusHoliday),
}

type LeaveType string

const (
	LeaveSick   LeaveType = "sick"
	LeaveCasual LeaveType = "casual"
	LeaveAnnual LeaveType = "annual"
	LeaveUnpaid LeaveType = "unpaid"
	LeaveOther  LeaveType = "other"
)

var LeaveTypes = []string{
	string(LeaveSick), string(LeaveCasual), string(LeaveAnnual), string(LeaveUnpaid), string(LeaveOther),
}

type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`
}

// EmployeeSummary holds the display fields joined from the team directory.
type EmployeeSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	AvatarURL  string  `json:"avatar_url"`
	Department string  `json:"department"`
	Email      *string `json:"email,omitempty"`
}

type Attendance struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Date        time.Time  `json:"date"`
	CheckIn     time.Time  `json:"check_in"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	Status      Status     `json:"status"`
	LeaveType   *LeaveType `json:"leave_type,omitempty"`
	WorkHours   float64    `json:"work_hours"`
	Overtime    float64    `json:"overtime"`
	LateMinutes int        `json:"late_minutes"`
	Location    *Location  `json:"location,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	IsApproved  bool       `json:"is_approved"`
	ApprovedBy  *string    `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	IPAddress   *string    `json:"ip_address,omitempty"`
	Device      *string    `json:"device,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Join
	Employee     *EmployeeSummary `json:"employee,omitempty"`
	ApproverName *string          `json:"approver_name,omitempty"`
}

// IsOpen reports whether the record still waits for a check-out.
func (a *Attendance) IsOpen() bool {
	return a.CheckOut == nil
}
