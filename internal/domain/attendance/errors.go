package attendance

import "errors"

var (
	ErrDuplicateEntry        = errors.New("attendance already recorded for this employee today")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedOut     = errors.New("attendance has already been checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check_out must be after check_in")
	ErrApproverNotFound      = errors.New("approver not found")
)
