package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeInactive      = errors.New("employee is not active")
	ErrEmployeeHasAttendance = errors.New("employee has attendance records")
)
