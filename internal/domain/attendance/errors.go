package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrNoEmployeeLinked   = errors.New("account is not linked to an employee")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no open check-in for today")
)
