package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNameExists = errors.New("employee name already exists")
	ErrInvalidSalaryType  = errors.New("invalid salary type")
	ErrEmployeeHasPayroll = errors.New("employee has draft payroll records, finalize or delete them first")
)
