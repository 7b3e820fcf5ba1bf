package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
)

// Options configure the attendance service.
type Options struct {
	// DefaultShiftStart ("HH:MM") applies to employees without their own.
	DefaultShiftStart string
	// Location is the salon's time zone, used to decide what "today" is.
	Location *time.Location
	Now      func() time.Time
	// Changed is called after a record is written, so derived payslips can
	// be invalidated.
	Changed func(ctx context.Context, employeeID string, date time.Time)
}

type AttendanceServiceImpl struct {
	attendanceRepo    attendance.AttendanceRepository
	employeeRepo      employee.EmployeeRepository
	defaultShiftStart string
	location          *time.Location
	now               func() time.Time
	changed           func(ctx context.Context, employeeID string, date time.Time)
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	opts Options,
) attendance.AttendanceService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AttendanceServiceImpl{
		attendanceRepo:    attendanceRepo,
		employeeRepo:      employeeRepo,
		defaultShiftStart: opts.DefaultShiftStart,
		location:          opts.Location,
		now:               opts.Now,
		changed:           opts.Changed,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if req.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrNoEmployeeLinked
	}

	emp, err := a.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	today := dateOnly(nowLocal)

	existing, err := a.findToday(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := nowLocal.Format("15:04")
	start := a.shiftStart(emp)
	status := attendance.StatusPresent
	var lateMinutes attendance.Numeric
	if in, ok := ParseTimeToMinutes(checkIn); ok {
		if s, ok := ParseTimeToMinutes(start); ok && in > s {
			status = attendance.StatusLate
			lateMinutes = attendance.NumericFromInt(in - s)
		}
	}

	created, err := a.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID:  emp.ID,
		Date:        today,
		Status:      status,
		CheckIn:     &checkIn,
		LateMinutes: lateMinutes,
		Notes:       req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	a.notifyChanged(ctx, created)

	return toResponse(created, start), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if req.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrNoEmployeeLinked
	}

	emp, err := a.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	rec, err := a.findToday(ctx, emp.ID, dateOnly(nowLocal))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec == nil || rec.CheckInValue() == "" || rec.CheckOutValue() != "" {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	checkOut := nowLocal.Format("15:04")
	rec.CheckOut = &checkOut
	if hours, ok := ComputeWorkHours(rec.CheckInValue(), checkOut); ok {
		rec.WorkHours = attendance.NumericFromFloat(roundHours(hours))
	}
	if _, ok := req.Advance.Float(); ok {
		rec.Advance = req.Advance
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := a.attendanceRepo.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	a.notifyChanged(ctx, *rec)

	return a.GetAttendance(ctx, rec.ID)
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	created, err := a.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID:  emp.ID,
		Date:        date,
		Status:      attendance.NormalizeStatus(req.Status),
		CheckIn:     trimmed(req.CheckIn),
		CheckOut:    trimmed(req.CheckOut),
		WorkHours:   req.WorkHours,
		LateMinutes: req.LateMinutes,
		Advance:     req.Advance,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	a.notifyChanged(ctx, created)

	return toResponse(created, a.shiftStart(emp)), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Status != nil {
		rec.Status = attendance.NormalizeStatus(*req.Status)
	}
	if req.CheckIn != nil {
		rec.CheckIn = trimmed(req.CheckIn)
	}
	if req.CheckOut != nil {
		rec.CheckOut = trimmed(req.CheckOut)
	}
	if req.WorkHours != nil {
		rec.WorkHours = *req.WorkHours
	}
	if req.LateMinutes != nil {
		rec.LateMinutes = *req.LateMinutes
	}
	if req.Advance != nil {
		rec.Advance = *req.Advance
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := a.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	a.notifyChanged(ctx, rec)

	return a.GetAttendance(ctx, rec.ID)
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	start := a.defaultShiftStart
	if emp, err := a.employeeRepo.GetByID(ctx, rec.EmployeeID); err == nil {
		start = a.shiftStart(emp)
	}

	return toResponse(rec, start), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	starts := make(map[string]string)
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		start, ok := starts[rec.EmployeeID]
		if !ok {
			start = a.defaultShiftStart
			if emp, err := a.employeeRepo.GetByID(ctx, rec.EmployeeID); err == nil {
				start = a.shiftStart(emp)
			}
			starts[rec.EmployeeID] = start
		}
		responses = append(responses, toResponse(rec, start))
	}

	return attendance.ListAttendanceResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	rec, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	a.notifyChanged(ctx, rec)
	return nil
}

// ========== HELPERS ==========

func (a *AttendanceServiceImpl) notifyChanged(ctx context.Context, rec attendance.Record) {
	if a.changed != nil {
		a.changed(ctx, rec.EmployeeID, rec.Date)
	}
}

func (a *AttendanceServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := a.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, attendance.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (a *AttendanceServiceImpl) shiftStart(emp employee.Employee) string {
	if emp.ShiftStart != nil && strings.TrimSpace(*emp.ShiftStart) != "" {
		return *emp.ShiftStart
	}
	return a.defaultShiftStart
}

// findToday returns the employee's record dated day, or nil.
func (a *AttendanceServiceImpl) findToday(ctx context.Context, employeeID string, day time.Time) (*attendance.Record, error) {
	month, year := int(day.Month()), day.Year()
	records, err := a.attendanceRepo.ListByPeriod(ctx, month, year, []string{employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	for i := range records {
		if records[i].Date.Day() == day.Day() {
			return &records[i], nil
		}
	}
	return nil, nil
}

func toResponse(rec attendance.Record, scheduledStart string) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		StatusLabel:  rec.Status.Label(),
		CheckIn:      rec.CheckIn,
		CheckOut:     rec.CheckOut,
		LateMinutes:  LateMinutes(rec, scheduledStart),
		Advance:      rec.Advance,
		Notes:        rec.Notes,
	}

	hours, ok := DisplayWorkHours(rec)
	if ok {
		rounded := roundHours(hours)
		resp.WorkHours = &rounded
	}
	resp.DisplayHours = FormatOptionalHours(hours, ok)

	return resp
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
