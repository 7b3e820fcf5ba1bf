package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	attendanceService "github.com/lumiere-salon/salon-backend-go/internal/service/attendance"
)

// AttendanceJobsConfig tunes the attendance jobs.
type AttendanceJobsConfig struct {
	// Interval between long open shift checks. Default 5m.
	Interval time.Duration
	// LongShift is how long a check-in may stay open before managers are
	// told. Default 10h.
	LongShift time.Duration
	Location  *time.Location
	Now       func() time.Time
}

type AttendanceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	userRepo        user.UserRepository
	notificationSvc notification.Service
	config          AttendanceJobsConfig

	mu       sync.Mutex
	notified map[string]string // attendance id -> day it was reported
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	notificationSvc notification.Service,
	cfg AttendanceJobsConfig,
) *AttendanceJobs {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.LongShift <= 0 {
		cfg.LongShift = 10 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		config:          cfg,
		notified:        make(map[string]string),
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("long_open_shift_check", j.config.Interval, j.CheckLongOpenShifts)
}

// CheckLongOpenShifts notifies owners and managers about today's check-ins
// that have stayed open longer than LongShift. Each record is reported once.
func (j *AttendanceJobs) CheckLongOpenShifts(ctx context.Context) error {
	now := j.config.Now().In(j.config.Location)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dayKey := today.Format("2006-01-02")
	nowMinutes := now.Hour()*60 + now.Minute()
	threshold := int(j.config.LongShift / time.Minute)

	open, err := j.attendanceRepo.ListOpenOn(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open shifts: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	for id, day := range j.notified {
		if day != dayKey {
			delete(j.notified, id)
		}
	}

	var stale []attendance.Record
	for _, rec := range open {
		if _, done := j.notified[rec.ID]; done {
			continue
		}
		in, ok := attendanceService.ParseTimeToMinutes(rec.CheckInValue())
		if !ok || nowMinutes-in < threshold {
			continue
		}
		stale = append(stale, rec)
	}
	if len(stale) == 0 {
		return nil
	}

	recipients, err := j.userRepo.ListByRoles(ctx, user.RoleOwner, user.RoleManager)
	if err != nil {
		return fmt.Errorf("failed to list recipients: %w", err)
	}

	var reqs []notification.CreateNotificationRequest
	for _, rec := range stale {
		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		in, _ := attendanceService.ParseTimeToMinutes(rec.CheckInValue())
		openHours := attendanceService.FormatHours(float64(nowMinutes-in) / 60)

		for _, u := range recipients {
			reqs = append(reqs, notification.CreateNotificationRequest{
				RecipientID: u.ID,
				Type:        notification.TypeLongOpenShift,
				Title:       "وردية مفتوحة لفترة طويلة",
				Message:     fmt.Sprintf("%s سجلت الحضور الساعة %s ولم تسجل الانصراف منذ %s", name, rec.CheckInValue(), openHours),
				Data: map[string]interface{}{
					"attendance_id": rec.ID,
					"employee_id":   rec.EmployeeID,
					"check_in":      rec.CheckInValue(),
					"open_hours":    openHours,
				},
			})
		}
		j.notified[rec.ID] = dayKey
	}

	slog.Info("long open shifts reported", "shifts", len(stale), "recipients", len(recipients))
	return j.notificationSvc.QueueBulkNotification(ctx, reqs)
}
