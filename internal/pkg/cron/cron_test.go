package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceAndStart(t *testing.T) {
	var ok, failed atomic.Int32
	s := NewScheduler()
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		ok.Add(1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		failed.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(1), failed.Load())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return ok.Load() == 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

type recordingNotifier struct {
	notification.Service
	reqs []notification.CreateNotificationRequest
}

func (r *recordingNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	r.reqs = append(r.reqs, reqs...)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCheckLongOpenShifts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	empRepo := memory.NewEmployeeRepository(store)
	attRepo := memory.NewAttendanceRepository(store)
	userRepo := memory.NewUserRepository(store)

	for _, e := range []employee.Employee{
		{ID: "emp-hiba", Name: "هبة", IsActive: true},
		{ID: "emp-mona", Name: "منى", IsActive: true},
	} {
		_, err := empRepo.Create(ctx, e)
		require.NoError(t, err)
	}
	for _, u := range []user.User{
		{ID: "u-owner", Email: "owner@x", Role: user.RoleOwner, IsActive: true},
		{ID: "u-manager", Email: "manager@x", Role: user.RoleManager, IsActive: true},
		{ID: "u-cashier", Email: "cashier@x", Role: user.RoleCashier, IsActive: true},
		{ID: "u-old", Email: "old@x", Role: user.RoleManager, IsActive: false},
	} {
		_, err := userRepo.Create(ctx, u)
		require.NoError(t, err)
	}

	today := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	records := []attendance.Record{
		{ID: "att-open-long", EmployeeID: "emp-hiba", Date: today, Status: attendance.StatusPresent, CheckIn: strPtr("08:00")},
		{ID: "att-open-short", EmployeeID: "emp-mona", Date: today, Status: attendance.StatusPresent, CheckIn: strPtr("12:00")},
		{ID: "att-closed", EmployeeID: "emp-mona", Date: today.AddDate(0, 0, -1), Status: attendance.StatusPresent, CheckIn: strPtr("06:00")},
	}
	for _, r := range records {
		_, err := attRepo.Create(ctx, r)
		require.NoError(t, err)
	}

	now := time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	jobs := NewAttendanceJobs(attRepo, userRepo, notifier, AttendanceJobsConfig{
		LongShift: 10 * time.Hour,
		Now:       func() time.Time { return now },
	})

	require.NoError(t, jobs.CheckLongOpenShifts(ctx))
	require.Len(t, notifier.reqs, 2)

	recipients := []string{notifier.reqs[0].RecipientID, notifier.reqs[1].RecipientID}
	assert.ElementsMatch(t, []string{"u-owner", "u-manager"}, recipients)
	req := notifier.reqs[0]
	assert.Equal(t, notification.TypeLongOpenShift, req.Type)
	assert.Equal(t, "att-open-long", req.Data["attendance_id"])
	assert.Equal(t, "10:30", req.Data["open_hours"])
	assert.Contains(t, req.Message, "هبة")

	// Reported once per record.
	require.NoError(t, jobs.CheckLongOpenShifts(ctx))
	assert.Len(t, notifier.reqs, 2)

	// The short shift crosses the threshold later.
	now = time.Date(2025, 3, 4, 22, 0, 0, 0, time.UTC)
	require.NoError(t, jobs.CheckLongOpenShifts(ctx))
	require.Len(t, notifier.reqs, 4)
	assert.Equal(t, "att-open-short", notifier.reqs[3].Data["attendance_id"])
}

func TestCheckLongOpenShifts_NothingOpen(t *testing.T) {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	jobs := NewAttendanceJobs(memory.NewAttendanceRepository(store), memory.NewUserRepository(store), notifier, AttendanceJobsConfig{})

	require.NoError(t, jobs.CheckLongOpenShifts(context.Background()))
	assert.Empty(t, notifier.reqs)
}
