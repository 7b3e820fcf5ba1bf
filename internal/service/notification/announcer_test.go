package notification

import (
	"context"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/sse"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	for _, u := range []user.User{
		{ID: "u-owner", Email: "owner@salon.test", Role: user.RoleOwner, IsActive: true},
		{ID: "u-manager", Email: "manager@salon.test", Role: user.RoleManager, IsActive: true},
		{ID: "u-cashier", Email: "cashier@salon.test", Role: user.RoleCashier, IsActive: true},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	repo := memory.NewNotificationRepository(store)
	svc := NewNotificationService(repo, sse.NewHub(8), Config{FlushInterval: time.Hour})
	svc.Start(ctx)

	a := NewAnnouncer(svc, users)
	a.PayrollGenerated(ctx, payroll.Period{Month: 3, Year: 2025}, 4)
	a.PayrollFinalized(ctx, []string{"rec-1", "rec-2"}, "u-owner")
	svc.Stop()

	owner, total, err := repo.GetByUserID(ctx, "u-owner", 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	types := map[notification.NotificationType]notification.Notification{}
	for _, n := range owner {
		types[n.Type] = n
	}
	require.Contains(t, types, notification.TypePayrollGenerated)
	require.Contains(t, types, notification.TypePayrollFinalized)
	assert.Contains(t, types[notification.TypePayrollGenerated].Message, "03/2025")
	assert.Equal(t, "u-owner", types[notification.TypePayrollFinalized].Data["paid_by"])

	count, err := repo.GetUnreadCount(ctx, "u-manager")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.GetUnreadCount(ctx, "u-cashier")
	require.NoError(t, err)
	assert.Zero(t, count)
}
