package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
)

// Announcer tells owners and managers about payroll runs.
type Announcer struct {
	svc      notification.Service
	userRepo user.UserRepository
}

func NewAnnouncer(svc notification.Service, userRepo user.UserRepository) *Announcer {
	return &Announcer{svc: svc, userRepo: userRepo}
}

// PayrollGenerated matches the payroll service Generated hook.
func (a *Announcer) PayrollGenerated(ctx context.Context, period payroll.Period, records int) {
	a.announce(ctx, notification.TypePayrollGenerated,
		"تم إنشاء مسودة الرواتب",
		fmt.Sprintf("تم إنشاء %d سجل رواتب لشهر %02d/%d", records, period.Month, period.Year),
		map[string]interface{}{
			"period_month": period.Month,
			"period_year":  period.Year,
			"records":      records,
		})
}

// PayrollFinalized matches the payroll service Finalized hook.
func (a *Announcer) PayrollFinalized(ctx context.Context, recordIDs []string, paidBy string) {
	a.announce(ctx, notification.TypePayrollFinalized,
		"تم صرف الرواتب",
		fmt.Sprintf("تم صرف %d سجل رواتب", len(recordIDs)),
		map[string]interface{}{
			"record_ids": recordIDs,
			"paid_by":    paidBy,
		})
}

func (a *Announcer) announce(ctx context.Context, typ notification.NotificationType, title, message string, data map[string]interface{}) {
	recipients, err := a.userRepo.ListByRoles(ctx, user.RoleOwner, user.RoleManager)
	if err != nil {
		slog.Error("failed to list notification recipients", "type", typ, "error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for _, u := range recipients {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: u.ID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}

	if err := a.svc.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Warn("failed to queue notifications", "type", typ, "recipients", len(reqs), "error", err)
	}
}
