package notification

import (
	"time"
)

// NotificationType names what a notification is about. Dashboards pick the
// icon and link from it.
type NotificationType string

const (
	// A check-in is still open hours after the shift began.
	TypeLongOpenShift    NotificationType = "long_open_shift"
	TypePayrollGenerated NotificationType = "payroll_generated"
	TypePayrollFinalized NotificationType = "payroll_finalized"
)

var typeLabels = map[NotificationType]string{
	TypeLongOpenShift:    "وردية مفتوحة",
	TypePayrollGenerated: "مسودة الرواتب",
	TypePayrollFinalized: "صرف الرواتب",
}

// Label is the Arabic caption shown next to the notification.
func (t NotificationType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t NotificationType) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Notification is a message for one dashboard user.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
