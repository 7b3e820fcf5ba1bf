package notification

import (
	"context"
)

// Repository stores notifications. Every read and write is scoped to the
// recipient so one user can never touch another's inbox.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
}
