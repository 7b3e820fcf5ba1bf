package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
)

type notificationRepositoryImpl struct {
	store *Store
}

func NewNotificationRepository(store *Store) notification.Repository {
	return &notificationRepositoryImpl{store: store}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = r.store.now()
		}
		r.store.notifications[n.ID] = n
	}
	return nil
}

func (r *notificationRepositoryImpl) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]notification.Notification, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []notification.Notification
	for _, n := range r.store.notifications {
		if n.RecipientID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return paginate(out, page, pageSize), len(out), nil
}

func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, n := range r.store.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	for _, id := range ids {
		n, ok := r.store.notifications[id]
		if !ok || n.RecipientID != userID || n.IsRead {
			continue
		}
		n.IsRead = true
		n.ReadAt = &now
		r.store.notifications[id] = n
	}
	return nil
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	for id, n := range r.store.notifications {
		if n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
			r.store.notifications[id] = n
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[id]
	if !ok || n.RecipientID != userID {
		return notification.ErrNotificationNotFound
	}
	delete(r.store.notifications, id)
	return nil
}
