package notification

import (
	"context"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/sse"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(cfg Config) (notification.Service, notification.Repository, *sse.Hub) {
	repo := memory.NewNotificationRepository(memory.NewStore())
	hub := sse.NewHub(8)
	return NewNotificationService(repo, hub, cfg), repo, hub
}

func longShift(recipient string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID: recipient,
		Type:        notification.TypeLongOpenShift,
		Title:       "وردية مفتوحة",
		Message:     "هبة لم تسجل الانصراف",
		Data:        map[string]interface{}{"employee_id": "emp-hiba"},
	}
}

func TestService_StopFlushesQueue(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(Config{FlushInterval: time.Hour})
	svc.Start(ctx)

	require.NoError(t, svc.QueueBulkNotification(ctx, []notification.CreateNotificationRequest{
		longShift("user-1"), longShift("user-2"),
	}))
	svc.Stop()

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, svc.QueueNotification(ctx, longShift("user-1")), notification.ErrServiceStopped)
	svc.Stop()
}

func TestService_RejectsInvalidRequests(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(Config{})
	svc.Start(ctx)
	defer svc.Stop()

	noRecipient := longShift("")
	unknownType := longShift("user-1")
	unknownType.Type = "clock_in"

	var verr validator.ValidationErrors
	require.ErrorAs(t, svc.QueueNotification(ctx, noRecipient), &verr)
	assert.Equal(t, "recipient_id", verr[0].Field)
	require.ErrorAs(t, svc.QueueNotification(ctx, unknownType), &verr)
	assert.Equal(t, "type", verr[0].Field)

	svc.Stop()
	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_PublishesToSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _, _ := newTestService(Config{BatchSize: 1, FlushInterval: time.Hour})
	svc.Start(ctx)
	defer svc.Stop()

	events, cleanup := svc.Subscribe(ctx, "user-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(ctx, longShift("user-1")))

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, notification.TypeLongOpenShift, ev.Data.Type)
		assert.Equal(t, "emp-hiba", ev.Data.Data["employee_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestService_FullQueueInsertsDirectly(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(Config{QueueSize: 1})

	// Not started: the first request fills the queue, the second bypasses it.
	require.NoError(t, svc.QueueNotification(ctx, longShift("user-1")))
	require.NoError(t, svc.QueueNotification(ctx, longShift("user-1")))

	count, err := repo.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_ReadAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(Config{FlushInterval: time.Hour, Now: func() time.Time { return now }})
	svc.Start(ctx)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.QueueNotification(ctx, longShift("user-1")))
	}
	require.NoError(t, svc.QueueNotification(ctx, longShift("user-2")))
	svc.Stop()

	list, err := svc.GetNotifications(ctx, "user-1", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 3, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)
	require.Len(t, list.Notifications, 3)

	first := list.Notifications[0].ID
	require.NoError(t, svc.MarkAsRead(ctx, "user-1", notification.MarkAsReadRequest{NotificationIDs: []string{first}}))
	unread, err := svc.GetUnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	assert.Error(t, svc.MarkAsRead(ctx, "user-1", notification.MarkAsReadRequest{}))

	// Other users cannot touch it.
	assert.ErrorIs(t, svc.Delete(ctx, "user-2", first), notification.ErrNotificationNotFound)
	require.NoError(t, svc.Delete(ctx, "user-1", first))

	require.NoError(t, svc.MarkAllAsRead(ctx, "user-1"))
	list, err = svc.GetNotifications(ctx, "user-1", 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)

	unread, err = svc.GetUnreadCount(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}
