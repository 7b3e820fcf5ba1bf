package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyRecipient(t *testing.T) {
	hub := NewHub(4)

	owner, closeOwner := hub.Subscribe("owner")
	defer closeOwner()
	cashier, closeCashier := hub.Subscribe("cashier")
	defer closeCashier()

	n := hub.Publish(Event{UserID: "owner", Name: "notification", Data: "hi"})
	assert.Equal(t, 1, n)

	select {
	case ev := <-owner:
		assert.Equal(t, "notification", ev.Name)
		assert.Equal(t, "hi", ev.Data)
	default:
		t.Fatal("owner did not receive the event")
	}

	select {
	case ev := <-cashier:
		t.Fatalf("cashier received %v", ev)
	default:
	}
}

func TestHub_FullStreamIsSkipped(t *testing.T) {
	hub := NewHub(1)
	_, cleanup := hub.Subscribe("owner")
	defer cleanup()

	assert.Equal(t, 1, hub.Publish(Event{UserID: "owner"}))
	assert.Equal(t, 0, hub.Publish(Event{UserID: "owner"}))
}

func TestHub_Cleanup(t *testing.T) {
	hub := NewHub(0)
	ch, cleanup := hub.Subscribe("owner")
	_, cleanup2 := hub.Subscribe("owner")
	require.Equal(t, 2, hub.SubscriberCount("owner"))
	require.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 1, hub.SubscriberCount("owner"))

	cleanup2()
	assert.Equal(t, 0, hub.TotalSubscribers())
	assert.Equal(t, 0, hub.Publish(Event{UserID: "owner"}))
}
