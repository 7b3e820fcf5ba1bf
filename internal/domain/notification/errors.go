package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrServiceStopped is returned when queueing after Stop.
	ErrServiceStopped = errors.New("notification service stopped")
)
