package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable covers transport failures talking to the backend.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrMalformed means the backend answered with a body we could not parse.
	ErrMalformed = errors.New("malformed backend payload")
	ErrNotFound  = errors.New("not found")
)

// RejectedError is a business-rule rejection from the backend: a non-2xx
// status with (optionally) an error message in the body.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request: status %d: %s", e.Status, e.Message)
}

// HotelAPI is the backend JSON contract.
type HotelAPI interface {
	FeaturedRooms(ctx context.Context) ([]Room, error)
	MenuByCategory(ctx context.Context, category string) ([]MenuItem, error)
	HotelInfo(ctx context.Context) (HotelInfo, error)
	CreateBooking(ctx context.Context, req BookingRequest) (BookingResult, error)

	Rooms(ctx context.Context) ([]Room, error)
	Room(ctx context.Context, id int64) (Room, error)
	Booking(ctx context.Context, id int64) (BookingResult, error)
}

// NotificationStore keeps notifications until they expire or are dismissed.
type NotificationStore interface {
	Put(ctx context.Context, session string, n Notification, ttl time.Duration) error
	List(ctx context.Context, session string) ([]Notification, error)
	Del(ctx context.Context, session, id string) (bool, error)
}
