package domain

import "time"

// BookingRequest is built fresh from the form on every submit and discarded
// once the backend answers.
type BookingRequest struct {
	RoomID        int64  `json:"roomId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CheckIn       string `json:"checkIn"`  // YYYY-MM-DD
	CheckOut      string `json:"checkOut"` // YYYY-MM-DD
	Guests        int    `json:"guests"`
	PaymentMethod string `json:"paymentMethod"`
}

type BookingResult struct {
	ID            int64  `json:"id"`
	RoomID        int64  `json:"roomId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Guests        int    `json:"guests"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
	TotalAmount   Price  `json:"totalAmount"`
	CreatedAt     string `json:"createdAt"`
}

// SelectedRoom is the room whose booking modal is open. It is captured when
// the room card is rendered and travels with the request.
type SelectedRoom struct {
	ID    int64  `url:"roomId"`
	Name  string `url:"name"`
	Price Price  `url:"price"`
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyFailure NotificationKind = "failure"
)

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Lines     []string         `json:"lines"`
	CreatedAt time.Time        `json:"createdAt"`
}
