package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusInitiated BookingStatus = "INITIATED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

type Booking struct {
	ID          int             `json:"id"`
	Status      BookingStatus   `json:"status"`
	ShowID      int             `json:"show_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// BookingGateway is the two-phase booking surface of the backend. LockSeats
// places a temporary server-side hold on the given show-seats and returns the
// booking id; ConfirmBooking finalizes it. Lock expiry is owned by the
// backend, not by this service.
type BookingGateway interface {
	LockSeats(ctx context.Context, showID int, seatIDs []int) (int, error)
	ConfirmBooking(ctx context.Context, bookingID int) (*Booking, error)
}
