package domain

import "github.com/shopspring/decimal"

type SeatType string

const (
	SeatTypeRegular  SeatType = "REGULAR"
	SeatTypePremium  SeatType = "PREMIUM"
	SeatTypeRecliner SeatType = "RECLINER"
)

// SeatStatus is authoritative from the backend at fetch time. The edge never
// marks a seat LOCKED or BOOKED on its own; it only tracks which AVAILABLE
// seats the current user has tentatively selected.
type SeatStatus string

const (
	SeatStatusAvailable   SeatStatus = "AVAILABLE"
	SeatStatusLocked      SeatStatus = "LOCKED"
	SeatStatusBooked      SeatStatus = "BOOKED"
	SeatStatusUnavailable SeatStatus = "UNAVAILABLE"
)

// Seat is a show-seat: a seat instance scoped to one show, distinct from the
// physical seat in the screen. Two Seat values with the same ID are the same
// show-seat regardless of when they were fetched.
type Seat struct {
	ID         int             `json:"id"`
	SeatNumber int             `json:"seat_number"`
	SeatType   SeatType        `json:"seat_type"`
	Status     SeatStatus      `json:"status"`
	Price      decimal.Decimal `json:"price"`
}

type SeatRow struct {
	Row      string   `json:"row"`
	SeatType SeatType `json:"seat_type"`
	Seats    []Seat   `json:"seats"`
}

// SeatLayout is the full seating chart for one show at one fetch instant.
type SeatLayout struct {
	ShowID int       `json:"show_id"`
	Layout []SeatRow `json:"layout"`
}

// Seat returns the seat with the given show-seat id, if the layout has it.
func (l *SeatLayout) Seat(seatID int) (Seat, bool) {
	for _, row := range l.Layout {
		for _, seat := range row.Seats {
			if seat.ID == seatID {
				return seat, true
			}
		}
	}

	return Seat{}, false
}
