package booking

import (
	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/shopspring/decimal"
)

// IsSelectable reports whether the user may select the seat. Only AVAILABLE
// seats are selectable; LOCKED, BOOKED and UNAVAILABLE never are, regardless
// of the current selection.
func IsSelectable(seat domain.Seat) bool {
	return seat.Status == domain.SeatStatusAvailable
}

// Toggle flips membership of seat in the selection. Membership is decided by
// show-seat id, never by structural equality. If the seat is present it is
// removed; if absent and selectable it is appended; a click on an
// unselectable seat returns the selection unchanged. The result never holds
// duplicate seat ids.
func Toggle(seat domain.Seat, selection []domain.Seat) []domain.Seat {
	out := make([]domain.Seat, 0, len(selection)+1)
	removed := false

	for _, s := range selection {
		if s.ID == seat.ID {
			removed = true
			continue
		}
		out = append(out, s)
	}

	if removed {
		return out
	}

	if !IsSelectable(seat) {
		return selection
	}

	return append(out, seat)
}

// TotalPrice sums the seat prices of the selection. Decimal accumulation
// keeps currency totals exact; the zero value covers the empty selection.
func TotalPrice(selection []domain.Seat) decimal.Decimal {
	total := decimal.Zero

	for _, seat := range selection {
		total = total.Add(seat.Price)
	}

	return total
}
