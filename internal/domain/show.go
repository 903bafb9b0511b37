package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Show is one scheduled screening of a movie on a screen.
type Show struct {
	ID        int             `json:"id"`
	MovieID   int             `json:"movie_id"`
	ScreenID  int             `json:"screen_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type ShowGateway interface {
	GetShowsByMovieAndScreen(ctx context.Context, movieID, screenID int) ([]Show, error)
	GetShowSeatLayout(ctx context.Context, showID int) (*SeatLayout, error)
}
