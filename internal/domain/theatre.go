package domain

import "context"

type Theatre struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	City    string   `json:"city"`
	Address string   `json:"address"`
	Screens []Screen `json:"screens"`
}

// Screen references its owning theatre by id only; the theatre does not own
// the screen values returned by GetScreensByTheatre.
type Screen struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"total_seats"`
	TheatreID  int    `json:"theatre_id"`
}

type TheatreGateway interface {
	GetAllTheatres(ctx context.Context) ([]Theatre, error)
	GetScreensByTheatre(ctx context.Context, theatreID int) ([]Screen, error)
}
