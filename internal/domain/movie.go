package domain

import "context"

// Certificate is the censor rating a movie carries, if any.
type Certificate string

const (
	CertificateU  Certificate = "U"
	CertificateUA Certificate = "UA"
	CertificateA  Certificate = "A"
	CertificateS  Certificate = "S"
)

// Movie is an immutable snapshot of a movie as fetched from the backend.
type Movie struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DurationMins int          `json:"duration_mins"`
	Language     string       `json:"language"`
	Certificate  *Certificate `json:"certificate"`
}

type MovieGateway interface {
	GetMovie(ctx context.Context, movieID int) (*Movie, error)
}
