// Package api holds the request and response shapes of the booking edge API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validation_errors"`
	RequestId        string            `json:"request_id,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type HealthcheckResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type Certificate string

type MovieResponse struct {
	Id           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DurationMins int          `json:"duration_mins"`
	Language     string       `json:"language"`
	Certificate  *Certificate `json:"certificate,omitempty"`
}

type ScreenResponse struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	TotalSeats int    `json:"total_seats"`
	TheatreId  int    `json:"theatre_id"`
}

type TheatreResponse struct {
	Id      int              `json:"id"`
	Name    string           `json:"name"`
	City    string           `json:"city"`
	Address string           `json:"address"`
	Screens []ScreenResponse `json:"screens,omitempty"`
}

type TheatreListResponse struct {
	Theatres []TheatreResponse `json:"theatres"`
}

type ScreenListResponse struct {
	Screens []ScreenResponse `json:"screens"`
}

type ShowResponse struct {
	Id        int             `json:"id"`
	MovieId   int             `json:"movie_id"`
	ScreenId  int             `json:"screen_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type ShowListResponse struct {
	Shows []ShowResponse `json:"shows"`
}

type SeatType string

type SeatStatus string

type Seat struct {
	Id         int             `json:"id"`
	SeatNumber int             `json:"seat_number"`
	Type       SeatType        `json:"seat_type"`
	Status     SeatStatus      `json:"status"`
	Price      decimal.Decimal `json:"price"`
	Selected   bool            `json:"selected"`
}

type SeatRow struct {
	Row   string   `json:"row"`
	Type  SeatType `json:"seat_type"`
	Seats []Seat   `json:"seats"`
}

type SeatMapResponse struct {
	ShowId   int       `json:"show_id"`
	SeatRows []SeatRow `json:"seat_rows"`
}

type BookingStatus string

type BookingResponse struct {
	Id          int             `json:"id"`
	Status      BookingStatus   `json:"status"`
	ShowId      int             `json:"show_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SessionResponse is the presentation boundary's read view of one booking
// session, pushed unchanged over the watch socket on every mutation.
type SessionResponse struct {
	Movie         *MovieResponse   `json:"movie"`
	Theatre       *TheatreResponse `json:"theatre"`
	Screen        *ScreenResponse  `json:"screen"`
	Show          *ShowResponse    `json:"show"`
	SelectedSeats []Seat           `json:"selected_seats"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	BookingId     *int             `json:"booking_id"`
	Loading       bool             `json:"loading"`
	Error         *string          `json:"error"`
	FlowState     string           `json:"flow_state"`
}

type SelectTheatreRequest struct {
	TheatreId int `json:"theatre_id" validate:"required,gt=0"`
}

type SelectScreenRequest struct {
	ScreenId int `json:"screen_id" validate:"required,gt=0"`
}

type SelectShowRequest struct {
	ShowId int `json:"show_id" validate:"required,gt=0"`
}

type ConfirmBookingRequest struct {
	ShowId int `json:"show_id" validate:"required,gt=0"`
}
