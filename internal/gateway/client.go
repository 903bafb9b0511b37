// Package gateway implements the outbound REST client for the ticketing
// backend. Every error it returns is a *domain.GatewayError so callers can
// branch on the failure kind without parsing messages.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cinewave/booking-edge/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *Client) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	var movie domain.Movie

	err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), &movie)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (c *Client) GetAllTheatres(ctx context.Context) ([]domain.Theatre, error) {
	var theatres []domain.Theatre

	err := c.get(ctx, "/theatre/", &theatres)
	if err != nil {
		return nil, err
	}

	return theatres, nil
}

func (c *Client) GetScreensByTheatre(ctx context.Context, theatreID int) ([]domain.Screen, error) {
	var screens []domain.Screen

	err := c.get(ctx, fmt.Sprintf("/screen/theatre/%d", theatreID), &screens)
	if err != nil {
		return nil, err
	}

	return screens, nil
}

func (c *Client) GetShowsByMovieAndScreen(ctx context.Context, movieID, screenID int) ([]domain.Show, error) {
	var shows []domain.Show

	err := c.get(ctx, fmt.Sprintf("/show/%d/%d", movieID, screenID), &shows)
	if err != nil {
		return nil, err
	}

	return shows, nil
}

func (c *Client) GetShowSeatLayout(ctx context.Context, showID int) (*domain.SeatLayout, error) {
	var layout domain.SeatLayout

	err := c.get(ctx, fmt.Sprintf("/show/%d/seat-layout", showID), &layout)
	if err != nil {
		return nil, err
	}

	return &layout, nil
}

func (c *Client) LockSeats(ctx context.Context, showID int, seatIDs []int) (int, error) {
	payload := struct {
		ShowSeatIds []int `json:"show_seat_ids"`
	}{
		ShowSeatIds: seatIDs,
	}

	// The backend answers the lock call with the bare booking id.
	var bookingID int

	err := c.post(ctx, fmt.Sprintf("/booking/seats/%d/lock", showID), payload, &bookingID)
	if err != nil {
		return 0, err
	}

	return bookingID, nil
}

func (c *Client) ConfirmBooking(ctx context.Context, bookingID int) (*domain.Booking, error) {
	var booking domain.Booking

	err := c.post(ctx, fmt.Sprintf("/booking/booking/%d/confirm", bookingID), nil, &booking)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.NewGatewayError(domain.KindValidationFailure, "failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return domain.NewGatewayError(domain.KindValidationFailure, "failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "path", path, "error", err)
		return domain.NewGatewayError(domain.KindNetworkFailure, "Network error. Please check your connection.")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return domain.NewGatewayError(domain.KindServerFailure, "failed to decode backend response: %v", err)
	}

	return nil
}

// errorFromResponse maps a backend error status to a GatewayError, pulling
// the message out of the body's "detail" or "message" field when present.
func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	var kind domain.ErrorKind

	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = domain.KindNotFound
	case resp.StatusCode == http.StatusConflict:
		kind = domain.KindConflict
	case resp.StatusCode == http.StatusUnprocessableEntity:
		kind = domain.KindValidationFailure
	default:
		kind = domain.KindServerFailure
	}

	message := "An error occurred"

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(data, &payload) == nil {
		switch {
		case payload.Detail != "":
			message = payload.Detail
		case payload.Message != "":
			message = payload.Message
		}
	}

	c.logger.Warn("backend returned error status",
		"method", method, "path", path, "status", resp.StatusCode, "message", message)

	return domain.NewGatewayError(kind, "%s", message)
}
