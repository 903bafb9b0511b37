package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/cinewave/booking-edge/internal/mocks"
	appvalidator "github.com/cinewave/booking-edge/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApplication(gateway Gateway) *application {
	cfg := Config{
		Env:             "test",
		ResetDwell:      time.Hour,
		SessionIdleTime: time.Minute,
	}

	return &application{
		config:         cfg,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:      appvalidator.NewValidator(),
		sessionManager: newSessionManager(cfg),
		sessions:       newSessionRegistry(),
		gateway:        gateway,
	}
}

// testClient drives the full router and carries the session cookie across
// requests, the way a browser would.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, app *application) *testClient {
	t.Helper()

	return &testClient{
		t:       t,
		handler: app.routes(),
	}
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(c.t, err)

	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}

	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, "")
}

func (c *testClient) post(path, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, body)
}

func testSeatLayout() *domain.SeatLayout {
	return &domain.SeatLayout{
		ShowID: 7,
		Layout: []domain.SeatRow{
			{
				Row:      "A",
				SeatType: domain.SeatTypeRegular,
				Seats: []domain.Seat{
					{ID: 101, SeatNumber: 1, SeatType: domain.SeatTypeRegular, Status: domain.SeatStatusAvailable, Price: decimal.RequireFromString("250.00")},
					{ID: 102, SeatNumber: 2, SeatType: domain.SeatTypeRegular, Status: domain.SeatStatusAvailable, Price: decimal.RequireFromString("250.00")},
					{ID: 103, SeatNumber: 3, SeatType: domain.SeatTypeRegular, Status: domain.SeatStatusBooked, Price: decimal.RequireFromString("250.00")},
				},
			},
		},
	}
}

// driveToSeatSelection walks the client through the whole wizard: movie 1,
// theatre 3, screen 5, show 7, then seats 101 and 102 selected off the
// fetched layout.
func driveToSeatSelection(t *testing.T, gateway *mocks.MockGateway, client *testClient) {
	t.Helper()

	gateway.On("GetMovie", mock.Anything, 1).
		Return(&domain.Movie{ID: 1, Title: "Interstellar"}, nil)
	gateway.On("GetAllTheatres", mock.Anything).
		Return([]domain.Theatre{{ID: 3, Name: "Galaxy Cinemas", City: "Pune"}}, nil)
	gateway.On("GetScreensByTheatre", mock.Anything, 3).
		Return([]domain.Screen{{ID: 5, Name: "Audi 1", TotalSeats: 120, TheatreID: 3}}, nil)
	gateway.On("GetShowsByMovieAndScreen", mock.Anything, 1, 5).
		Return([]domain.Show{{ID: 7, MovieID: 1, ScreenID: 5, BasePrice: decimal.RequireFromString("250.00")}}, nil)
	gateway.On("GetShowSeatLayout", mock.Anything, 7).
		Return(testSeatLayout(), nil)

	steps := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/movies/1", ""},
		{http.MethodGet, "/theatres", ""},
		{http.MethodPost, "/session/theatre", `{"theatre_id": 3}`},
		{http.MethodGet, "/theatres/3/screens", ""},
		{http.MethodPost, "/session/screen", `{"screen_id": 5}`},
		{http.MethodGet, "/shows", ""},
		{http.MethodPost, "/session/show", `{"show_id": 7}`},
		{http.MethodGet, "/session/seat-layout", ""},
		{http.MethodPost, "/session/seats/101/toggle", ""},
		{http.MethodPost, "/session/seats/102/toggle", ""},
	}

	for _, step := range steps {
		rec := client.do(step.method, step.path, step.body)
		require.Equal(t, http.StatusOK, rec.Code, "%s %s", step.method, step.path)
	}
}
