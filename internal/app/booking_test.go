package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cinewave/booking-edge/api"
	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/cinewave/booking-edge/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	gateway *mocks.MockGateway
	app     *application
	client  *testClient
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.gateway = new(mocks.MockGateway)
	s.app = newTestApplication(s.gateway)
	s.client = newTestClient(s.T(), s.app)
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) session() api.SessionResponse {
	rec := s.client.get("/session")
	s.Require().Equal(http.StatusOK, rec.Code)

	var session api.SessionResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&session))

	return session
}

func (s *BookingHandlerTestSuite) TestToggleSeat() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	session := s.session()
	s.Require().Len(session.SelectedSeats, 2)
	s.Equal("500.00", session.TotalPrice.StringFixed(2))

	// Toggling a selected seat removes it.
	rec := s.client.post("/session/seats/101/toggle", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	session = s.session()
	s.Require().Len(session.SelectedSeats, 1)
	s.Equal(102, session.SelectedSeats[0].Id)
	s.Equal("250.00", session.TotalPrice.StringFixed(2))
}

func (s *BookingHandlerTestSuite) TestToggleIgnoresBookedSeat() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	rec := s.client.post("/session/seats/103/toggle", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(s.session().SelectedSeats, 2)
}

func (s *BookingHandlerTestSuite) TestConfirmBooking() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	confirmed := &domain.Booking{ID: 42, Status: domain.BookingStatusConfirmed, ShowID: 7, TotalAmount: decimal.RequireFromString("500.00")}
	s.gateway.On("LockSeats", mock.Anything, 7, []int{101, 102}).Return(42, nil)
	s.gateway.On("ConfirmBooking", mock.Anything, 42).Return(confirmed, nil)

	rec := s.client.post("/session/confirm", `{"show_id": 7}`)

	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp api.BookingResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(42, resp.Id)
	s.Equal(api.BookingStatus("CONFIRMED"), resp.Status)
	s.Equal("500.00", resp.TotalAmount.StringFixed(2))

	session := s.session()
	s.Require().NotNil(session.BookingId)
	s.Equal(42, *session.BookingId)
	s.Equal("CONFIRMED", session.FlowState)
	s.gateway.AssertExpectations(s.T())
}

func (s *BookingHandlerTestSuite) TestConfirmWithoutSeats() {
	rec := s.client.post("/session/confirm", `{"show_id": 7}`)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.gateway.AssertNotCalled(s.T(), "LockSeats", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingHandlerTestSuite) TestConfirmWrongShow() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	rec := s.client.post("/session/confirm", `{"show_id": 8}`)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.gateway.AssertNotCalled(s.T(), "LockSeats", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingHandlerTestSuite) TestConfirmLockConflict() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	s.gateway.On("LockSeats", mock.Anything, 7, []int{101, 102}).
		Return(0, domain.NewGatewayError(domain.KindConflict, "One or more seats are no longer available"))

	rec := s.client.post("/session/confirm", `{"show_id": 7}`)

	s.Require().Equal(http.StatusConflict, rec.Code)

	session := s.session()
	s.Nil(session.BookingId)
	s.Len(session.SelectedSeats, 2, "a failed lock must not alter the selection")
	s.Require().NotNil(session.Error)
	s.Equal("One or more seats are no longer available", *session.Error)
	s.Equal("FAILED", session.FlowState)

	// Retrying before the layout is re-fetched is refused outright.
	rec = s.client.post("/session/confirm", `{"show_id": 7}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.gateway.AssertNotCalled(s.T(), "ConfirmBooking", mock.Anything, mock.Anything)

	// A fresh layout fetch clears the staleness and re-enters selection.
	rec = s.client.get("/session/seat-layout")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("SELECTING", s.session().FlowState)
}

func (s *BookingHandlerTestSuite) TestResumeConfirm() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	s.gateway.On("LockSeats", mock.Anything, 7, []int{101, 102}).Return(55, nil)
	s.gateway.On("ConfirmBooking", mock.Anything, 55).
		Return(nil, domain.NewGatewayError(domain.KindNetworkFailure, "Network error. Please check your connection.")).
		Once()

	rec := s.client.post("/session/confirm", `{"show_id": 7}`)

	s.Require().Equal(http.StatusGatewayTimeout, rec.Code)

	session := s.session()
	s.Require().NotNil(session.BookingId, "the locked booking id must survive a failed confirm")
	s.Equal(55, *session.BookingId)
	s.Equal("FAILED", session.FlowState)

	confirmed := &domain.Booking{ID: 55, Status: domain.BookingStatusConfirmed, ShowID: 7, TotalAmount: decimal.RequireFromString("500.00")}
	s.gateway.On("ConfirmBooking", mock.Anything, 55).Return(confirmed, nil).Once()

	rec = s.client.post("/session/confirm/resume", "")

	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp api.BookingResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(55, resp.Id)
	s.gateway.AssertNumberOfCalls(s.T(), "LockSeats", 1)
}

func (s *BookingHandlerTestSuite) TestResumeConfirmWithoutBooking() {
	rec := s.client.post("/session/confirm/resume", "")

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.gateway.AssertNotCalled(s.T(), "ConfirmBooking", mock.Anything, mock.Anything)
}

func (s *BookingHandlerTestSuite) TestResetSession() {
	driveToSeatSelection(s.T(), s.gateway, s.client)

	rec := s.client.post("/session/reset", "")

	s.Require().Equal(http.StatusNoContent, rec.Code)

	session := s.session()
	s.Nil(session.Movie)
	s.Nil(session.Theatre)
	s.Nil(session.Show)
	s.Empty(session.SelectedSeats)
	s.Nil(session.BookingId)
	s.Equal("SELECTING", session.FlowState)
}

func (s *BookingHandlerTestSuite) TestSessionsAreIsolatedPerBrowser() {
	driveToSeatSelection(s.T(), s.gateway, s.client)
	s.Require().Len(s.session().SelectedSeats, 2)

	// A second browser, without the first one's cookie, gets its own empty
	// session from the same application.
	other := newTestClient(s.T(), s.app)

	rec := other.get("/session")
	s.Require().Equal(http.StatusOK, rec.Code)

	var session api.SessionResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&session))
	s.Nil(session.Movie)
	s.Empty(session.SelectedSeats)
}
