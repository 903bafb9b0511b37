package mocks

import (
	"context"

	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway implements every gateway interface of the domain package.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	args := m.Called(ctx, movieID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockGateway) GetAllTheatres(ctx context.Context) ([]domain.Theatre, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Theatre), args.Error(1)
}

func (m *MockGateway) GetScreensByTheatre(ctx context.Context, theatreID int) ([]domain.Screen, error) {
	args := m.Called(ctx, theatreID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Screen), args.Error(1)
}

func (m *MockGateway) GetShowsByMovieAndScreen(ctx context.Context, movieID, screenID int) ([]domain.Show, error) {
	args := m.Called(ctx, movieID, screenID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Show), args.Error(1)
}

func (m *MockGateway) GetShowSeatLayout(ctx context.Context, showID int) (*domain.SeatLayout, error) {
	args := m.Called(ctx, showID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SeatLayout), args.Error(1)
}

func (m *MockGateway) LockSeats(ctx context.Context, showID int, seatIDs []int) (int, error) {
	args := m.Called(ctx, showID, seatIDs)

	return args.Int(0), args.Error(1)
}

func (m *MockGateway) ConfirmBooking(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}
