package mocks

import (
	"context"

	"github.com/cinegrid/booking-api/internal/domain"
)

type MockSeatRepo struct {
	GetSeatMapByShowtimeFunc func(ctx context.Context, showtimeID int) (*domain.SeatMap, error)
}

func (m *MockSeatRepo) GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	return m.GetSeatMapByShowtimeFunc(ctx, showtimeID)
}
