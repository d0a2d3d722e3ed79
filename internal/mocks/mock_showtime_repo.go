package mocks

import (
	"context"
	"time"

	"github.com/cinegrid/booking-api/internal/domain"
)

type MockShowtimeRepo struct {
	GetScreeningsByDateFunc func(ctx context.Context, date time.Time) ([]domain.MovieScreenings, error)
}

func (m *MockShowtimeRepo) GetScreeningsByDate(ctx context.Context, date time.Time) ([]domain.MovieScreenings, error) {
	return m.GetScreeningsByDateFunc(ctx, date)
}
