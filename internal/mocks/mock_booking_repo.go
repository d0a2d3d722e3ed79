package mocks

import (
	"context"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/google/uuid"
)

type MockBookingRepo struct {
	ReserveFunc              func(ctx context.Context, userID, showtimeID int, seatIDs []int) (*domain.BookingDetail, error)
	CancelFunc               func(ctx context.Context, userID int, bookingID uuid.UUID) error
	GetSummariesByUserIdFunc func(ctx context.Context, userID int) ([]domain.BookingSummary, error)
}

func (m *MockBookingRepo) Reserve(
	ctx context.Context,
	userID, showtimeID int,
	seatIDs []int) (*domain.BookingDetail, error) {

	return m.ReserveFunc(ctx, userID, showtimeID, seatIDs)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, userID int, bookingID uuid.UUID) error {
	return m.CancelFunc(ctx, userID, bookingID)
}

func (m *MockBookingRepo) GetSummariesByUserId(ctx context.Context, userID int) ([]domain.BookingSummary, error) {
	return m.GetSummariesByUserIdFunc(ctx, userID)
}
