package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// CancellationCutoff is the minimum lead time before a showtime during which
// a booking can no longer be cancelled.
const CancellationCutoff = time.Hour

type Booking struct {
	ID              uuid.UUID
	UserID          int
	ShowtimeID      int
	Seats           []Seat
	TotalPriceCents int
	Status          BookingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingDetail is a booking joined with the display data a caller needs
// right after committing a reservation.
type BookingDetail struct {
	Booking
	MovieTitle string
	PosterUrl  string
	RoomName   string
	StartTime  time.Time
}

type BookingSummary struct {
	ID              uuid.UUID
	SeatLabels      []string
	TotalPriceCents int
	Status          BookingStatus
	ShowtimeID      int
	StartTime       time.Time
	MovieTitle      string
	PosterUrl       string
	RoomName        string
	CreatedAt       time.Time
}

// SeatsUnavailableError reports the seats that caused a reservation to be
// rejected, so the caller can retry excluding them.
type SeatsUnavailableError struct {
	Labels []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("unavailable seats: %s", strings.Join(e.Labels, ", "))
}

// CancellationAllowed reports whether a booking for a showtime starting at
// startTime may still be cancelled at now.
func CancellationAllowed(startTime, now time.Time) bool {
	return startTime.Sub(now) >= CancellationCutoff
}

type BookingRepository interface {
	// Reserve atomically validates and commits a reservation for the given
	// seats, or fails without side effects.
	Reserve(ctx context.Context, userID, showtimeID int, seatIDs []int) (*BookingDetail, error)

	// Cancel marks the booking cancelled and releases its seats back to the
	// sellable pool.
	Cancel(ctx context.Context, userID int, bookingID uuid.UUID) error

	GetSummariesByUserId(ctx context.Context, userID int) ([]BookingSummary, error)
}
