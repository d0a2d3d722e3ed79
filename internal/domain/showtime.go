package domain

import (
	"context"
	"time"
)

type Showtime struct {
	ID         int
	MovieID    int
	RoomID     int
	RoomName   string
	StartTime  time.Time
	PriceCents int
}

// MovieScreenings groups a movie with its showtimes inside a single day
// window, showtimes ordered by start time ascending.
type MovieScreenings struct {
	MovieID        int
	Title          string
	PosterUrl      string
	RuntimeMinutes int
	Showtimes      []Showtime
}

type ShowtimeRepository interface {
	// GetScreeningsByDate returns movies that have at least one showtime
	// starting within [date, date+24h).
	GetScreeningsByDate(ctx context.Context, date time.Time) ([]MovieScreenings, error)
}
