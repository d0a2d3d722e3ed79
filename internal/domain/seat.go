package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Seat struct {
	ID     int
	RoomID int
	Row    string
	Number int
}

// Label returns the display name of the seat, e.g. "A1".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// InventoryRow is the per-showtime, per-seat availability record. A seat is
// reserved exactly when it carries a booking reference, so the
// "reserved without a booking" state cannot be expressed.
type InventoryRow struct {
	ShowtimeID int
	Seat       Seat
	BookingID  *uuid.UUID
}

func (r InventoryRow) Available() bool {
	return r.BookingID == nil
}

type SeatMap struct {
	ShowtimeID int
	MovieTitle string
	RoomID     int
	RoomName   string
	StartTime  time.Time
	PriceCents int
	Seats      []InventoryRow
}

type SeatRepository interface {
	GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*SeatMap, error)
}
