package repository

import (
	"context"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	query := `
		SELECT
			sh.start_time,
			sh.price_cents,
			m.title,
			r.id,
			r.name,
			se.id,
			se.seat_row,
			se.seat_number,
			ss.booking_id
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN rooms r ON sh.room_id = r.id
		JOIN showtime_seats ss ON ss.showtime_id = sh.id
		JOIN seats se ON ss.seat_id = se.id
		WHERE sh.id = $1
		ORDER BY se.seat_row, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatMap := domain.SeatMap{ShowtimeID: showtimeID}

	for rows.Next() {
		var row domain.InventoryRow
		var bookingID pgtype.UUID

		err = rows.Scan(
			&seatMap.StartTime,
			&seatMap.PriceCents,
			&seatMap.MovieTitle,
			&seatMap.RoomID,
			&seatMap.RoomName,
			&row.Seat.ID,
			&row.Seat.Row,
			&row.Seat.Number,
			&bookingID,
		)
		if err != nil {
			return nil, err
		}

		row.ShowtimeID = showtimeID
		row.Seat.RoomID = seatMap.RoomID

		if bookingID.Valid {
			id := uuid.UUID(bookingID.Bytes)
			row.BookingID = &id
		}

		seatMap.Seats = append(seatMap.Seats, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seatMap.Seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &seatMap, nil
}
