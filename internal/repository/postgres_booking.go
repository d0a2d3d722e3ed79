package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Reserve(
	ctx context.Context,
	userID, showtimeID int,
	seatIDs []int) (*domain.BookingDetail, error) {

	var detail *domain.BookingDetail

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT s.start_time, s.price_cents, s.room_id, m.title, m.poster_url, r.name
			FROM showtimes s
			JOIN movies m ON s.movie_id = m.id
			JOIN rooms r ON s.room_id = r.id
			WHERE s.id = $1
		`

		var (
			startTime  time.Time
			priceCents int
			roomID     int
			movieTitle string
			posterUrl  string
			roomName   string
		)

		err := tx.QueryRow(ctx, query, showtimeID).Scan(
			&startTime,
			&priceCents,
			&roomID,
			&movieTitle,
			&posterUrl,
			&roomName,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if !startTime.After(time.Now()) {
			return domain.ErrShowtimeStarted
		}

		// Rows are locked before the availability check and held until commit,
		// so two overlapping reservations cannot both observe AVAILABLE.
		// Locking in seat ID order keeps overlapping transactions from
		// deadlocking against each other.
		query = `
			SELECT ss.seat_id, ss.booking_id, se.seat_row, se.seat_number
			FROM showtime_seats ss
			JOIN seats se ON ss.seat_id = se.id
			WHERE ss.showtime_id = $1 AND ss.seat_id = ANY($2)
			ORDER BY ss.seat_id
			FOR UPDATE OF ss
		`

		rows, err := tx.Query(ctx, query, showtimeID, seatIDs)
		if err != nil {
			return err
		}
		defer rows.Close()

		seats := make([]domain.Seat, 0, len(seatIDs))
		unavailable := make([]string, 0)

		for rows.Next() {
			var seat domain.Seat
			var bookingID pgtype.UUID

			err = rows.Scan(&seat.ID, &bookingID, &seat.Row, &seat.Number)
			if err != nil {
				return err
			}

			seat.RoomID = roomID

			if bookingID.Valid {
				unavailable = append(unavailable, seat.Label())
			}

			seats = append(seats, seat)
		}

		if err = rows.Err(); err != nil {
			return err
		}

		if len(seats) != len(seatIDs) {
			return domain.ErrUnknownSeats
		}

		if len(unavailable) > 0 {
			return &domain.SeatsUnavailableError{Labels: unavailable}
		}

		booking := domain.Booking{
			ID:              uuid.New(),
			UserID:          userID,
			ShowtimeID:      showtimeID,
			Seats:           seats,
			TotalPriceCents: len(seats) * priceCents,
			Status:          domain.BookingConfirmed,
		}

		query = `
			INSERT INTO bookings (id, user_id, showtime_id, total_price_cents, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			pgtype.UUID{Bytes: booking.ID, Valid: true},
			booking.UserID,
			booking.ShowtimeID,
			booking.TotalPriceCents,
			booking.Status).Scan(&booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			return err
		}

		query = `
			UPDATE showtime_seats
			SET status = 'RESERVED', booking_id = $1
			WHERE showtime_id = $2 AND seat_id = ANY($3)
		`

		_, err = tx.Exec(ctx, query, pgtype.UUID{Bytes: booking.ID, Valid: true}, showtimeID, seatIDs)
		if err != nil {
			return err
		}

		seatRows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			seatRows = append(seatRows, []any{
				pgtype.UUID{Bytes: booking.ID, Valid: true},
				showtimeID,
				seat.ID,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "showtime_id", "seat_id"},
			pgx.CopyFromRows(seatRows),
		)
		if err != nil {
			return err
		}

		detail = &domain.BookingDetail{
			Booking:    booking,
			MovieTitle: movieTitle,
			PosterUrl:  posterUrl,
			RoomName:   roomName,
			StartTime:  startTime,
		}

		return nil
	})

	if err != nil {
		// A concurrent transaction that won the race surfaces here as a
		// constraint violation; report it as a seat conflict, not an
		// internal failure.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.UniqueViolation ||
				pgErr.Code == pgerrcode.SerializationFailure ||
				pgErr.Code == pgerrcode.CheckViolation) {
			return nil, domain.ErrSeatAlreadyReserved
		}

		return nil, err
	}

	return detail, nil
}

func (p *PostgresBookingRepository) Cancel(ctx context.Context, userID int, bookingID uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// The booking row is locked so concurrent cancellations of the same
		// booking serialize; the loser observes CANCELLED.
		query := `
			SELECT b.user_id, b.status, s.start_time
			FROM bookings b
			JOIN showtimes s ON b.showtime_id = s.id
			WHERE b.id = $1
			FOR UPDATE OF b
		`

		var (
			ownerID   int
			status    domain.BookingStatus
			startTime time.Time
		)

		err := tx.QueryRow(ctx, query, pgtype.UUID{Bytes: bookingID, Valid: true}).Scan(
			&ownerID,
			&status,
			&startTime,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if ownerID != userID {
			return domain.ErrNotBookingOwner
		}

		if status == domain.BookingCancelled {
			return domain.ErrBookingAlreadyCancelled
		}

		if !domain.CancellationAllowed(startTime, time.Now()) {
			return domain.ErrCancellationWindowClosed
		}

		query = `
			UPDATE bookings
			SET status = 'CANCELLED', updated_at = now()
			WHERE id = $1
		`

		_, err = tx.Exec(ctx, query, pgtype.UUID{Bytes: bookingID, Valid: true})
		if err != nil {
			return err
		}

		// Seats go back to AVAILABLE, not to a dangling reserved state,
		// so they re-enter the sellable pool.
		query = `
			UPDATE showtime_seats
			SET status = 'AVAILABLE', booking_id = NULL
			WHERE booking_id = $1
		`

		_, err = tx.Exec(ctx, query, pgtype.UUID{Bytes: bookingID, Valid: true})

		return err
	})
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int) ([]domain.BookingSummary, error) {

	query := `
		SELECT
			b.id,
			b.total_price_cents,
			b.status,
			b.created_at,
			s.id,
			s.start_time,
			m.title,
			m.poster_url,
			r.name,
			array_agg(se.seat_row || se.seat_number ORDER BY se.seat_row, se.seat_number)
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		JOIN booking_seats bs ON bs.booking_id = b.id
		JOIN seats se ON bs.seat_id = se.id
		WHERE b.user_id = $1
		GROUP BY b.id, s.id, m.id, r.id
		ORDER BY b.created_at DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)

	for rows.Next() {
		var summary domain.BookingSummary
		var id pgtype.UUID

		err = rows.Scan(
			&id,
			&summary.TotalPriceCents,
			&summary.Status,
			&summary.CreatedAt,
			&summary.ShowtimeID,
			&summary.StartTime,
			&summary.MovieTitle,
			&summary.PosterUrl,
			&summary.RoomName,
			&summary.SeatLabels,
		)
		if err != nil {
			return nil, err
		}

		summary.ID = uuid.UUID(id.Bytes)

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
