package repository

import (
	"context"
	"time"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetScreeningsByDate(
	ctx context.Context,
	date time.Time) ([]domain.MovieScreenings, error) {

	query := `
		SELECT
			m.id,
			m.title,
			m.poster_url,
			m.runtime_minutes,
			s.id,
			s.start_time,
			s.price_cents,
			r.id,
			r.name
		FROM movies m
		JOIN showtimes s ON s.movie_id = m.id
		JOIN rooms r ON s.room_id = r.id
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY m.id, s.start_time
	`

	rows, err := p.db.Query(ctx, query, date, date.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.MovieScreenings, 0)

	for rows.Next() {
		var movieID, runtime int
		var title, posterUrl string
		var showtime domain.Showtime

		err = rows.Scan(
			&movieID,
			&title,
			&posterUrl,
			&runtime,
			&showtime.ID,
			&showtime.StartTime,
			&showtime.PriceCents,
			&showtime.RoomID,
			&showtime.RoomName,
		)
		if err != nil {
			return nil, err
		}

		showtime.MovieID = movieID

		// Rows arrive grouped by movie, so a movie change starts a new entry.
		if len(screenings) == 0 || screenings[len(screenings)-1].MovieID != movieID {
			screenings = append(screenings, domain.MovieScreenings{
				MovieID:        movieID,
				Title:          title,
				PosterUrl:      posterUrl,
				RuntimeMinutes: runtime,
			})
		}

		last := &screenings[len(screenings)-1]
		last.Showtimes = append(last.Showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}
