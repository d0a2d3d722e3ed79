// Command seed populates a development database with demo users, movies,
// rooms, showtimes and seat inventory. It is idempotent enough for repeated
// local runs but not meant for production databases.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedMovie struct {
	title          string
	description    string
	genres         []string
	posterUrl      string
	runtimeMinutes int
}

type seedRoom struct {
	name        string
	rows        int
	seatsPerRow int
}

func main() {
	var dsn string

	flag.StringVar(&dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if dsn == "" {
		logger.Error("missing required -db-dsn flag")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	err = seed(ctx, db, logger)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed completed")
}

func seed(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	userIds, err := seedUsers(ctx, tx)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	logger.Info("created users", "count", len(userIds))

	movieIds, err := seedMovies(ctx, tx)
	if err != nil {
		return fmt.Errorf("seeding movies: %w", err)
	}
	logger.Info("created movies", "count", len(movieIds))

	roomIds, err := seedRooms(ctx, tx)
	if err != nil {
		return fmt.Errorf("seeding rooms: %w", err)
	}
	logger.Info("created rooms", "count", len(roomIds))

	showtimeIds, err := seedShowtimes(ctx, tx, movieIds, roomIds)
	if err != nil {
		return fmt.Errorf("seeding showtimes: %w", err)
	}
	logger.Info("created showtimes", "count", len(showtimeIds))

	seatCount, err := seedInventory(ctx, tx, showtimeIds)
	if err != nil {
		return fmt.Errorf("seeding seat inventory: %w", err)
	}
	logger.Info("initialized seat inventory", "rows", seatCount)

	return tx.Commit(ctx)
}

func seedUsers(ctx context.Context, tx pgx.Tx) ([]int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), 12)
	if err != nil {
		return nil, err
	}

	users := []struct {
		email string
		role  string
	}{
		{"admin@cinegrid.example", "ADMIN"},
		{"john@example.com", "USER"},
		{"jane@example.com", "USER"},
		{"bob@example.com", "USER"},
	}

	ids := make([]int, 0, len(users))

	for _, user := range users {
		var id int

		err = tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, role, activated)
			VALUES ($1, $2, $3, true)
			RETURNING id`,
			user.email, hash, user.role).Scan(&id)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func seedMovies(ctx context.Context, tx pgx.Tx) ([]int, error) {
	movies := []seedMovie{
		{
			title:          "Soul",
			description:    "After landing the gig of a lifetime, a New York jazz pianist suddenly finds himself trapped in a strange land between Earth and the afterlife.",
			genres:         []string{"Animation", "Comedy", "Drama", "Family", "Fantasy", "Music"},
			posterUrl:      "https://image.tmdb.org/t/p/w500/hm58Jw4Lw8OIeECIq5qyPYhAeRJ.jpg",
			runtimeMinutes: 100,
		},
		{
			title:          "Free Guy",
			description:    "A bank teller discovers he is actually a background player in an open-world video game.",
			genres:         []string{"Action", "Comedy", "Sci-Fi"},
			posterUrl:      "https://image.tmdb.org/t/p/w500/xmbU4JTUm8rsdtn7Y3Fcm30GpeT.jpg",
			runtimeMinutes: 115,
		},
		{
			title:          "Eternals",
			description:    "The saga of the Eternals, a race of immortal beings who lived on Earth and shaped its history and civilizations.",
			genres:         []string{"Action", "Adventure", "Fantasy", "Sci-Fi"},
			posterUrl:      "https://image.tmdb.org/t/p/w500/bcCBq9N1EMo3daNIjWJ8kYvrQm6.jpg",
			runtimeMinutes: 157,
		},
		{
			title:          "The French Dispatch",
			description:    "A love letter to journalists set in an outpost of an American newspaper in a fictional twentieth century French city.",
			genres:         []string{"Comedy", "Drama", "Romance"},
			posterUrl:      "https://image.tmdb.org/t/p/w500/61J34xH6eL4a8LFBX7J7HqmRZh6.jpg",
			runtimeMinutes: 108,
		},
	}

	ids := make([]int, 0, len(movies))

	for _, movie := range movies {
		var id int

		err := tx.QueryRow(ctx, `
			INSERT INTO movies (title, description, genres, poster_url, runtime_minutes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			movie.title, movie.description, movie.genres, movie.posterUrl, movie.runtimeMinutes).Scan(&id)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func seedRooms(ctx context.Context, tx pgx.Tx) ([]int, error) {
	rooms := []seedRoom{
		{"Sala 1", 6, 10},
		{"Sala 2", 10, 10},
		{"Sala 3", 10, 15},
		{"Sala IMAX", 10, 20},
	}

	ids := make([]int, 0, len(rooms))

	for _, room := range rooms {
		var id int

		err := tx.QueryRow(ctx, `INSERT INTO rooms (name) VALUES ($1) RETURNING id`, room.name).Scan(&id)
		if err != nil {
			return nil, err
		}

		seats := make([][]any, 0, room.rows*room.seatsPerRow)
		for rowIndex := range room.rows {
			rowLetter := string(rune('A' + rowIndex))

			for seatNum := 1; seatNum <= room.seatsPerRow; seatNum++ {
				seats = append(seats, []any{id, rowLetter, seatNum})
			}
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"room_id", "seat_row", "seat_number"},
			pgx.CopyFromRows(seats),
		)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func seedShowtimes(ctx context.Context, tx pgx.Tx, movieIds, roomIds []int) ([]int, error) {
	today := time.Now().Truncate(24 * time.Hour)

	slots := []struct {
		hour       int
		minute     int
		priceCents int
	}{
		{10, 0, 2500},
		{14, 30, 3000},
		{19, 0, 3500},
	}

	ids := make([]int, 0)

	for day := range 2 {
		baseDate := today.AddDate(0, 0, day)

		for i, movieId := range movieIds {
			roomId := roomIds[i%len(roomIds)]

			for _, slot := range slots {
				startTime := baseDate.Add(time.Duration(slot.hour)*time.Hour + time.Duration(slot.minute)*time.Minute)

				var id int

				err := tx.QueryRow(ctx, `
					INSERT INTO showtimes (movie_id, room_id, start_time, price_cents)
					VALUES ($1, $2, $3, $4)
					RETURNING id`,
					movieId, roomId, startTime, slot.priceCents).Scan(&id)
				if err != nil {
					return nil, err
				}

				ids = append(ids, id)
			}
		}
	}

	return ids, nil
}

// seedInventory fans out one AVAILABLE showtime_seats row per seat of the
// room each showtime plays in.
func seedInventory(ctx context.Context, tx pgx.Tx, showtimeIds []int) (int64, error) {
	var total int64

	for _, showtimeId := range showtimeIds {
		tag, err := tx.Exec(ctx, `
			INSERT INTO showtime_seats (showtime_id, seat_id, status)
			SELECT s.id, se.id, 'AVAILABLE'
			FROM showtimes s
			JOIN seats se ON se.room_id = s.room_id
			WHERE s.id = $1
			ON CONFLICT (showtime_id, seat_id) DO NOTHING`,
			showtimeId)
		if err != nil {
			return 0, err
		}

		total += tag.RowsAffected()
	}

	return total, nil
}
