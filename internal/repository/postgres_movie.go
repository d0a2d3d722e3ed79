package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), id, title, description, genres, poster_url, runtime_minutes, created_at, version
		FROM movies
		WHERE (to_tsvector('simple', title) @@ plainto_tsquery('simple', $1) OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genres,
			&movie.PosterUrl,
			&movie.RuntimeMinutes,
			&movie.CreatedAt,
			&movie.Version,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, genres, poster_url, runtime_minutes, created_at, version
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genres,
		&movie.PosterUrl,
		&movie.RuntimeMinutes,
		&movie.CreatedAt,
		&movie.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, genres, poster_url, runtime_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genres,
		movie.PosterUrl,
		movie.RuntimeMinutes).Scan(&movie.ID, &movie.CreatedAt, &movie.Version)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, genres = $3, poster_url = $4, runtime_minutes = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genres,
		movie.PosterUrl,
		movie.RuntimeMinutes,
		movie.ID,
		movie.Version).Scan(&movie.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
