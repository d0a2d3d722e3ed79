package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// CreateWithToken inserts the user and its activation token in one
// transaction, so a failed token insert never leaves an unactivatable user.
func (p *PostgresUserRepository) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {

	var token *domain.Token

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, role)
			VALUES ($1, $2, $3)
			RETURNING id, activated, created_at, version
		`

		err := tx.QueryRow(ctx, query, user.Email, user.Password.Hash, user.Role).
			Scan(&user.ID, &user.Activated, &user.CreatedAt, &user.Version)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrUserAlreadyExists
			}

			return err
		}

		token, err = tokenFn(user)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tokens (hash, user_id, expiry, scope)
			VALUES ($1, $2, $3, $4)
		`

		_, err = tx.Exec(ctx, query, token.Hash, token.UserId, token.Expiry, token.Scope)

		return err
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

func (p *PostgresUserRepository) GetByToken(
	ctx context.Context,
	tokenHash []byte,
	tokenScope string) (*domain.User, error) {

	query := `
		SELECT u.id, u.email, u.password_hash, u.role, u.activated, u.created_at, u.version
		FROM users u
		JOIN tokens t ON t.user_id = u.id
		WHERE t.hash = $1 AND t.scope = $2 AND t.expiry > $3
	`

	var user domain.User

	err := p.db.QueryRow(ctx, query, tokenHash, tokenScope, time.Now()).Scan(
		&user.ID,
		&user.Email,
		&user.Password.Hash,
		&user.Role,
		&user.Activated,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, role, activated, created_at, version
		FROM users
		WHERE email = $1
	`

	return p.scanUser(p.db.QueryRow(ctx, query, email))
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, role, activated, created_at, version
		FROM users
		WHERE id = $1
	`

	return p.scanUser(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password.Hash,
		&user.Role,
		&user.Activated,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) ActivateUser(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET activated = true, updated_at = now(), version = version + 1
			WHERE id = $1 AND version = $2
			RETURNING version
		`

		err := tx.QueryRow(ctx, query, user.ID, user.Version).Scan(&user.Version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		user.Activated = true

		query = `DELETE FROM tokens WHERE user_id = $1 AND scope = $2`

		_, err = tx.Exec(ctx, query, user.ID, domain.UserActivationScope)

		return err
	})
}
