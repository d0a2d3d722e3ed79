package integration_test

import (
	"log/slog"
	"os"

	"github.com/cinegrid/booking-api/internal/app"
	"github.com/cinegrid/booking-api/internal/mailer"
	"github.com/cinegrid/booking-api/internal/repository"
	appvalidator "github.com/cinegrid/booking-api/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresTokenRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresBookingRepository(db),
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
