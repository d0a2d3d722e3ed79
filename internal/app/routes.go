package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundHandler)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("booking-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Put("/users/activate", app.ActivateUser)
	r.Post("/sessions", app.Login)
	r.Delete("/sessions", app.Logout)

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{movieId}", app.GetMovie)

	r.With(app.requireAuthentication, app.requireAdmin).Route("/admin/movies", func(r chi.Router) {
		r.Post("/", app.CreateMovie)
		r.Patch("/{movieId}", app.UpdateMovie)
		r.Delete("/{movieId}", app.DeleteMovie)
	})

	r.Get("/screenings", app.GetScreenings)
	r.Get("/showtimes/{showtimeId}/seats", app.GetSeatMapByShowtime)

	r.With(app.requireAuthentication).Route("/bookings", func(r chi.Router) {
		r.Post("/", app.CreateBooking)
		r.Post("/{bookingId}/cancel", app.CancelBooking)
	})

	r.With(app.requireAuthentication).Get("/users/me", app.GetCurrentUser)
	r.With(app.requireAuthentication).Get("/users/me/bookings", app.GetBookingsOfUser)

	return r
}
