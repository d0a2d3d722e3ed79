package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinegrid/booking-api/internal/api"
	"github.com/cinegrid/booking-api/internal/domain"
)

const screeningsDateLayout = "2006-01-02"

func (app *Application) GetScreenings(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		app.badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}

	date, err := time.Parse(screeningsDateLayout, rawDate)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	screenings, err := app.showtimeRepo.GetScreeningsByDate(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreeningsResponse{
		Date:   rawDate,
		Movies: toScreeningMovies(screenings),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toScreeningMovies(screenings []domain.MovieScreenings) []api.ScreeningMovie {
	movies := make([]api.ScreeningMovie, len(screenings))

	for i, screening := range screenings {
		showtimes := make([]api.ShowtimeSummary, len(screening.Showtimes))
		for j, showtime := range screening.Showtimes {
			showtimes[j] = api.ShowtimeSummary{
				Id:         showtime.ID,
				StartTime:  showtime.StartTime,
				PriceCents: showtime.PriceCents,
				Room: api.RoomSummary{
					Id:   showtime.RoomID,
					Name: showtime.RoomName,
				},
			}
		}

		movies[i] = api.ScreeningMovie{
			Id:             screening.MovieID,
			Title:          screening.Title,
			PosterUrl:      screening.PosterUrl,
			RuntimeMinutes: screening.RuntimeMinutes,
			Showtimes:      showtimes,
		}
	}

	return movies
}
