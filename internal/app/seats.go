package app

import (
	"errors"
	"net/http"

	"github.com/cinegrid/booking-api/internal/api"
	"github.com/cinegrid/booking-api/internal/domain"
)

func (app *Application) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatMap, err := app.seatRepo.GetSeatMapByShowtime(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId: seatMap.ShowtimeID,
		MovieTitle: seatMap.MovieTitle,
		RoomName:   seatMap.RoomName,
		StartTime:  seatMap.StartTime,
		PriceCents: seatMap.PriceCents,
		SeatRows:   toSeatRows(seatMap.Seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toSeatRows groups inventory rows by physical seat row. Rows arrive ordered
// by seat row then seat number, so a single pass suffices.
func toSeatRows(rows []domain.InventoryRow) []api.SeatRow {
	seatRows := make([]api.SeatRow, 0)

	for _, row := range rows {
		seat := api.Seat{
			Id:        row.Seat.ID,
			Row:       row.Seat.Row,
			Number:    row.Seat.Number,
			Available: row.Available(),
		}

		if n := len(seatRows); n > 0 && seatRows[n-1].Row == row.Seat.Row {
			seatRows[n-1].Seats = append(seatRows[n-1].Seats, seat)
			continue
		}

		seatRows = append(seatRows, api.SeatRow{
			Row:   row.Seat.Row,
			Seats: []api.Seat{seat},
		})
	}

	return seatRows
}
