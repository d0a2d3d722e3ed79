package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cinegrid/booking-api/internal/api"
	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.Reserve(r.Context(), userId, input.ShowtimeId, input.SeatIds)
	if err != nil {
		var seatsUnavailable *domain.SeatsUnavailableError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrShowtimeStarted):
			app.badRequestResponse(w, r, errors.New("showtime has already started"))
		case errors.Is(err, domain.ErrUnknownSeats):
			app.badRequestResponse(w, r, errors.New("one or more seats do not belong to this showtime"))
		case errors.As(err, &seatsUnavailable):
			app.editConflictResponseWithErr(w, r, seatsUnavailable)
		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			app.editConflictResponseWithErr(w, r, errors.New("one or more seats were just reserved, please try again"))
		default:
			logger.Error("failed to create booking", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking confirmation mail", "panic", err)
			}
		}()

		user, err := app.userRepo.GetById(ctx, userId)
		if err != nil {
			gLogger.Error("failed to load user for booking confirmation email", "error", err)
			return
		}

		data := map[string]any{
			"bookingID":  booking.ID.String(),
			"movieTitle": booking.MovieTitle,
			"roomName":   booking.RoomName,
			"startTime":  booking.StartTime,
			"seats":      strings.Join(seatLabels(booking.Seats), ", "),
			"totalPrice": booking.TotalPriceCents,
		}

		err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send booking confirmation email", "error", err)
		}
	}(context.WithoutCancel(r.Context()))

	resp := toBookingResponse(booking)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/bookings/%s", booking.ID))

	err = app.writeJSON(w, http.StatusCreated, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	bookingId, err := uuid.Parse(chi.URLParam(r, "bookingId"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid bookingId parameter"))
		return
	}

	err = app.bookingRepo.Cancel(r.Context(), userId, bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrNotBookingOwner):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			app.badRequestResponse(w, r, errors.New("booking is already cancelled"))
		case errors.Is(err, domain.ErrCancellationWindowClosed):
			app.badRequestResponse(w, r, errors.New("bookings can only be cancelled up to 1 hour before the showtime"))
		default:
			logger.Error("failed to cancel booking", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetBookingsOfUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	summaries, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings := make([]api.BookingSummary, len(summaries))
	for i, summary := range summaries {
		bookings[i] = api.BookingSummary{
			BookingId:       summary.ID.String(),
			Seats:           summary.SeatLabels,
			TotalPriceCents: summary.TotalPriceCents,
			Status:          string(summary.Status),
			Showtime: api.BookingShowtime{
				Id:         summary.ShowtimeID,
				StartTime:  summary.StartTime,
				MovieTitle: summary.MovieTitle,
				PosterUrl:  summary.PosterUrl,
				RoomName:   summary.RoomName,
			},
			CreatedAt: summary.CreatedAt,
		}
	}

	resp := api.UserBookingsResponse{Bookings: bookings}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.BookingDetail) api.BookingResponse {
	return api.BookingResponse{
		BookingId:       booking.ID.String(),
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		Seats:           seatLabels(booking.Seats),
		Showtime: api.BookingShowtime{
			Id:         booking.ShowtimeID,
			StartTime:  booking.StartTime,
			MovieTitle: booking.MovieTitle,
			PosterUrl:  booking.PosterUrl,
			RoomName:   booking.RoomName,
		},
		Message:   fmt.Sprintf("reservation confirmed for %d seat(s)", len(booking.Seats)),
		CreatedAt: booking.CreatedAt,
	}
}

func seatLabels(seats []domain.Seat) []string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	return labels
}
