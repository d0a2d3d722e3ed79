package domain

import "errors"

var (
	ErrUserAlreadyExists        = errors.New("user already exists")
	ErrRecordNotFound           = errors.New("record not found")
	ErrEditConflict             = errors.New("edit conflict")
	ErrShowtimeStarted          = errors.New("cannot book a past or in-progress showtime")
	ErrUnknownSeats             = errors.New("one or more seats do not exist for this showtime")
	ErrSeatAlreadyReserved      = errors.New("seat(s) are already reserved")
	ErrNotBookingOwner          = errors.New("you can only cancel your own bookings")
	ErrBookingAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")
)
