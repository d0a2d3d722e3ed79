// Package api defines the request and response types of the HTTP surface.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserActivationRequest struct {
	Token string `json:"token" validate:"required,len=43"`
}

type UserActivationResponse struct {
	Activated bool `json:"activated"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Term     *string `validate:"omitempty,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title -id -title"`
}

type MovieSummary struct {
	Id             int      `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Genres         []string `json:"genres"`
	PosterUrl      string   `json:"posterUrl"`
	RuntimeMinutes int      `json:"runtimeMinutes"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type MovieResponse struct {
	Id             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Genres         []string  `json:"genres"`
	PosterUrl      string    `json:"posterUrl"`
	RuntimeMinutes int       `json:"runtimeMinutes"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int       `json:"version"`
}

type CreateMovieRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	Genres         []string `json:"genres" validate:"required,min=1,dive,required"`
	PosterUrl      string   `json:"posterUrl" validate:"omitempty,url"`
	RuntimeMinutes int      `json:"runtimeMinutes" validate:"required,min=1,max=600"`
}

type UpdateMovieRequest struct {
	Title          *string   `json:"title" validate:"omitempty,max=200"`
	Description    *string   `json:"description" validate:"omitempty,max=2000"`
	Genres         *[]string `json:"genres" validate:"omitempty,min=1,dive,required"`
	PosterUrl      *string   `json:"posterUrl" validate:"omitempty,url"`
	RuntimeMinutes *int      `json:"runtimeMinutes" validate:"omitempty,min=1,max=600"`
}

type RoomSummary struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type ShowtimeSummary struct {
	Id         int         `json:"id"`
	StartTime  time.Time   `json:"startTime"`
	PriceCents int         `json:"priceCents"`
	Room       RoomSummary `json:"room"`
}

type ScreeningMovie struct {
	Id             int               `json:"id"`
	Title          string            `json:"title"`
	PosterUrl      string            `json:"posterUrl"`
	RuntimeMinutes int               `json:"runtimeMinutes"`
	Showtimes      []ShowtimeSummary `json:"showtimes"`
}

type ScreeningsResponse struct {
	Date   string           `json:"date"`
	Movies []ScreeningMovie `json:"movies"`
}

type Seat struct {
	Id        int    `json:"id"`
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Available bool   `json:"available"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowtimeId int       `json:"showtimeId"`
	MovieTitle string    `json:"movieTitle"`
	RoomName   string    `json:"roomName"`
	StartTime  time.Time `json:"startTime"`
	PriceCents int       `json:"priceCents"`
	SeatRows   []SeatRow `json:"seatRows"`
}

type CreateBookingRequest struct {
	ShowtimeId int   `json:"showtimeId" validate:"required,min=1"`
	SeatIds    []int `json:"seatIds" validate:"required,min=1,unique,dive,min=1"`
}

type BookingShowtime struct {
	Id         int       `json:"id"`
	StartTime  time.Time `json:"startTime"`
	MovieTitle string    `json:"movieTitle"`
	PosterUrl  string    `json:"posterUrl"`
	RoomName   string    `json:"roomName"`
}

type BookingResponse struct {
	BookingId       string          `json:"bookingId"`
	TotalPriceCents int             `json:"totalPriceCents"`
	Status          string          `json:"status"`
	Seats           []string        `json:"seats"`
	Showtime        BookingShowtime `json:"showtime"`
	Message         string          `json:"message"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type BookingSummary struct {
	BookingId       string          `json:"bookingId"`
	Seats           []string        `json:"seats"`
	TotalPriceCents int             `json:"totalPriceCents"`
	Status          string          `json:"status"`
	Showtime        BookingShowtime `json:"showtime"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
}
