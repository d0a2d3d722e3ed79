package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testUserPassword = "Pass123!@#"

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// createActivatedUser inserts a user that can log in right away and returns
// its id.
func createActivatedUser(t testing.TB, app *TestApp, email string) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(testUserPassword), 12)
	require.NoError(t, err)

	var id int
	err = app.DB.QueryRow(context.Background(), `
		INSERT INTO users (email, password_hash, role, activated)
		VALUES ($1, $2, 'USER', true)
		RETURNING id`,
		email, hash).Scan(&id)
	require.NoError(t, err)

	return id
}

// login performs a real login request and returns the session cookie.
func login(t testing.TB, app *TestApp, email string) *http.Cookie {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": testUserPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code, "login failed: %s", rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}

	t.Fatal("no session cookie returned from login")
	return nil
}

type showtimeFixture struct {
	ShowtimeID int
	SeatIDs    []int
	PriceCents int
	StartTime  time.Time
}

// seedShowtime creates a movie, a room with a 2x3 seat grid, one showtime and
// its AVAILABLE inventory.
func seedShowtime(t testing.TB, app *TestApp, startTime time.Time, priceCents int) showtimeFixture {
	ctx := context.Background()

	var movieId int
	err := app.DB.QueryRow(ctx, `
		INSERT INTO movies (title, description, genres, poster_url, runtime_minutes)
		VALUES ('Soul', 'A jazz pianist between Earth and the afterlife.', '{Animation,Drama}', 'https://example.com/soul.jpg', 100)
		RETURNING id`).Scan(&movieId)
	require.NoError(t, err)

	var roomId int
	err = app.DB.QueryRow(ctx, `
		INSERT INTO rooms (name) VALUES ('Sala ' || gen_random_uuid())
		RETURNING id`).Scan(&roomId)
	require.NoError(t, err)

	seatIds := make([]int, 0, 6)
	for _, row := range []string{"A", "B"} {
		for number := 1; number <= 3; number++ {
			var seatId int
			err = app.DB.QueryRow(ctx, `
				INSERT INTO seats (room_id, seat_row, seat_number)
				VALUES ($1, $2, $3)
				RETURNING id`,
				roomId, row, number).Scan(&seatId)
			require.NoError(t, err)

			seatIds = append(seatIds, seatId)
		}
	}

	var showtimeId int
	err = app.DB.QueryRow(ctx, `
		INSERT INTO showtimes (movie_id, room_id, start_time, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		movieId, roomId, startTime, priceCents).Scan(&showtimeId)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO showtime_seats (showtime_id, seat_id, status)
		SELECT $1, id, 'AVAILABLE' FROM seats WHERE room_id = $2`,
		showtimeId, roomId)
	require.NoError(t, err)

	return showtimeFixture{
		ShowtimeID: showtimeId,
		SeatIDs:    seatIds,
		PriceCents: priceCents,
		StartTime:  startTime,
	}
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
