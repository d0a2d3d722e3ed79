package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cinegrid/booking-api/internal/api"
	"github.com/cinegrid/booking-api/internal/domain"
	"github.com/cinegrid/booking-api/internal/mailer"
	"github.com/cinegrid/booking-api/internal/mocks"
	"github.com/cinegrid/booking-api/internal/validator"
)

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		input          api.RegisterRequest
		userRepoFunc   func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error)
		wantStatus     int
		wantErrMessage string
		wantMail       bool
	}{
		{
			name: "successful registration",
			input: api.RegisterRequest{
				Email:    "freddie@example.com",
				Password: "Pass123!@#",
			},
			userRepoFunc: func(ctx context.Context, u *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				u.ID = 1
				return tokenFn(u)
			},
			wantStatus: http.StatusAccepted,
			wantMail:   true,
		},
		{
			name: "invalid password format",
			input: api.RegisterRequest{
				Email:    "freddie@example.com",
				Password: "weak",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPassword,
		},
		{
			name: "invalid email",
			input: api.RegisterRequest{
				Email:    "not-an-email",
				Password: "Pass123!@#",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrEmail,
		},
		{
			name: "duplicate email",
			input: api.RegisterRequest{
				Email:    "existing@example.com",
				Password: "Pass123!@#",
			},
			userRepoFunc: func(ctx context.Context, u *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				return nil, domain.ErrUserAlreadyExists
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name: "repository failure",
			input: api.RegisterRequest{
				Email:    "freddie@example.com",
				Password: "Pass123!@#",
			},
			userRepoFunc: func(ctx context.Context, u *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				return nil, fmt.Errorf("database error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMailer := mailer.NewMockMailer()

			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{CreateWithTokenFunc: tt.userRepoFunc}
				a.mailer = mockMailer
			})

			w, r := executeRequest(t, http.MethodPost, "/users", tt.input)

			app.RegisterUser(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("RegisterUser() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusAccepted {
				var response api.UserResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Id != 1 {
					t.Errorf("Expected id=1 in response, got %v", response.Id)
				}
				if response.Email != tt.input.Email {
					t.Errorf("Expected email=%s in response, got %v", tt.input.Email, response.Email)
				}
				if response.Role != string(domain.RoleUser) {
					t.Errorf("Expected role=USER, got %v", response.Role)
				}
				if response.Activated {
					t.Errorf("Expected Activated=false, got true")
				}
			}

			if tt.wantMail {
				deadline := time.Now().Add(time.Second)
				for len(mockMailer.GetSentEmails()) == 0 && time.Now().Before(deadline) {
					time.Sleep(10 * time.Millisecond)
				}

				emails := mockMailer.GetSentEmails()
				if len(emails) != 1 {
					t.Fatalf("Expected 1 welcome email, got %d", len(emails))
				}
				if emails[0].TemplateFile != "user_welcome.tmpl" {
					t.Errorf("Expected user_welcome.tmpl, got %s", emails[0].TemplateFile)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestActivateUser(t *testing.T) {
	validToken := "O8N3AqxZYwWDq2pXWZXM4yqpyoXKUYXzV5bV0z5dL5k"

	tests := []struct {
		name               string
		input              api.UserActivationRequest
		getUserByTokenFunc func(ctx context.Context, hash []byte, scope string) (*domain.User, error)
		activateUserFunc   func(ctx context.Context, user *domain.User) error
		wantStatus         int
		wantErrMessage     string
	}{
		{
			name:  "successful activation",
			input: api.UserActivationRequest{Token: validToken},
			getUserByTokenFunc: func(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
				return &domain.User{ID: 1, Activated: false}, nil
			},
			activateUserFunc: func(ctx context.Context, user *domain.User) error {
				return nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "malformed token",
			input:          api.UserActivationRequest{Token: "too-short"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrLen, "43"),
		},
		{
			name:  "unknown token",
			input: api.UserActivationRequest{Token: validToken},
			getUserByTokenFunc: func(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:  "already activated user",
			input: api.UserActivationRequest{Token: validToken},
			getUserByTokenFunc: func(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
				return &domain.User{ID: 1, Activated: true}, nil
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflict,
		},
		{
			name:  "concurrent activation conflict",
			input: api.UserActivationRequest{Token: validToken},
			getUserByTokenFunc: func(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
				return &domain.User{ID: 1, Activated: false}, nil
			},
			activateUserFunc: func(ctx context.Context, user *domain.User) error {
				return domain.ErrEditConflict
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{
					GetByTokenFunc:   tt.getUserByTokenFunc,
					ActivateUserFunc: tt.activateUserFunc,
				}
			})

			w, r := executeRequest(t, http.MethodPut, "/users/activate", tt.input)

			app.ActivateUser(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("ActivateUser() status = %v, want %v", got, tt.wantStatus)
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestLogin(t *testing.T) {
	activeUser := func() *domain.User {
		user := &domain.User{ID: 1, Email: "john@example.com", Role: domain.RoleUser, Activated: true}

		err := user.Password.Set("Pass123!@#")
		if err != nil {
			t.Fatal(err)
		}

		return user
	}

	tests := []struct {
		name           string
		input          api.LoginRequest
		sessionUserId  int
		getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:          "already logged in",
			input:         api.LoginRequest{Email: "john@example.com", Password: "Pass123!@#"},
			sessionUserId: 1,
			wantStatus:    http.StatusOK,
		},
		{
			name:           "invalid credentials shape",
			input:          api.LoginRequest{Email: "not-an-email", Password: "x"},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "unknown user",
			input: api.LoginRequest{Email: "ghost@example.com", Password: "Pass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "wrong password",
			input: api.LoginRequest{Email: "john@example.com", Password: "WrongPass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return activeUser(), nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "successful login",
			input: api.LoginRequest{Email: "john@example.com", Password: "Pass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return activeUser(), nil
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{GetByEmailFunc: tt.getByEmailFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/sessions", tt.input)
			r = setupTestSession(t, app, r, tt.sessionUserId)

			app.Login(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("Login() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusNoContent {
				userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
				if userId != 1 {
					t.Errorf("Expected user id 1 in session, got %d", userId)
				}

				role := app.sessionManager.GetString(r.Context(), SessionKeyUserRole.String())
				if role != string(domain.RoleUser) {
					t.Errorf("Expected role USER in session, got %q", role)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name          string
		sessionUserId int
		wantStatus    int
	}{
		{
			name:          "no active session",
			sessionUserId: 0,
			wantStatus:    http.StatusNotFound,
		},
		{
			name:          "successful logout",
			sessionUserId: 1,
			wantStatus:    http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			w, r := executeRequest(t, http.MethodDelete, "/sessions", nil)
			r = setupTestSession(t, app, r, tt.sessionUserId)

			app.Logout(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("Logout() status = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}
