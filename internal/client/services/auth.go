package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/session"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

// LoginInput holds the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput holds the registration form. The confirmation is checked
// locally and never sent.
type RegisterInput struct {
	FullName        string `json:"full_name" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
	Password        string `json:"password" validate:"min=6"`
	DegreeProgram   string `json:"degree_program"`
	CareerGoal      string `json:"career_goal"`
	CurrentYear     int    `json:"current_year" validate:"omitempty,gte=1,lte=6"`
	CurrentSemester int    `json:"current_semester" validate:"omitempty,gte=1,lte=2"`
}

func init() {
	validation.RegisterMessage("RegisterInput.confirm_password", "eqfield", "Passwords do not match")
	validation.RegisterMessage("RegisterInput.password", "min", "Password must be at least 6 characters long")
	validation.RegisterMessage("RegisterInput.full_name", "notblank", "Please enter your full name")
}

func (in RegisterInput) request() models.RegisterRequest {
	req := models.RegisterRequest{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	if in.DegreeProgram != "" {
		req.DegreeProgram = &in.DegreeProgram
	}
	if in.CareerGoal != "" {
		req.CareerGoal = &in.CareerGoal
	}
	if in.CurrentYear != 0 {
		req.CurrentYear = &in.CurrentYear
	}
	if in.CurrentSemester != 0 {
		req.CurrentSemester = &in.CurrentSemester
	}
	return req
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Register: authenticate against the server and store the session.
//   - RefreshProfile/UpdateProfile: replace the stored profile with the server's.
//   - Logout: drop the session locally.
//   - Rehydrate: restore the session from durable storage.
//   - Ping: check server liveness.
//
// A session persistence failure is returned after the in-memory session
// has been updated, so the user stays logged in for this run.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*models.UserProfile, error)
	Register(ctx context.Context, in RegisterInput) (*models.UserProfile, error)
	RefreshProfile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	Rehydrate(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Store
	logger  logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client and the
// session store.
func NewAuthService(c client.Client, s *session.Store, logger logging.Logger) AuthService {
	return &authService{client: c, session: s, logger: logger}
}

func (a *authService) Login(ctx context.Context, in LoginInput) (*models.UserProfile, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.establish(ctx, resp)
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.UserProfile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	resp, err := a.client.Register(ctx, in.request())
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return a.establish(ctx, resp)
}

func (a *authService) establish(ctx context.Context, resp models.AuthResponse) (*models.UserProfile, error) {
	user := resp.User
	if err := a.session.SetAuth(ctx, &user, resp.AccessToken); err != nil {
		return &user, err
	}
	a.logger.Info(ctx, "logged in", "user_id", user.ID)
	return &user, nil
}

// RefreshProfile fetches the real profile, replacing a rehydration
// placeholder or stale data.
func (a *authService) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	profile, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	return &profile, a.session.SetUser(ctx, &profile)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if upd.FullName != nil {
		if err := validation.Var("full_name", *upd.FullName, "notblank"); err != nil {
			return nil, err
		}
	}
	if upd.CurrentYear != nil {
		if err := validation.Var("current_year", *upd.CurrentYear, "gte=1,lte=6"); err != nil {
			return nil, err
		}
	}
	if upd.CurrentSemester != nil {
		if err := validation.Var("current_semester", *upd.CurrentSemester, "gte=1,lte=2"); err != nil {
			return nil, err
		}
	}

	profile, err := a.client.UpdateMe(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("profile update error: %w", err)
	}
	return &profile, a.session.SetUser(ctx, &profile)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Rehydrate(ctx context.Context) (bool, error) {
	if err := a.session.Restore(ctx); err != nil {
		return false, err
	}
	return a.session.Rehydrate(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
