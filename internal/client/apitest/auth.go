package apitest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

type authAPI struct {
	s *Server
}

func registerAuthAPI(g *echo.Group, auth echo.MiddlewareFunc, s *Server) {
	a := authAPI{s: s}

	ag := g.Group("/auth")
	ag.POST("/register", a.register)
	ag.POST("/login", a.login)
	ag.GET("/me", a.me, auth)
	ag.PUT("/me", a.updateMe, auth)
}

func (a authAPI) register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if !strings.Contains(req.Email, "@") {
		return validationError("email", "value is not a valid email address")
	}
	if len(req.Password) < 6 {
		return validationError("password", "ensure this value has at least 6 characters")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return validationError("full_name", "field required")
	}

	a.s.mu.Lock()
	_, exists := a.s.accounts[req.Email]
	a.s.mu.Unlock()
	if exists {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}

	profile := a.s.SeedUser(req.Email, req.Password, req.FullName)
	a.s.mu.Lock()
	acc := a.s.accounts[req.Email]
	acc.profile.DegreeProgram = req.DegreeProgram
	acc.profile.CurrentYear = req.CurrentYear
	acc.profile.CurrentSemester = req.CurrentSemester
	acc.profile.CareerGoal = req.CareerGoal
	profile = acc.profile
	a.s.mu.Unlock()

	tok, err := issueToken(profile, expirationDelta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.AuthResponse{AccessToken: tok, TokenType: "bearer", User: profile})
}

func (a authAPI) login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	a.s.mu.Lock()
	acc := a.s.accounts[req.Email]
	a.s.mu.Unlock()
	if acc == nil || acc.password != req.Password {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	tok, err := issueToken(acc.profile, expirationDelta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AuthResponse{AccessToken: tok, TokenType: "bearer", User: acc.profile})
}

func (a authAPI) me(c echo.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	acc := a.s.accounts[c.Get("email").(string)]
	return c.JSON(http.StatusOK, acc.profile)
}

func (a authAPI) updateMe(c echo.Context) error {
	var upd models.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return err
	}
	if upd.CurrentYear != nil && (*upd.CurrentYear < 1 || *upd.CurrentYear > 6) {
		return validationError("current_year", "ensure this value is between 1 and 6")
	}

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	acc := a.s.accounts[c.Get("email").(string)]
	p := &acc.profile
	if upd.Username != nil {
		p.Username = upd.Username
	}
	if upd.FullName != nil {
		p.FullName = *upd.FullName
	}
	if upd.DegreeProgram != nil {
		p.DegreeProgram = upd.DegreeProgram
	}
	if upd.CurrentYear != nil {
		p.CurrentYear = upd.CurrentYear
	}
	if upd.CurrentSemester != nil {
		p.CurrentSemester = upd.CurrentSemester
	}
	if upd.CareerGoal != nil {
		p.CareerGoal = upd.CareerGoal
	}
	return c.JSON(http.StatusOK, acc.profile)
}
