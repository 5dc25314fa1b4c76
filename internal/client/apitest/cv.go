package apitest

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

type cvAPI struct {
	s *Server
}

func registerCVAPI(g *echo.Group, s *Server) {
	a := cvAPI{s: s}

	g.GET("/current", a.current)
	g.POST("/save", a.save)
	g.POST("/generate", a.generate)
	g.POST("/generate-formatted", a.generateFormatted)
}

func (a cvAPI) current(c echo.Context) error {
	cv, ok := a.s.CV(models.UserProfile{ID: userID(c)})
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "No CV found. Generate one first.")
	}
	return c.JSON(http.StatusOK, cv)
}

func (a cvAPI) save(c echo.Context) error {
	var cv models.CV
	if err := c.Bind(&cv); err != nil {
		return err
	}
	a.s.mu.Lock()
	updated := a.s.nowLocked()
	cv.UpdatedAt = &updated
	a.s.cvs[userID(c)] = cv
	a.s.mu.Unlock()
	return c.JSON(http.StatusOK, cv)
}

func (a cvAPI) generate(c echo.Context) error {
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	acc := a.s.accounts[c.Get("email").(string)]

	names := make([]string, 0, len(a.s.skills[uid]))
	for _, sk := range a.s.skills[uid] {
		names = append(names, sk.Name)
	}
	var projects []models.CVProject
	for _, p := range a.s.projects[uid] {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		projects = append(projects, models.CVProject{Name: p.Title, Description: desc})
	}

	summary := "Student"
	if acc.profile.DegreeProgram != nil {
		summary = *acc.profile.DegreeProgram + " student"
	}
	if acc.profile.CareerGoal != nil {
		summary += " aiming to become a " + *acc.profile.CareerGoal
	}

	updated := a.s.nowLocked()
	cv := models.CV{
		FullName:        acc.profile.FullName,
		Email:           acc.profile.Email,
		Summary:         summary + ".",
		TechnicalSkills: strings.Join(names, ", "),
		Projects:        projects,
		UpdatedAt:       &updated,
	}
	a.s.cvs[uid] = cv
	return c.JSON(http.StatusOK, cv)
}

func (a cvAPI) generateFormatted(c echo.Context) error {
	var req models.CVFormatRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if !slices.Contains(models.CVFormats, req.Format) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unsupported format: %s", req.Format))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", strings.ToUpper(req.Format))
	fmt.Fprintf(&b, "%s\n", req.CVData.FullName)
	if req.CVData.Email != "" {
		fmt.Fprintf(&b, "%s\n", req.CVData.Email)
	}
	if req.CVData.Summary != "" {
		fmt.Fprintf(&b, "\nSUMMARY\n%s\n", req.CVData.Summary)
	}
	if req.CVData.TechnicalSkills != "" {
		fmt.Fprintf(&b, "\nSKILLS\n%s\n", req.CVData.TechnicalSkills)
	}
	return c.JSON(http.StatusOK, models.CVFormatResponse{FormattedCV: b.String()})
}
