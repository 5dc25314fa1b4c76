package apitest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

type opportunityAPI struct {
	s *Server
}

func registerOpportunityAPI(g *echo.Group, s *Server) {
	a := opportunityAPI{s: s}
	g.GET("/jobs", a.jobs)
}

func (a opportunityAPI) jobs(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("search"))
	location := strings.ToLower(c.QueryParam("location"))
	remoteOnly := c.QueryParam("remote") == "true"

	a.s.mu.Lock()
	jobs := append([]models.Job(nil), a.s.jobs...)
	a.s.mu.Unlock()

	results := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if search != "" && !jobMatches(j, search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		if remoteOnly && !j.Remote {
			continue
		}
		results = append(results, j)
	}
	return c.JSON(http.StatusOK, models.JobResults{Results: results})
}

func jobMatches(j models.Job, term string) bool {
	if strings.Contains(strings.ToLower(j.Role), term) || strings.Contains(strings.ToLower(j.CompanyName), term) {
		return true
	}
	for _, k := range j.Keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}
