package apitest

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

type projectAPI struct {
	s *Server
}

func registerProjectAPI(g *echo.Group, s *Server) {
	a := projectAPI{s: s}

	g.GET("", a.projectList)
	g.POST("/generate", a.projectGenerate)
	g.PUT("/:id", a.projectUpdate)
	g.DELETE("/:id", a.projectDestroy)
}

func (a projectAPI) projectList(c echo.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.Project{}, a.s.projects[userID(c)]...))
}

func (a projectAPI) projectGenerate(c echo.Context) error {
	var req models.ProjectGenerate
	if err := c.Bind(&req); err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	i := a.s.subjectIndexLocked(uid, req.SubjectID)
	if i < 0 {
		a.s.mu.Unlock()
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	subj := a.s.subjects[uid][i]
	a.s.mu.Unlock()

	skills, _ := json.Marshal([]string{subj.Name, "Git"})
	deliverables, _ := json.Marshal([]string{"Source code", "README"})
	criteria, _ := json.Marshal([]string{"Correctness", "Code quality"})
	desc := "A hands-on project for " + subj.Name
	problem := "Design and implement a working solution using " + subj.Name + "."
	difficulty := "Intermediate"
	hours := 30
	sk, dl, cr := string(skills), string(deliverables), string(criteria)

	p := a.s.SeedProject(models.UserProfile{ID: uid}, models.Project{
		Title:              subj.Name + " Capstone",
		Description:        &desc,
		ProblemStatement:   &problem,
		DifficultyLevel:    &difficulty,
		EstimatedHours:     &hours,
		RequiredSkills:     &sk,
		Deliverables:       &dl,
		EvaluationCriteria: &cr,
	})
	return c.JSON(http.StatusCreated, p)
}

func (a projectAPI) projectUpdate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var upd models.ProjectUpdate
	if err := c.Bind(&upd); err != nil {
		return err
	}
	if upd.Status != nil && !slices.Contains(models.ProjectStatuses, *upd.Status) {
		return validationError("status", "value is not a valid enumeration member")
	}
	if upd.CompletionPercentage != nil && (*upd.CompletionPercentage < 0 || *upd.CompletionPercentage > 100) {
		return validationError("completion_percentage", "ensure this value is between 0 and 100")
	}

	uid := userID(c)
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for i := range a.s.projects[uid] {
		p := &a.s.projects[uid][i]
		if p.ID != id {
			continue
		}
		if upd.Status != nil {
			p.Status = *upd.Status
			if p.Status == models.ProjectCompleted {
				p.CompletionPercentage = 100
			}
		}
		if upd.CompletionPercentage != nil {
			p.CompletionPercentage = *upd.CompletionPercentage
		}
		if upd.GithubURL != nil {
			p.GithubURL = upd.GithubURL
		}
		if upd.LiveURL != nil {
			p.LiveURL = upd.LiveURL
		}
		if upd.ActualHours != nil {
			p.ActualHours = upd.ActualHours
		}
		updated := a.s.nowLocked()
		p.UpdatedAt = &updated
		return c.JSON(http.StatusOK, *p)
	}
	return echo.NewHTTPError(http.StatusNotFound, "Project not found")
}

func (a projectAPI) projectDestroy(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	list := a.s.projects[uid]
	for i := range list {
		if list[i].ID == id {
			a.s.projects[uid] = append(list[:i:i], list[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Project not found")
}
