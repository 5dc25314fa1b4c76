package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/syncer"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

const (
	MsgLoadProjects    = "Failed to load data"
	MsgGenerateProject = "Failed to generate project"
	MsgUpdateProject   = "Failed to update project status"
	MsgDeleteProject   = "Failed to delete project"
)

var statusRule = "oneof=" + strings.Join(models.ProjectStatuses, " ")

// ProjectService manages generated practice projects.
type ProjectService interface {
	FetchAll(ctx context.Context) error
	List() []models.Project
	Get(id int64) (models.Project, bool)
	Recent(n int) []models.Project
	Generate(ctx context.Context, subjectID int64) (models.Project, error)
	UpdateStatus(ctx context.Context, id int64, status string) (models.Project, error)
	Delete(ctx context.Context, id int64) error
	Clear()
}

type projectService struct {
	client   client.Client
	projects *syncer.Collection[int64, models.Project]
	logger   logging.Logger
}

func NewProjectService(c client.Client, logger logging.Logger) ProjectService {
	return &projectService{
		client:   c,
		projects: syncer.New(func(p models.Project) int64 { return p.ID }),
		logger:   logger,
	}
}

func (s *projectService) FetchAll(ctx context.Context) error {
	if err := s.projects.FetchAll(ctx, s.client.ListProjects); err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	return nil
}

func (s *projectService) List() []models.Project {
	return s.projects.Items()
}

func (s *projectService) Get(id int64) (models.Project, bool) {
	return s.projects.Get(id)
}

// Recent returns up to n projects, most recently active first. n <= 0
// returns all of them.
func (s *projectService) Recent(n int) []models.Project {
	out := s.projects.SortedBy(func(a, b models.Project) bool {
		return a.LastActivity().After(b.LastActivity())
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *projectService) Generate(ctx context.Context, subjectID int64) (models.Project, error) {
	if err := validation.Var("subject_id", subjectID, "gt=0"); err != nil {
		return models.Project{}, err
	}
	p, err := s.projects.Create(ctx, func(ctx context.Context) (models.Project, error) {
		return s.client.GenerateProject(ctx, subjectID)
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("generate project: %w", err)
	}
	s.logger.Debug(ctx, "project generated", "project_id", p.ID, "subject_id", subjectID)
	return p, nil
}

func (s *projectService) UpdateStatus(ctx context.Context, id int64, status string) (models.Project, error) {
	if err := validation.Var("status", status, statusRule); err != nil {
		return models.Project{}, err
	}
	p, err := s.projects.Update(ctx, func(ctx context.Context) (models.Project, error) {
		return s.client.UpdateProject(ctx, id, models.ProjectUpdate{Status: &status})
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("update project %d: %w", id, err)
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	err := s.projects.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteProject(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}

func (s *projectService) Clear() {
	s.projects.Clear()
}
