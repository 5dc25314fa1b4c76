package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/syncer"
)

const MsgLoadJobs = "Failed to load job opportunities. Please try again."

// OpportunityService searches external job postings.
type OpportunityService interface {
	Search(ctx context.Context, q models.JobQuery) ([]models.Job, error)
	Personalized(ctx context.Context, profile *models.UserProfile) ([]models.Job, error)
	List() []models.Job
	Clear()
}

type opportunityService struct {
	client client.Client
	jobs   *syncer.Collection[string, models.Job]
}

func NewOpportunityService(c client.Client) OpportunityService {
	return &opportunityService{
		client: c,
		jobs:   syncer.New(func(j models.Job) string { return j.ID }),
	}
}

// Search replaces the held job list with the results of q.
func (s *opportunityService) Search(ctx context.Context, q models.JobQuery) ([]models.Job, error) {
	q.Search = strings.TrimSpace(q.Search)
	q.Location = strings.TrimSpace(q.Location)

	err := s.jobs.FetchAll(ctx, func(ctx context.Context) ([]models.Job, error) {
		res, err := s.client.SearchJobs(ctx, q)
		if err != nil {
			return nil, err
		}
		return res.Results, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return s.jobs.Items(), nil
}

// Personalized searches for the profile's career goal, or for everything
// when none is set.
func (s *opportunityService) Personalized(ctx context.Context, profile *models.UserProfile) ([]models.Job, error) {
	var q models.JobQuery
	if profile != nil && profile.CareerGoal != nil {
		q.Search = *profile.CareerGoal
	}
	return s.Search(ctx, q)
}

func (s *opportunityService) List() []models.Job {
	return s.jobs.Items()
}

func (s *opportunityService) Clear() {
	s.jobs.Clear()
}
