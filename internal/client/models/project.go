package models

import (
	"encoding/json"
	"time"
)

// Project statuses accepted by PUT /projects/{id}.
const (
	ProjectNotStarted = "not_started"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
	ProjectArchived   = "archived"
)

// ProjectStatuses lists every valid project status in workflow order.
var ProjectStatuses = []string{ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectArchived}

// Project is a generated practice project. The list-valued fields arrive
// as JSON-encoded strings; use the accessor methods to decode them.
type Project struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	ProblemStatement     *string    `json:"problem_statement,omitempty"`
	DifficultyLevel      *string    `json:"difficulty_level,omitempty"`
	EstimatedHours       *int       `json:"estimated_hours,omitempty"`
	RequiredSkills       *string    `json:"required_skills,omitempty"`
	Deliverables         *string    `json:"deliverables,omitempty"`
	EvaluationCriteria   *string    `json:"evaluation_criteria,omitempty"`
	Status               string     `json:"status"`
	CompletionPercentage int        `json:"completion_percentage"`
	GithubURL            *string    `json:"github_url,omitempty"`
	LiveURL              *string    `json:"live_url,omitempty"`
	ActualHours          *int       `json:"actual_hours,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

func (p Project) Skills() []string          { return decodeList(p.RequiredSkills) }
func (p Project) DeliverableList() []string { return decodeList(p.Deliverables) }
func (p Project) CriteriaList() []string    { return decodeList(p.EvaluationCriteria) }

// LastActivity is the most recent of UpdatedAt and CreatedAt.
func (p Project) LastActivity() time.Time {
	if p.UpdatedAt != nil && p.UpdatedAt.After(p.CreatedAt) {
		return *p.UpdatedAt
	}
	return p.CreatedAt
}

// decodeList accepts a JSON array string; anything else yields nil.
func decodeList(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil
	}
	return out
}

// ProjectGenerate is the body of POST /projects/generate.
type ProjectGenerate struct {
	SubjectID int64 `json:"subject_id"`
}

// ProjectUpdate is the body of PUT /projects/{id}.
type ProjectUpdate struct {
	Status               *string `json:"status,omitempty"`
	CompletionPercentage *int    `json:"completion_percentage,omitempty"`
	GithubURL            *string `json:"github_url,omitempty"`
	LiveURL              *string `json:"live_url,omitempty"`
	ActualHours          *int    `json:"actual_hours,omitempty"`
}
