package models

import "time"

// Subject statuses.
const (
	SubjectInProgress = "in_progress"
	SubjectCompleted  = "completed"
)

// Concept is a single learning checkpoint owned by a Subject.
type Concept struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Learned bool   `json:"learned"`
}

// Subject is a learning unit tracked by the user.
type Subject struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Code          *string    `json:"code,omitempty"`
	Semester      *int       `json:"semester,omitempty"`
	Year          *int       `json:"year,omitempty"`
	Credits       *int       `json:"credits,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Concepts      []Concept  `json:"concepts"`
	Status        string     `json:"status,omitempty"`
	Progress      *float64   `json:"progress,omitempty"`
	GeneratedTask string     `json:"generated_task,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Clone returns a copy of s whose concept slice is not shared.
func (s Subject) Clone() Subject {
	if s.Concepts != nil {
		s.Concepts = append([]Concept(nil), s.Concepts...)
	}
	return s
}

func (s Subject) IsCompleted() bool {
	return s.Status == SubjectCompleted
}

func (s Subject) HasGeneratedTask() bool {
	return s.GeneratedTask != ""
}

// LearnedCount returns the number of learned concepts.
func (s Subject) LearnedCount() int {
	n := 0
	for _, c := range s.Concepts {
		if c.Learned {
			n++
		}
	}
	return n
}

// AllConceptsLearned reports whether the subject has concepts and every
// one of them is learned.
func (s Subject) AllConceptsLearned() bool {
	return len(s.Concepts) > 0 && s.LearnedCount() == len(s.Concepts)
}

// ConceptIndex returns the position of the concept with the given id, or -1.
func (s Subject) ConceptIndex(conceptID int64) int {
	for i, c := range s.Concepts {
		if c.ID == conceptID {
			return i
		}
	}
	return -1
}

// SubjectCreate is the body of POST /academic/subjects.
type SubjectCreate struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Semester    int     `json:"semester"`
	Year        *int    `json:"year,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToggleResult is the body returned by the concept toggle endpoint.
// Progress is nil when the server does not opine.
type ToggleResult struct {
	Progress *float64 `json:"progress,omitempty"`
	Learned  *bool    `json:"learned,omitempty"`
}

// GeneratedTask is the body returned by the generate-task endpoint.
type GeneratedTask struct {
	Task string `json:"task"`
}

// ProjectSubmission is the multipart payload of submit-project.
type ProjectSubmission struct {
	SubjectID         int64  `json:"subject_id" validate:"required"`
	Task              string `json:"task" validate:"notblank"`
	GithubLink        string `json:"github_link" validate:"omitempty,url"`
	DocumentationPath string `json:"documentation" validate:"required"`
}
