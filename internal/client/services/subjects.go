package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/progress"
	"github.com/edupilot/edupilot/internal/client/syncer"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

// Fallback texts shown when the server gives nothing better.
const (
	MsgLoadSubjects     = "Failed to load subjects"
	MsgAddSubject       = "Failed to add course"
	MsgDeleteSubject    = "Failed to delete course"
	MsgToggleConcept    = "Failed to update concept"
	MsgGenerateTask     = "Failed to generate project task"
	MsgSubmitProject    = "Failed to submit project"
	MsgGenerateConcepts = "Failed to generate concepts"
)

type subjectInput struct {
	Name string `json:"name" validate:"notblank"`
}

func init() {
	validation.RegisterMessage("subjectInput.name", "notblank", "Please enter a course name")
	validation.RegisterMessage("ProjectSubmission.documentation", "required", "Documentation is required")
	validation.RegisterMessage("ProjectSubmission.task", "notblank", "Generate a project task first")
	validation.RegisterMessage("ProjectSubmission.github_link", "url", "GitHub link must be a valid URL")
}

// SubjectService manages the user's subjects and their concepts.
type SubjectService interface {
	FetchAll(ctx context.Context) error
	List() []models.Subject
	Get(id int64) (models.Subject, bool)
	Add(ctx context.Context, name string) (models.Subject, error)
	GenerateConcepts(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ToggleConcept(ctx context.Context, subjectID, conceptID int64) (models.Subject, error)
	GenerateTask(ctx context.Context, id int64) (string, error)
	SubmitProject(ctx context.Context, sub models.ProjectSubmission) error
	Progress(id int64) (float64, bool)
	Clear()
}

type subjectService struct {
	client     client.Client
	subjects   *syncer.Collection[int64, models.Subject]
	reconciler *progress.Reconciler
	logger     logging.Logger
}

func NewSubjectService(c client.Client, logger logging.Logger) SubjectService {
	subjects := syncer.New(func(s models.Subject) int64 { return s.ID })
	return &subjectService{
		client:     c,
		subjects:   subjects,
		reconciler: progress.NewReconciler(subjects, c.ToggleConcept, logger),
		logger:     logger,
	}
}

func (s *subjectService) FetchAll(ctx context.Context) error {
	if err := s.subjects.FetchAll(ctx, s.client.ListSubjects); err != nil {
		return fmt.Errorf("list subjects: %w", err)
	}
	return nil
}

func (s *subjectService) List() []models.Subject {
	return s.subjects.Items()
}

func (s *subjectService) Get(id int64) (models.Subject, bool) {
	return s.subjects.Get(id)
}

// Add creates a subject, asks the server to generate its concepts and then
// reloads the list. A concept generation failure is logged but does not
// fail the add.
func (s *subjectService) Add(ctx context.Context, name string) (models.Subject, error) {
	if err := validation.Struct(subjectInput{Name: name}); err != nil {
		return models.Subject{}, err
	}

	req := models.SubjectCreate{Name: strings.TrimSpace(name), Code: "", Semester: 1}
	created, err := s.subjects.Create(ctx, func(ctx context.Context) (models.Subject, error) {
		return s.client.CreateSubject(ctx, req)
	})
	if err != nil {
		return models.Subject{}, fmt.Errorf("create subject: %w", err)
	}

	if err := s.client.GenerateConcepts(ctx, created.ID); err != nil {
		s.logger.Warn(ctx, "failed to generate concepts", "subject_id", created.ID, "error", err)
	}
	if err := s.FetchAll(ctx); err != nil {
		return created, err
	}
	if fresh, ok := s.subjects.Get(created.ID); ok {
		return fresh, nil
	}
	return created, nil
}

func (s *subjectService) GenerateConcepts(ctx context.Context, id int64) error {
	if err := s.client.GenerateConcepts(ctx, id); err != nil {
		return fmt.Errorf("generate concepts: %w", err)
	}
	return s.FetchAll(ctx)
}

func (s *subjectService) Delete(ctx context.Context, id int64) error {
	err := s.subjects.Delete(ctx, id, func(ctx context.Context) error {
		return s.client.DeleteSubject(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete subject %d: %w", id, err)
	}
	return nil
}

func (s *subjectService) ToggleConcept(ctx context.Context, subjectID, conceptID int64) (models.Subject, error) {
	return s.reconciler.Toggle(ctx, subjectID, conceptID)
}

// GenerateTask returns the subject's project task. A stored task is reused
// without a request; otherwise every concept must be learned first.
func (s *subjectService) GenerateTask(ctx context.Context, id int64) (string, error) {
	subj, ok := s.subjects.Get(id)
	if !ok {
		return "", fmt.Errorf("subject %d: %w", id, client.ErrNotFound)
	}
	if subj.HasGeneratedTask() {
		return subj.GeneratedTask, nil
	}
	if subj.IsCompleted() {
		return "", validation.New("subject", "This course is already completed")
	}
	if !subj.AllConceptsLearned() {
		return "", validation.New("concepts", "Learn every concept before starting the project")
	}

	seq := s.subjects.Next()
	res, err := s.client.GenerateTask(ctx, id)
	if err != nil {
		return "", fmt.Errorf("generate task: %w", err)
	}

	s.subjects.Mutate(seq, id, func(cur models.Subject) models.Subject {
		cur.GeneratedTask = res.Task
		return cur
	})
	return res.Task, nil
}

// SubmitProject uploads the documentation for a subject's task and reloads
// the subjects, whose status and progress the server has changed.
func (s *subjectService) SubmitProject(ctx context.Context, sub models.ProjectSubmission) error {
	sub.GithubLink = strings.TrimSpace(sub.GithubLink)
	if err := validation.Struct(sub); err != nil {
		return err
	}
	if _, err := os.Stat(sub.DocumentationPath); err != nil {
		return validation.New("documentation", fmt.Sprintf("Cannot read documentation file %s", sub.DocumentationPath))
	}

	if err := s.client.SubmitProject(ctx, sub); err != nil {
		return fmt.Errorf("submit project: %w", err)
	}
	return s.FetchAll(ctx)
}

// Progress returns the displayed completion percentage of a subject.
func (s *subjectService) Progress(id int64) (float64, bool) {
	subj, ok := s.subjects.Get(id)
	if !ok {
		return 0, false
	}
	return progress.Percent(subj), true
}

func (s *subjectService) Clear() {
	s.subjects.Clear()
}
