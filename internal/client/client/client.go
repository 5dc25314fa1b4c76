package client

import (
	"context"

	"github.com/edupilot/edupilot/internal/client/models"
)

// Client is the EduPilot backend API.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Me(ctx context.Context) (models.UserProfile, error)
	UpdateMe(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error)

	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, req models.SubjectCreate) (models.Subject, error)
	GenerateConcepts(ctx context.Context, subjectID int64) error
	DeleteSubject(ctx context.Context, subjectID int64) error
	ToggleConcept(ctx context.Context, subjectID, conceptID int64) (models.ToggleResult, error)
	GenerateTask(ctx context.Context, subjectID int64) (models.GeneratedTask, error)
	SubmitProject(ctx context.Context, sub models.ProjectSubmission) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	GenerateProject(ctx context.Context, subjectID int64) (models.Project, error)
	UpdateProject(ctx context.Context, projectID int64, upd models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, projectID int64) error

	ListSkills(ctx context.Context) ([]models.Skill, error)
	CreateSkill(ctx context.Context, req models.SkillCreate) (models.Skill, error)
	UpdateSkillProgress(ctx context.Context, skillID int64, level float64) (models.SkillProgress, error)
	Roadmap(ctx context.Context) (models.Roadmap, error)

	CurrentCV(ctx context.Context) (models.CV, error)
	SaveCV(ctx context.Context, cv models.CV) (models.CV, error)
	GenerateCV(ctx context.Context) (models.CV, error)
	FormatCV(ctx context.Context, req models.CVFormatRequest) (models.CVFormatResponse, error)

	SearchJobs(ctx context.Context, q models.JobQuery) (models.JobResults, error)

	ChatSession(ctx context.Context) (*models.ChatSession, error)
	SendChatMessage(ctx context.Context, req models.ChatRequest) (models.ChatMessage, error)
	ClearChat(ctx context.Context) error
}

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
