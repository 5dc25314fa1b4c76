package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/netx"
)

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/health", root: true}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", json: req}, &out)
	return out, err
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", json: req}, &out)
	return out, err
}

func (c *HTTPClient) Me(ctx context.Context) (models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &out)
	return out, err
}

func (c *HTTPClient) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, request{method: http.MethodPut, path: "/auth/me", json: upd}, &out)
	return out, err
}

func (c *HTTPClient) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var out []models.Subject
	err := c.do(ctx, request{method: http.MethodGet, path: "/academic/subjects"}, &out)
	return out, err
}

func (c *HTTPClient) CreateSubject(ctx context.Context, req models.SubjectCreate) (models.Subject, error) {
	var out models.Subject
	err := c.do(ctx, request{method: http.MethodPost, path: "/academic/subjects", json: req}, &out)
	return out, err
}

func (c *HTTPClient) GenerateConcepts(ctx context.Context, subjectID int64) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/academic/subjects/%d/concepts", subjectID)}, nil)
}

func (c *HTTPClient) DeleteSubject(ctx context.Context, subjectID int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/academic/subjects/%d", subjectID)}, nil)
}

func (c *HTTPClient) ToggleConcept(ctx context.Context, subjectID, conceptID int64) (models.ToggleResult, error) {
	var out models.ToggleResult
	path := fmt.Sprintf("/academic/subjects/%d/concepts/%d/toggle", subjectID, conceptID)
	err := c.do(ctx, request{method: http.MethodPut, path: path}, &out)
	return out, err
}

func (c *HTTPClient) GenerateTask(ctx context.Context, subjectID int64) (models.GeneratedTask, error) {
	var out models.GeneratedTask
	path := fmt.Sprintf("/academic/subjects/%d/generate-task", subjectID)
	err := c.do(ctx, request{method: http.MethodPost, path: path}, &out)
	return out, err
}

func (c *HTTPClient) SubmitProject(ctx context.Context, sub models.ProjectSubmission) error {
	fields := [][2]string{
		{"subject_id", strconv.FormatInt(sub.SubjectID, 10)},
		{"task", sub.Task},
		{"github_link", sub.GithubLink},
	}
	body, contentType, err := netx.MultipartBody(fields, &netx.FilePart{Field: "documentation", Path: sub.DocumentationPath})
	if err != nil {
		return fmt.Errorf("build submission: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/academic/subjects/submit-project",
		body:        body,
		contentType: contentType,
	}, nil)
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := c.do(ctx, request{method: http.MethodGet, path: "/projects"}, &out)
	return out, err
}

func (c *HTTPClient) GenerateProject(ctx context.Context, subjectID int64) (models.Project, error) {
	var out models.Project
	err := c.do(ctx, request{method: http.MethodPost, path: "/projects/generate", json: models.ProjectGenerate{SubjectID: subjectID}}, &out)
	return out, err
}

func (c *HTTPClient) UpdateProject(ctx context.Context, projectID int64, upd models.ProjectUpdate) (models.Project, error) {
	var out models.Project
	err := c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/projects/%d", projectID), json: upd}, &out)
	return out, err
}

func (c *HTTPClient) DeleteProject(ctx context.Context, projectID int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/projects/%d", projectID)}, nil)
}

func (c *HTTPClient) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var out []models.Skill
	err := c.do(ctx, request{method: http.MethodGet, path: "/academic/skills"}, &out)
	return out, err
}

func (c *HTTPClient) CreateSkill(ctx context.Context, req models.SkillCreate) (models.Skill, error) {
	var out models.Skill
	err := c.do(ctx, request{method: http.MethodPost, path: "/academic/skills", json: req}, &out)
	return out, err
}

func (c *HTTPClient) UpdateSkillProgress(ctx context.Context, skillID int64, level float64) (models.SkillProgress, error) {
	var out models.SkillProgress
	q := url.Values{"proficiency_level": {strconv.FormatFloat(level, 'f', -1, 64)}}
	err := c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/academic/skills/%d/progress", skillID), query: q}, &out)
	return out, err
}

func (c *HTTPClient) Roadmap(ctx context.Context) (models.Roadmap, error) {
	var out models.Roadmap
	err := c.do(ctx, request{method: http.MethodGet, path: "/academic/roadmap"}, &out)
	return out, err
}

func (c *HTTPClient) CurrentCV(ctx context.Context) (models.CV, error) {
	var out models.CV
	err := c.do(ctx, request{method: http.MethodGet, path: "/cv/current"}, &out)
	return out, err
}

func (c *HTTPClient) SaveCV(ctx context.Context, cv models.CV) (models.CV, error) {
	var out models.CV
	err := c.do(ctx, request{method: http.MethodPost, path: "/cv/save", json: cv}, &out)
	return out, err
}

func (c *HTTPClient) GenerateCV(ctx context.Context) (models.CV, error) {
	var out models.CV
	err := c.do(ctx, request{method: http.MethodPost, path: "/cv/generate"}, &out)
	return out, err
}

func (c *HTTPClient) FormatCV(ctx context.Context, req models.CVFormatRequest) (models.CVFormatResponse, error) {
	var out models.CVFormatResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/cv/generate-formatted", json: req}, &out)
	return out, err
}

// SearchJobs only sends the filters that are set; results are always
// sorted by relevance.
func (c *HTTPClient) SearchJobs(ctx context.Context, q models.JobQuery) (models.JobResults, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Remote != nil {
		params.Set("remote", strconv.FormatBool(*q.Remote))
	}
	params.Set("sort_by", "relevance")

	var out models.JobResults
	err := c.do(ctx, request{method: http.MethodGet, path: "/opportunities/jobs", query: params}, &out)
	return out, err
}

// ChatSession returns the latest EduBot conversation. The server may
// answer null, in which case the session is nil.
func (c *HTTPClient) ChatSession(ctx context.Context) (*models.ChatSession, error) {
	var out *models.ChatSession
	err := c.do(ctx, request{method: http.MethodGet, path: "/chat/session"}, &out)
	return out, err
}

// SendChatMessage posts a user message and returns the assistant's reply.
func (c *HTTPClient) SendChatMessage(ctx context.Context, req models.ChatRequest) (models.ChatMessage, error) {
	var out models.ChatMessage
	err := c.do(ctx, request{method: http.MethodPost, path: "/chat/message", json: req}, &out)
	return out, err
}

func (c *HTTPClient) ClearChat(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/chat/clear"}, nil)
}
