// Package apitest runs an in-process fake of the EduPilot backend for
// tests. It speaks the same routes and JSON shapes as the real API,
// issues HS256 tokens, and can inject failures or hold requests so tests
// can force responses to arrive out of order.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

var (
	signingKey      = []byte("apitest-secret")
	expirationDelta = time.Hour
	baseTime        = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
)

// Claims are the JWT claims issued by the fake backend.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type account struct {
	profile  models.UserProfile
	password string
}

type fault struct {
	status int
	detail string
}

type gate struct {
	started chan struct{}
	release chan struct{}
}

// Submission is a project submission received by the fake backend.
type Submission struct {
	UserID        int64
	SubjectID     int64
	Task          string
	GithubLink    string
	FileName      string
	Documentation []byte
}

// Server is the fake backend. All exported methods are safe for
// concurrent use with in-flight requests.
type Server struct {
	*httptest.Server
	Echo *echo.Echo

	// OmitToggleProgress makes the toggle endpoint answer without a
	// progress value.
	OmitToggleProgress bool

	mu          sync.Mutex
	clock       int
	nextID      int64
	accounts    map[string]*account
	subjects    map[int64][]models.Subject
	projects    map[int64][]models.Project
	skills      map[int64][]models.Skill
	cvs         map[int64]models.CV
	chats       map[int64]*models.ChatSession
	jobs        []models.Job
	submissions []Submission
	faults      map[string][]fault
	gates       map[string]*gate
	calls       map[string]int
	queries     map[string][]map[string]string
}

// NewServer starts a fake backend that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts: make(map[string]*account),
		subjects: make(map[int64][]models.Subject),
		projects: make(map[int64][]models.Project),
		skills:   make(map[int64][]models.Skill),
		cvs:      make(map[int64]models.CV),
		chats:    make(map[int64]*models.ChatSession),
		faults:   make(map[string][]fault),
		gates:    make(map[string]*gate),
		calls:    make(map[string]int),
		queries:  make(map[string][]map[string]string),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = detailErrorHandler
	e.Use(s.recordMiddleware, s.faultMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})

	api := e.Group("/api")
	auth := s.authMiddleware
	registerAuthAPI(api, auth, s)
	registerAcademicAPI(api.Group("/academic", auth), s)
	registerProjectAPI(api.Group("/projects", auth), s)
	registerCVAPI(api.Group("/cv", auth), s)
	registerOpportunityAPI(api.Group("/opportunities", auth), s)
	registerChatAPI(api.Group("/chat", auth), s)

	s.Echo = e
	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Server.Close)
	return s
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FailNext makes the next request to the route (an echo pattern such as
// "/api/projects/:id") fail with status and a {"detail": ...} body.
func (s *Server) FailNext(method, route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := routeKey(method, route)
	s.faults[k] = append(s.faults[k], fault{status: status, detail: detail})
}

// Hold parks the next request to the route until release is called.
// started is closed once that request has arrived.
func (s *Server) Hold(method, route string) (started <-chan struct{}, release func()) {
	g := &gate{started: make(chan struct{}), release: make(chan struct{})}
	s.mu.Lock()
	s.gates[routeKey(method, route)] = g
	s.mu.Unlock()

	var once sync.Once
	return g.started, func() { once.Do(func() { close(g.release) }) }
}

// Calls returns how many requests reached the route.
func (s *Server) Calls(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[routeKey(method, route)]
}

// LastQuery returns the query parameters of the last request to the route.
func (s *Server) LastQuery(method, route string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	qs := s.queries[routeKey(method, route)]
	if len(qs) == 0 {
		return nil
	}
	return qs[len(qs)-1]
}

func (s *Server) recordMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		k := routeKey(c.Request().Method, c.Path())
		q := make(map[string]string)
		for name, vals := range c.QueryParams() {
			if len(vals) > 0 {
				q[name] = vals[0]
			}
		}

		s.mu.Lock()
		s.calls[k]++
		s.queries[k] = append(s.queries[k], q)
		g := s.gates[k]
		delete(s.gates, k)
		s.mu.Unlock()

		if g != nil {
			close(g.started)
			select {
			case <-g.release:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}
		return next(c)
	}
}

func (s *Server) faultMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		k := routeKey(c.Request().Method, c.Path())

		s.mu.Lock()
		var f *fault
		if fs := s.faults[k]; len(fs) > 0 {
			f = &fs[0]
			s.faults[k] = fs[1:]
		}
		s.mu.Unlock()

		if f != nil {
			return c.JSON(f.status, echo.Map{"detail": f.detail})
		}
		return next(c)
	}
}

func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		claims := new(Claims)
		_, err := jwt.ParseWithClaims(header[len(prefix):], claims, func(*jwt.Token) (any, error) {
			return signingKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}

		uid, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}

		s.mu.Lock()
		acc := s.accounts[claims.Email]
		s.mu.Unlock()
		if acc == nil || acc.profile.ID != uid {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}

		c.Set("uid", uid)
		c.Set("email", claims.Email)
		return next(c)
	}
}

// detailErrorHandler renders errors the way FastAPI does: {"detail": ...}.
func detailErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	var detail any = "Internal Server Error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		detail = he.Message
	}
	_ = c.JSON(status, echo.Map{"detail": detail})
}

// issueToken signs a token for acc that expires after ttl.
func issueToken(profile models.UserProfile, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "edupilot-apitest",
			Subject:   strconv.FormatInt(profile.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: profile.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

// now returns a strictly increasing fake timestamp.
func (s *Server) nowLocked() time.Time {
	s.clock++
	return baseTime.Add(time.Duration(s.clock) * time.Minute)
}

func (s *Server) idLocked() int64 {
	s.nextID++
	return s.nextID
}

func userID(c echo.Context) int64 {
	uid, _ := c.Get("uid").(int64)
	return uid
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, []echo.Map{{
			"loc":  []string{"path", name},
			"msg":  fmt.Sprintf("value is not a valid integer: %q", c.Param(name)),
			"type": "type_error.integer",
		}})
	}
	return id, nil
}

func validationError(field, msg string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, []echo.Map{{
		"loc":  []string{"body", field},
		"msg":  msg,
		"type": "value_error",
	}})
}
