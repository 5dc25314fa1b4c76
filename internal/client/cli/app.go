package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/config"
	"github.com/edupilot/edupilot/internal/client/services"
	"github.com/edupilot/edupilot/internal/client/session"
	"github.com/edupilot/edupilot/internal/client/storage"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Messages owned by the CLI itself.
const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgLogin          = "Login failed. Please check your credentials."
	MsgRegister       = "Registration failed. Please try again."
	MsgLoadProfile    = "Failed to load user data"
	MsgUpdateProfile  = "Failed to update profile"
	MsgExport         = "Failed to export data"
	MsgDashboard      = "Failed to load dashboard data"
)

const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Store

	authService        services.AuthService
	subjectService     services.SubjectService
	projectService     services.ProjectService
	skillService       services.SkillService
	cvService          services.CVService
	opportunityService services.OpportunityService
	chatService        services.ChatService

	reader *bufio.Reader
	out    io.Writer
	notice *notice
	now    func() time.Time

	mu   sync.Mutex
	mode Mode

	// expired is set by the 401 hook and consumed by the next failure report.
	expired atomic.Bool
}

// NewApp wires the session, the REST client and the services on top of
// store. The client's 401 hook logs the session out and drops every
// cached collection.
func NewApp(c *config.Config, store storage.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
		notice: newNotice(c.NoticeTTL),
		now:    time.Now,
	}

	a.session = session.New(store, logger.With("component", "session"))
	api := client.NewHTTPClient(c.ServerBaseURL, a.session, logger.With("component", "http"),
		client.WithTimeout(c.RequestTimeout),
		client.WithUnauthorizedHandler(a.handleUnauthorized))

	a.authService = services.NewAuthService(api, a.session, logger)
	a.subjectService = services.NewSubjectService(api, logger)
	a.projectService = services.NewProjectService(api, logger)
	a.skillService = services.NewSkillService(api, logger)
	a.cvService = services.NewCVService(api)
	a.opportunityService = services.NewOpportunityService(api)
	a.chatService = services.NewChatService(api, logger.With("component", "chat"))
	return a
}

// Run restores the previous session, starts the connectivity watcher and
// blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to EduPilot CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	s, err := a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	if err != nil {
		a.logger.Warn(ctx, "connectivity watcher not started", "error", err)
	} else {
		defer s.Stop()
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) restoreSession(ctx context.Context) {
	if _, err := a.authService.Rehydrate(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if !a.session.IsAuthenticated() {
		return
	}

	user, err := a.authService.RefreshProfile(ctx)
	if user == nil {
		_ = a.fail(ctx, "refresh profile", err, MsgLoadProfile)
		return
	}
	if err != nil {
		a.warnPersist(ctx, err)
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.DisplayName())
}

// StartOnlineStatusWatcher pings the server every interval and keeps the
// prompt's online/offline mode current. The caller stops the scheduler.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if _, err := s.Every(interval).Do(a.checkOnline, ctx); err != nil {
		return nil, fmt.Errorf("schedule online check: %w", err)
	}
	s.StartAsync()
	return s, nil
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt decoration: user, mode and any live notice.
func (a *App) status() string {
	s := ""
	if snap := a.session.Snapshot(); snap.IsAuthenticated {
		if name := snap.User.DisplayName(); name != "" {
			s = name + " "
		}
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	if n := a.notice.Current(); n != "" {
		s += fmt.Sprintf(" [%s]", n)
	}
	return s
}

// handleUnauthorized runs when an authenticated request gets 401. A token
// other than the live one belongs to a session that is already gone.
func (a *App) handleUnauthorized(ctx context.Context, token string) {
	if a.session.Token() != token {
		a.logger.Debug(ctx, "ignoring 401 for a stale session token")
		return
	}
	a.logger.Warn(ctx, "server rejected the session token, logging out")
	if err := a.session.Logout(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear stored session", "error", err)
	}
	a.clearData()
	a.expired.Store(true)
}

func (a *App) clearData() {
	a.subjectService.Clear()
	a.projectService.Clear()
	a.skillService.Clear()
	a.opportunityService.Clear()
	a.chatService.Clear()
}

// fail reports err to the user, keeps it as the prompt notice and logs it.
// It returns err unchanged.
func (a *App) fail(ctx context.Context, op string, err error, fallback string) error {
	msg := services.Message(err, fallback)
	if a.expired.CompareAndSwap(true, false) {
		msg = MsgSessionExpired
	}

	a.notice.Set(msg)
	fmt.Fprintln(a.out, "Error: "+msg)

	var verr *validation.Error
	if errors.As(err, &verr) {
		a.logger.Debug(ctx, op+" rejected locally", "error", err)
	} else {
		a.logger.Error(ctx, op+" failed", "error", err)
	}
	return err
}

// warnPersist reports a session that is live in memory but was not saved.
func (a *App) warnPersist(ctx context.Context, err error) {
	a.logger.Error(ctx, "session not persisted", "error", err)
	fmt.Fprintln(a.out, "Warning: the session could not be saved and will not survive a restart.")
}
