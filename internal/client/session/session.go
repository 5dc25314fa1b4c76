// Package session is the single source of truth for who is logged in.
//
// A Store keeps the current Session in memory and mirrors it into durable
// storage: the raw bearer token under common.TokenStorageKey and a JSON
// snapshot of the whole Session under common.SessionStorageKey. The token
// is the only credential; IsAuthenticated is a cache of "token is set".
//
// States are Anonymous (no token) and Authenticated (token set). SetAuth
// moves to Authenticated, Logout back to Anonymous, SetUser refreshes the
// profile without changing state. Rehydrate trusts a stored token and
// installs an empty placeholder profile until a real profile fetch lands.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/storage"
	"github.com/edupilot/edupilot/internal/common"
	"github.com/edupilot/edupilot/internal/logging"
)

// ErrEmptyToken is returned by SetAuth when no token is given.
var ErrEmptyToken = errors.New("session: empty token")

// snapshotVersion is written with every persisted snapshot.
const snapshotVersion = 0

// Session is a point-in-time copy of the authentication state.
type Session struct {
	User            *models.UserProfile
	Token           string
	IsAuthenticated bool
}

// Placeholder reports whether the session is authenticated but still holds
// the empty profile installed by rehydration.
func (s Session) Placeholder() bool {
	return s.IsAuthenticated && s.User.IsEmpty()
}

// Store holds the Session and persists every change. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   Session
	storage storage.Store
	logger  logging.Logger
}

// New returns an Anonymous store backed by st. Call Restore to load the
// persisted snapshot.
func New(st storage.Store, logger logging.Logger) *Store {
	return &Store{storage: st, logger: logger}
}

// Restore replaces the in-memory state with the persisted snapshot, if any.
// A snapshot claiming authentication without a token is treated as
// Anonymous. An unreadable snapshot is logged and ignored.
func (s *Store) Restore(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, common.SessionStorageKey)
	if err != nil {
		return fmt.Errorf("failed to read session snapshot: %w", err)
	}
	if !ok {
		return nil
	}

	var p persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn(ctx, "discarding unreadable session snapshot", "error", err)
		return nil
	}

	restored := p.State.session()

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()

	s.logger.Debug(ctx, "session snapshot restored", "authenticated", restored.IsAuthenticated)
	return nil
}

// Rehydrate applies the stored token when memory is not authenticated:
// it calls SetAuth with an empty profile and the stored token. It reports
// whether that happened.
func (s *Store) Rehydrate(ctx context.Context) (bool, error) {
	if s.IsAuthenticated() {
		return false, nil
	}

	token, ok, err := s.storage.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return false, fmt.Errorf("failed to read stored token: %w", err)
	}
	if !ok || token == "" {
		return false, nil
	}

	s.logger.Info(ctx, "session rehydrated from stored token")
	return true, s.SetAuth(ctx, &models.UserProfile{}, token)
}

// SetAuth stores token durably and switches to Authenticated with user.
// The token format is not checked. On a persistence failure the in-memory
// state is still updated and the error is returned.
func (s *Store) SetAuth(ctx context.Context, user *models.UserProfile, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	s.state = Session{User: cloneUser(user), Token: token, IsAuthenticated: true}
	snap := s.state
	s.mu.Unlock()

	return s.persist(ctx, snap, func(ctx context.Context, w storage.Writer) error {
		return w.Set(ctx, common.TokenStorageKey, token)
	})
}

// SetUser replaces the profile wholesale. Token and state are untouched.
func (s *Store) SetUser(ctx context.Context, user *models.UserProfile) error {
	s.mu.Lock()
	s.state.User = cloneUser(user)
	snap := s.state
	s.mu.Unlock()

	return s.persist(ctx, snap, nil)
}

// Logout clears the stored token and resets memory to Anonymous.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = Session{}
	snap := s.state
	s.mu.Unlock()

	s.logger.Info(ctx, "session cleared")

	return s.persist(ctx, snap, func(ctx context.Context, w storage.Writer) error {
		return w.Remove(ctx, common.TokenStorageKey)
	})
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	out.User = cloneUser(s.state.User)
	return out
}

// Token returns the current bearer token, or "" when Anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// persist writes the snapshot, plus whatever extra does, in one transaction.
func (s *Store) persist(ctx context.Context, snap Session, extra func(ctx context.Context, w storage.Writer) error) error {
	data, err := json.Marshal(persisted{State: fromSession(snap), Version: snapshotVersion})
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	err = s.storage.Update(ctx, func(ctx context.Context, w storage.Writer) error {
		if extra != nil {
			if err := extra(ctx, w); err != nil {
				return err
			}
		}
		return w.Set(ctx, common.SessionStorageKey, string(data))
	})
	if err != nil {
		s.logger.Error(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func cloneUser(u *models.UserProfile) *models.UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
