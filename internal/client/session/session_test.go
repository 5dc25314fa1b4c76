package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/storage"
	"github.com/edupilot/edupilot/internal/common"
	"github.com/edupilot/edupilot/internal/logging"
)

func newSQLiteStorage(t *testing.T) storage.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.RunMigrations(context.Background(), db))
	return storage.NewSQLiteStore(db)
}

// reload simulates a process restart over the same durable storage.
func reload(t *testing.T, st storage.Store) *Store {
	t.Helper()
	ctx := context.Background()
	s := New(st, logging.NewNop())
	require.NoError(t, s.Restore(ctx))
	_, err := s.Rehydrate(ctx)
	require.NoError(t, err)
	return s
}

func randomTokens(n int) []string {
	r := rand.New(rand.NewSource(42))
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.~ éж"
	runes := []rune(alphabet)

	out := []string{"abc", "x", strings.Repeat("t", 4096), "eyJhbGciOiJIUzI1NiJ9.e30.sig"}
	for i := 0; i < n; i++ {
		var b strings.Builder
		for j := 0; j < 1+r.Intn(64); j++ {
			b.WriteRune(runes[r.Intn(len(runes))])
		}
		out = append(out, b.String())
	}
	return out
}

func TestNew_StartsAnonymous(t *testing.T) {
	s := New(storage.NewMemoryStore(), logging.NewNop())

	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
	assert.Empty(t, s.Token())
}

func TestSetAuth_ThenReload_IsAuthenticatedWithSameToken(t *testing.T) {
	for _, tok := range randomTokens(50) {
		st := storage.NewMemoryStore()
		s := New(st, logging.NewNop())
		require.NoError(t, s.SetAuth(context.Background(), &models.UserProfile{ID: 1, FullName: "Ada"}, tok))

		again := reload(t, st)
		assert.True(t, again.IsAuthenticated(), "token %q", tok)
		assert.Equal(t, tok, again.Token())
	}
}

func TestSetAuth_ThenReload_SQLite(t *testing.T) {
	st := newSQLiteStorage(t)
	ctx := context.Background()

	s := New(st, logging.NewNop())
	require.NoError(t, s.SetAuth(ctx, &models.UserProfile{ID: 7, Email: "ada@example.com", FullName: "Ada"}, "abc"))

	again := reload(t, st)
	snap := again.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "abc", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ada", snap.User.FullName)

	tok, ok, err := st.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)
}

func TestLogout_AlwaysAnonymous(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(s *Store){
		"from anonymous":     func(s *Store) {},
		"from authenticated": func(s *Store) { require.NoError(t, s.SetAuth(ctx, &models.UserProfile{ID: 1}, "t")) },
		"from placeholder": func(s *Store) {
			require.NoError(t, s.SetAuth(ctx, &models.UserProfile{}, "t"))
		},
		"twice": func(s *Store) {
			require.NoError(t, s.SetAuth(ctx, &models.UserProfile{ID: 1}, "t"))
			require.NoError(t, s.Logout(ctx))
		},
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			st := storage.NewMemoryStore()
			s := New(st, logging.NewNop())
			prepare(s)

			require.NoError(t, s.Logout(ctx))

			snap := s.Snapshot()
			assert.False(t, snap.IsAuthenticated)
			assert.Empty(t, snap.Token)
			assert.Nil(t, snap.User)

			_, ok, err := st.Get(ctx, common.TokenStorageKey)
			require.NoError(t, err)
			assert.False(t, ok, "token must be gone from storage")

			again := reload(t, st)
			assert.False(t, again.IsAuthenticated())
		})
	}
}

func TestRehydrate_InstallsPlaceholderProfile(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	require.NoError(t, st.Set(ctx, common.TokenStorageKey, "stored"))

	s := New(st, logging.NewNop())
	require.NoError(t, s.Restore(ctx))

	done, err := s.Rehydrate(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "stored", snap.Token)
	require.NotNil(t, snap.User, "placeholder is an empty profile, not nil")
	assert.True(t, snap.User.IsEmpty())
	assert.True(t, snap.Placeholder())
}

func TestRehydrate_NoopWhenAuthenticatedOrNoToken(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		s := New(storage.NewMemoryStore(), logging.NewNop())
		done, err := s.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, done)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("already authenticated", func(t *testing.T) {
		st := storage.NewMemoryStore()
		s := New(st, logging.NewNop())
		require.NoError(t, s.SetAuth(ctx, &models.UserProfile{ID: 3, FullName: "Grace"}, "live"))
		require.NoError(t, st.Set(ctx, common.TokenStorageKey, "other"))

		done, err := s.Rehydrate(ctx)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, "live", s.Token())
		assert.Equal(t, "Grace", s.Snapshot().User.FullName)
	})
}

func TestSetUser_ReplacesProfileOnly(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryStore(), logging.NewNop())
	goal := "backend engineer"
	require.NoError(t, s.SetAuth(ctx, &models.UserProfile{ID: 1, FullName: "Ada", CareerGoal: &goal}, "tok"))

	require.NoError(t, s.SetUser(ctx, &models.UserProfile{ID: 1, Email: "ada@example.com"}))

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, "ada@example.com", snap.User.Email)
	assert.Empty(t, snap.User.FullName, "profiles are replaced, never merged")
	assert.Nil(t, snap.User.CareerGoal)
}

func TestSetAuth_RejectsEmptyToken(t *testing.T) {
	s := New(storage.NewMemoryStore(), logging.NewNop())
	err := s.SetAuth(context.Background(), &models.UserProfile{}, "")
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.False(t, s.IsAuthenticated())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New(storage.NewMemoryStore(), logging.NewNop())
	u := &models.UserProfile{FullName: "Ada"}
	require.NoError(t, s.SetAuth(context.Background(), u, "t"))

	u.FullName = "changed by caller"
	snap := s.Snapshot()
	snap.User.FullName = "changed by reader"

	assert.Equal(t, "Ada", s.Snapshot().User.FullName)
}

func TestPersistenceFailure_KeepsMemoryAndReturnsError(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	s := New(st, logging.NewNop())

	quota := errors.New("quota exceeded")
	st.FailWrites = quota

	err := s.SetAuth(ctx, &models.UserProfile{ID: 1}, "tok")
	require.ErrorIs(t, err, quota)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())

	err = s.Logout(ctx)
	require.ErrorIs(t, err, quota)
	assert.False(t, s.IsAuthenticated())
}

func TestRestore_IgnoresCorruptOrInconsistentSnapshots(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"not json":                    `{{{`,
		"authenticated no token":      `{"state":{"user":{"id":1},"token":null,"is_authenticated":true},"version":0}`,
		"authenticated empty token":   `{"state":{"user":null,"token":"","is_authenticated":true},"version":0}`,
		"token but not authenticated": `{"state":{"user":null,"token":"x","is_authenticated":false},"version":0}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			st := storage.NewMemoryStore()
			require.NoError(t, st.Set(ctx, common.SessionStorageKey, raw))

			s := New(st, logging.NewNop())
			require.NoError(t, s.Restore(ctx))

			snap := s.Snapshot()
			assert.False(t, snap.IsAuthenticated)
			assert.Empty(t, snap.Token)
		})
	}
}

func TestSnapshotEnvelopeFormat(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	s := New(st, logging.NewNop())

	require.NoError(t, s.SetAuth(ctx, &models.UserProfile{}, "abc"))

	raw, ok, err := st.Get(ctx, common.SessionStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"state":{"user":{},"token":"abc","is_authenticated":true},"version":0}`, raw)

	require.NoError(t, s.Logout(ctx))
	raw, _, _ = st.Get(ctx, common.SessionStorageKey)
	assert.JSONEq(t, `{"state":{"user":null,"token":null,"is_authenticated":false},"version":0}`, raw)
}

func TestRegisterScenario_ProfileAvailableAfterSetAuth(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryStore(), logging.NewNop())

	resp := models.AuthResponse{AccessToken: "abc", User: models.UserProfile{ID: 1, FullName: "Ada", Email: "ada@example.com"}}
	assert.Nil(t, s.Snapshot().User)

	require.NoError(t, s.SetAuth(ctx, &resp.User, resp.AccessToken))

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "Ada", snap.User.FullName)
	assert.False(t, snap.Placeholder())
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryStore(), logging.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.SetAuth(ctx, &models.UserProfile{ID: int64(i)}, fmt.Sprintf("tok-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			if snap.IsAuthenticated {
				assert.NotEmpty(t, snap.Token)
			}
		}()
	}
	wg.Wait()

	assert.True(t, s.IsAuthenticated())
	assert.True(t, strings.HasPrefix(s.Token(), "tok-"))
}
