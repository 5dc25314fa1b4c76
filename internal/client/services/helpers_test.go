package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edupilot/edupilot/internal/client/apitest"
	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/session"
	"github.com/edupilot/edupilot/internal/client/storage"
	"github.com/edupilot/edupilot/internal/logging"
)

type testEnv struct {
	srv     *apitest.Server
	store   *storage.MemoryStore
	session *session.Store
	client  *client.HTTPClient
}

// newEnv wires a session-backed client to a fresh fake backend. A 401 on
// an authenticated request logs the session out.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		srv:   apitest.NewServer(t),
		store: storage.NewMemoryStore(),
	}
	env.session = session.New(env.store, logging.NewNop())
	env.client = client.NewHTTPClient(env.srv.URL, env.session, logging.NewNop(),
		client.WithUnauthorizedHandler(func(ctx context.Context, _ string) { _ = env.session.Logout(ctx) }))
	return env
}

// signIn seeds a user and installs a valid session for it.
func (e *testEnv) signIn(t *testing.T) models.UserProfile {
	t.Helper()
	user := e.srv.SeedUser("ada@example.com", "secret1", "Ada Lovelace")
	require.NoError(t, e.session.SetAuth(context.Background(), &user, e.srv.Token(user)))
	return user
}

func concepts(names ...string) []models.Concept {
	out := make([]models.Concept, 0, len(names))
	for _, n := range names {
		out = append(out, models.Concept{Name: n})
	}
	return out
}

func learnedConcepts(n, total int) []models.Concept {
	out := make([]models.Concept, total)
	for i := range out {
		out[i] = models.Concept{Name: "c", Learned: i < n}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
