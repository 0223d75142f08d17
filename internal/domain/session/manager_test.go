package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
	"github.com/GriffinCanCode/outreach-console/internal/storage"
)

// stubBackend answers the login exchange and echoes the Authorization header
// seen on /api/dashboard/stats.
type stubBackend struct {
	*httptest.Server

	mu          sync.Mutex
	loginStatus int
	loginBody   string
	statsStatus int
	lastAuth    string
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	s := &stubBackend{
		loginStatus: http.StatusOK,
		loginBody:   `{"access_token":"abc","token_type":"bearer"}`,
		statsStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, body := s.loginStatus, s.loginBody
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("GET /api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastAuth = r.Header.Get("Authorization")
		status := s.statsStatus
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"total_prospects":1}`))
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *stubBackend) respondLogin(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginStatus, s.loginBody = status, body
}

func (s *stubBackend) respondStats(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsStatus = status
}

func (s *stubBackend) seenAuth() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

type fixture struct {
	mgr     *Manager
	api     *backend.API
	store   storage.Store
	backend *stubBackend
	metrics *monitoring.Metrics
}

func newFixture(t *testing.T, store storage.Store, opts Options) *fixture {
	t.Helper()
	stub := newStubBackend(t)
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	c := client.New(client.Options{BaseURL: stub.URL, Timeout: 2 * time.Second})
	api := backend.New(c)

	opts.Metrics = metrics
	mgr := NewManager(api, store, opts)
	c.SetAuthorizer(mgr)
	c.OnUnauthorized(mgr.HandleUnauthorized)

	return &fixture{mgr: mgr, api: api, store: store, backend: stub, metrics: metrics}
}

func storedToken(t *testing.T, s storage.Store) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), storage.TokenKey)
	require.NoError(t, err)
	return v, ok
}

// faultyStore fails the operations it is told to.
type faultyStore struct {
	storage.Store
	getErr, setErr, deleteErr error
}

func (f *faultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, key)
}

var errDisk = errors.New("disk unavailable")

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("persisted token authenticates and is attached", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, store, Options{})

		assert.True(t, f.mgr.IsLoading())
		assert.Equal(t, StateInitializing, f.mgr.State())

		require.NoError(t, f.mgr.Restore(ctx))
		assert.False(t, f.mgr.IsLoading())
		assert.Equal(t, StateAuthenticated, f.mgr.State())
		token, ok := f.mgr.Token()
		assert.True(t, ok)
		assert.Equal(t, "abc", token)

		_, err := f.api.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", f.backend.seenAuth())
	})

	t.Run("empty storage is unauthenticated", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore(), Options{})

		require.NoError(t, f.mgr.Restore(ctx))
		assert.False(t, f.mgr.IsLoading())
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, ok := f.mgr.Token()
		assert.False(t, ok)

		_, err := f.api.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", f.backend.seenAuth())
	})

	t.Run("empty persisted value is unauthenticated", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, ""))
		f := newFixture(t, store, Options{})

		require.NoError(t, f.mgr.Restore(ctx))
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
	})

	t.Run("read failure ends loading", func(t *testing.T) {
		f := newFixture(t, &faultyStore{Store: storage.NewMemoryStore(), getErr: errDisk}, Options{})

		err := f.mgr.Restore(ctx)
		assert.ErrorIs(t, err, errDisk)
		assert.False(t, f.mgr.IsLoading())
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
	})

	t.Run("runs once", func(t *testing.T) {
		store := storage.NewMemoryStore()
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))

		require.NoError(t, store.Set(ctx, storage.TokenKey, "late"))
		require.NoError(t, f.mgr.Restore(ctx))
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
	})

	t.Run("does not override an earlier login", func(t *testing.T) {
		store := storage.NewMemoryStore()
		f := newFixture(t, store, Options{})

		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())
		require.NoError(t, f.mgr.Restore(ctx))
		token, _ := f.mgr.Token()
		assert.Equal(t, "abc", token)
		assert.Equal(t, StateAuthenticated, f.mgr.State())
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success authenticates and persists", func(t *testing.T) {
		store := storage.NewMemoryStore()
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))

		out := f.mgr.Login(ctx, "user", "pass")
		require.True(t, out.OK())
		assert.Equal(t, OutcomeSuccess, out.Kind)

		assert.Equal(t, StateAuthenticated, f.mgr.State())
		token, ok := f.mgr.Token()
		assert.True(t, ok)
		assert.Equal(t, "abc", token)

		persisted, found := storedToken(t, store)
		assert.True(t, found)
		assert.Equal(t, "abc", persisted)

		_, err := f.api.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", f.backend.seenAuth())
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("success")))
	})

	failures := []struct {
		name   string
		setup  func(f *fixture)
		kind   OutcomeKind
		status int
	}{
		{
			name:   "wrong credentials",
			setup:  func(f *fixture) { f.backend.respondLogin(http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`) },
			kind:   OutcomeRejected,
			status: http.StatusUnauthorized,
		},
		{
			name:   "server error",
			setup:  func(f *fixture) { f.backend.respondLogin(http.StatusInternalServerError, `{"detail":"boom"}`) },
			kind:   OutcomeRejected,
			status: http.StatusInternalServerError,
		},
		{
			name:  "missing token",
			setup: func(f *fixture) { f.backend.respondLogin(http.StatusOK, `{"token_type":"bearer"}`) },
			kind:  OutcomeMalformed,
		},
		{
			name:  "unreachable backend",
			setup: func(f *fixture) { f.backend.Close() },
			kind:  OutcomeTransport,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name+" leaves state unchanged", func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(ctx, storage.TokenKey, "old"))
			f := newFixture(t, store, Options{})
			require.NoError(t, f.mgr.Restore(ctx))
			before := f.mgr.Snapshot()

			tt.setup(f)
			out := f.mgr.Login(ctx, "user", "wrong")

			assert.False(t, out.OK())
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.status, out.Status)
			assert.Error(t, out.Err)
			assert.NotEmpty(t, out.Message())

			assert.Equal(t, before, f.mgr.Snapshot())
			persisted, _ := storedToken(t, store)
			assert.Equal(t, "old", persisted)
		})
	}

	t.Run("failure from unauthenticated stays unauthenticated", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore(), Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		f.backend.respondLogin(http.StatusUnauthorized, `{"detail":"nope"}`)

		out := f.mgr.Login(ctx, "user", "wrong")
		assert.Equal(t, OutcomeRejected, out.Kind)
		assert.Equal(t, "Invalid username or password", out.Message())
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, found := storedToken(t, f.store)
		assert.False(t, found)
	})

	t.Run("persist failure leaves memory untouched", func(t *testing.T) {
		store := &faultyStore{Store: storage.NewMemoryStore(), setErr: errDisk}
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))

		out := f.mgr.Login(ctx, "user", "pass")
		assert.Equal(t, OutcomeStorage, out.Kind)
		assert.ErrorIs(t, out.Err, errDisk)
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, ok := f.mgr.Token()
		assert.False(t, ok)
	})

	t.Run("login during initialization resolves loading", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore(), Options{})
		require.True(t, f.mgr.IsLoading())

		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())
		assert.False(t, f.mgr.IsLoading())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears memory storage and header", func(t *testing.T) {
		store := storage.NewMemoryStore()
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())

		f.mgr.Logout(ctx)

		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, ok := f.mgr.Token()
		assert.False(t, ok)
		_, found := storedToken(t, store)
		assert.False(t, found)

		_, err := f.api.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", f.backend.seenAuth())
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logouts))
	})

	t.Run("works with the backend down", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		f.backend.Close()

		f.mgr.Logout(ctx)
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, found := storedToken(t, store)
		assert.False(t, found)
	})

	t.Run("storage failure still logs out", func(t *testing.T) {
		inner := storage.NewMemoryStore()
		require.NoError(t, inner.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, &faultyStore{Store: inner, deleteErr: errDisk}, Options{})
		require.NoError(t, f.mgr.Restore(ctx))

		f.mgr.Logout(ctx)
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, ok := f.mgr.Token()
		assert.False(t, ok)
	})

	t.Run("cancelled context still clears the token file", func(t *testing.T) {
		store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "token.json"))
		require.NoError(t, err)
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		f.mgr.Logout(cancelled)

		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, found := storedToken(t, store)
		assert.False(t, found)

		next := NewManager(f.api, store, Options{})
		require.NoError(t, next.Restore(ctx))
		assert.Equal(t, StateUnauthenticated, next.State())
	})

	t.Run("corrupt token file does not wedge the session", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		store, err := storage.NewFileStore(path)
		require.NoError(t, err)
		f := newFixture(t, store, Options{})

		assert.ErrorIs(t, f.mgr.Restore(ctx), storage.ErrCorrupt)
		assert.Equal(t, StateUnauthenticated, f.mgr.State())

		out := f.mgr.Login(ctx, "user", "pass")
		require.True(t, out.OK(), out.Message())
		token, found := storedToken(t, store)
		assert.True(t, found)
		assert.Equal(t, "abc", token)

		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		f.mgr.Logout(ctx)
		_, found = storedToken(t, store)
		assert.False(t, found)
	})

	t.Run("double logout is safe", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore(), Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())

		assert.NotPanics(t, func() {
			f.mgr.Logout(ctx)
			f.mgr.Logout(ctx)
		})
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logouts))
	})
}

func TestUnauthorizedResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("kept by default", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, store, Options{})
		require.NoError(t, f.mgr.Restore(ctx))
		f.backend.respondStats(http.StatusUnauthorized)

		_, err := f.api.DashboardStats(ctx)
		assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
		assert.Equal(t, StateAuthenticated, f.mgr.State())
	})

	t.Run("logs out when enabled", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, store, Options{LogoutOnUnauthorized: true})
		require.NoError(t, f.mgr.Restore(ctx))
		f.backend.respondStats(http.StatusUnauthorized)

		_, err := f.api.DashboardStats(ctx)
		assert.Error(t, err)
		assert.Equal(t, StateUnauthenticated, f.mgr.State())
		_, found := storedToken(t, store)
		assert.False(t, found)
	})

	t.Run("stale credential ignored", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.TokenKey, "abc"))
		f := newFixture(t, store, Options{LogoutOnUnauthorized: true})
		require.NoError(t, f.mgr.Restore(ctx))

		f.mgr.HandleUnauthorized(ctx, "Bearer previous")
		assert.Equal(t, StateAuthenticated, f.mgr.State())
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryStore(), Options{})

	events, cancel := f.mgr.Subscribe()
	first := <-events
	assert.Equal(t, StateInitializing, first.State)
	assert.True(t, first.Loading)

	require.NoError(t, f.mgr.Restore(ctx))
	assert.Equal(t, StateUnauthenticated, (<-events).State)

	require.True(t, f.mgr.Login(ctx, "user", "pass").OK())
	snap := <-events
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.Authenticated())
	assert.False(t, snap.Loading)

	t.Run("slow receiver sees the latest", func(t *testing.T) {
		f.mgr.Logout(ctx)
		require.True(t, f.mgr.Login(ctx, "user", "pass").OK())
		assert.Equal(t, StateAuthenticated, (<-events).State)
		select {
		case extra := <-events:
			t.Fatalf("unexpected snapshot %v", extra.State)
		default:
		}
	})

	cancel()
	_, open := <-events
	assert.False(t, open)
	assert.NotPanics(t, cancel)
}

// Concurrent logins resolve last-write-wins, and storage always agrees with
// memory afterwards.
func TestConcurrentLogins(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	auth := authFunc(func(ctx context.Context, username, _ string) (types.TokenResponse, error) {
		return types.TokenResponse{AccessToken: "token-" + username}, nil
	})
	mgr := NewManager(auth, store, Options{})
	require.NoError(t, mgr.Restore(ctx))

	var wg sync.WaitGroup
	for _, user := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			assert.True(t, mgr.Login(ctx, user, "pass").OK())
		}(user)
	}
	wg.Wait()

	token, ok := mgr.Token()
	require.True(t, ok)
	persisted, _ := storedToken(t, store)
	assert.Equal(t, token, persisted)
}

func TestAuthenticatorWithoutToken(t *testing.T) {
	auth := authFunc(func(context.Context, string, string) (types.TokenResponse, error) {
		return types.TokenResponse{}, nil
	})
	mgr := NewManager(auth, storage.NewMemoryStore(), Options{})

	out := mgr.Login(context.Background(), "user", "pass")
	assert.Equal(t, OutcomeMalformed, out.Kind)
	assert.True(t, mgr.IsLoading())
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unknown", State(9).String())

	text, err := StateAuthenticated.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "authenticated", string(text))

	assert.Equal(t, "transport", OutcomeTransport.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}

type authFunc func(ctx context.Context, username, password string) (types.TokenResponse, error)

func (f authFunc) Login(ctx context.Context, username, password string) (types.TokenResponse, error) {
	return f(ctx, username, password)
}
