package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/logging"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
	"github.com/GriffinCanCode/outreach-console/internal/storage"
)

// Authenticator performs the credential exchange
type Authenticator interface {
	Login(ctx context.Context, username, password string) (types.TokenResponse, error)
}

// Options configures a Manager
type Options struct {
	Logger  *logging.Logger
	Metrics *monitoring.Metrics

	// LogoutOnUnauthorized clears the session when the backend rejects the
	// current token. Off by default: a 401 is reported to the caller only.
	LogoutOnUnauthorized bool

	Now func() time.Time
}

// Manager handles the authentication session
type Manager struct {
	auth    Authenticator
	store   storage.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
	now     func() time.Time

	logoutOnUnauthorized bool

	// writeMu serializes storage writes with the in-memory commit so the
	// persisted token always matches the last committed one.
	writeMu sync.Mutex

	mu    sync.RWMutex
	state State
	token string
	since time.Time

	restoreOnce sync.Once
	restoreErr  error

	subMu       sync.Mutex
	subscribers map[int]chan Snapshot
	nextSub     int
}

// NewManager creates a manager in the Initializing state. Call Restore to
// resolve it.
func NewManager(auth Authenticator, store storage.Store, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Manager{
		auth:                 auth,
		store:                store,
		logger:               opts.Logger.Named("session"),
		metrics:              opts.Metrics,
		now:                  opts.Now,
		logoutOnUnauthorized: opts.LogoutOnUnauthorized,
		state:                StateInitializing,
		since:                opts.Now(),
		subscribers:          make(map[int]chan Snapshot),
	}
	m.metrics.SetSessionState(StateInitializing.String())
	return m
}

// Restore loads the persisted token. It runs once; later calls return the
// first result without touching storage. A read failure still ends loading,
// in the Unauthenticated state.
func (m *Manager) Restore(ctx context.Context) error {
	m.restoreOnce.Do(func() {
		m.restoreErr = m.restore(ctx)
	})
	return m.restoreErr
}

func (m *Manager) restore(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.State() != StateInitializing {
		// A login or logout already resolved the session.
		return nil
	}

	token, found, err := m.store.Get(ctx, storage.TokenKey)
	if err != nil {
		m.logger.Error("Failed to read persisted token", zap.Error(err))
		m.commit(StateUnauthenticated, "")
		return fmt.Errorf("restore session: %w", err)
	}

	if !found || token == "" {
		m.logger.Info("No persisted session")
		m.commit(StateUnauthenticated, "")
		return nil
	}

	m.logger.Info("Session restored", logging.Fingerprint(token))
	m.commit(StateAuthenticated, token)
	return nil
}

// Login exchanges credentials for a token. On success the token is persisted,
// then held in memory and attached to outbound requests. On any failure the
// session is left exactly as it was.
func (m *Manager) Login(ctx context.Context, username, password string) Outcome {
	start := m.now()
	resp, err := m.auth.Login(ctx, username, password)
	if err == nil && resp.AccessToken == "" {
		err = backend.ErrMalformedToken
	}
	if err != nil {
		out := classify(err)
		m.logger.Warn("Login failed",
			zap.String("username", username),
			zap.String("outcome", out.Kind.String()),
			zap.Int("status", out.Status),
			zap.Error(err),
		)
		m.metrics.RecordLogin(out.Kind.String())
		return out
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Set(ctx, storage.TokenKey, resp.AccessToken); err != nil {
		m.logger.Error("Failed to persist token", zap.String("username", username), zap.Error(err))
		m.metrics.RecordLogin(OutcomeStorage.String())
		return Outcome{Kind: OutcomeStorage, Err: fmt.Errorf("persist token: %w", err)}
	}

	m.commit(StateAuthenticated, resp.AccessToken)
	m.logger.Info("Login succeeded",
		zap.String("username", username),
		logging.Fingerprint(resp.AccessToken),
		zap.Duration("duration", m.now().Sub(start)),
	)
	m.metrics.RecordLogin(OutcomeSuccess.String())
	return Outcome{Kind: OutcomeSuccess}
}

// Logout clears the token from memory and storage. It never fails and does
// not contact the backend; storage errors are logged. The delete runs even if
// ctx is already cancelled.
func (m *Manager) Logout(ctx context.Context) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Delete(context.WithoutCancel(ctx), storage.TokenKey); err != nil {
		m.logger.Error("Failed to delete persisted token", zap.Error(err))
	}

	prev := m.State()
	m.commit(StateUnauthenticated, "")
	if prev == StateAuthenticated {
		m.logger.Info("Logged out")
		m.metrics.RecordLogout()
	}
}

// HandleUnauthorized reacts to a 401 for a request sent with authorization.
// It logs out only when enabled and only if the rejected credential is the
// current one.
func (m *Manager) HandleUnauthorized(ctx context.Context, authorization string) {
	current, ok := m.AuthorizationHeader()
	if !ok || current != authorization {
		return
	}
	if !m.logoutOnUnauthorized {
		m.logger.Debug("Backend rejected current token; keeping session")
		return
	}

	m.logger.Warn("Backend rejected current token; logging out")
	m.Logout(ctx)
}

// Token returns the current token, if any.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// IsLoading reports whether restoration is still pending.
func (m *Manager) IsLoading() bool {
	return m.State() == StateInitializing
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// AuthorizationHeader implements client.Authorizer.
func (m *Manager) AuthorizationHeader() (string, bool) {
	token, ok := m.Token()
	if !ok {
		return "", false
	}
	return "Bearer " + token, true
}

// Subscribe returns a channel of snapshots, starting with the current one.
// A slow receiver only ever sees the latest snapshot. Call cancel to stop.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = ch
	ch <- m.Snapshot()
	m.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subscribers, id)
			close(ch)
			m.subMu.Unlock()
		})
	}
	return ch, cancel
}

// commit applies a transition and notifies observers. Callers hold writeMu.
func (m *Manager) commit(state State, token string) {
	m.mu.Lock()
	changed := m.state != state || m.token != token
	m.state = state
	m.token = token
	if changed {
		m.since = m.now()
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if !changed {
		return
	}
	m.metrics.SetSessionState(state.String())
	m.publish(snap)
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		State:   m.state,
		Token:   m.token,
		Loading: m.state == StateInitializing,
		Since:   m.since,
	}
}

func (m *Manager) publish(snap Snapshot) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for _, ch := range m.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so the receiver sees the latest.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
