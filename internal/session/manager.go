// Package session owns the authenticated-identity lifecycle for the
// terminal: one manager, constructed at startup, holding the current staff
// identity and mediating every credential operation.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/backend"
	"github.com/spec-kit/cafe-pos/internal/domain"
)

// genericLoginError is shown when the backend gives no usable message.
const genericLoginError = "login failed, please try again"

// logoutNotifyTimeout bounds the fire-and-forget backend notification.
const logoutNotifyTimeout = 5 * time.Second

// Backend is the slice of the café API client the manager needs.
type Backend interface {
	Login(ctx context.Context, username, password string) (*backend.LoginResult, error)
	Verify(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}

// State is a snapshot of the session. The identity is present exactly when
// the terminal is authenticated; Loading is true only while Initialize or
// Login has a network call outstanding.
type State struct {
	User    *domain.Identity
	Loading bool
	Err     string
}

// Authenticated reports whether an identity is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Manager is the session owner. Construct one per process and hand it to the
// route guard and handlers; there is no package-level instance.
type Manager struct {
	backend Backend
	tokens  TokenStore
	logger  *zap.Logger

	mu      sync.RWMutex
	user    *domain.Identity
	loading bool
	errMsg  string
}

// NewManager builds a manager in the loading state: callers are expected to
// run Initialize once before trusting the snapshot.
func NewManager(b Backend, tokens TokenStore, logger *zap.Logger) *Manager {
	return &Manager{
		backend: b,
		tokens:  tokens,
		logger:  logger,
		loading: true,
	}
}

// State returns a copy of the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state := State{Loading: m.loading, Err: m.errMsg}
	if m.user != nil {
		user := *m.user
		state.User = &user
	}
	return state
}

// Initialize restores a previous session from the persisted token, if any.
// A missing token ends unauthenticated without touching the network; a token
// the backend rejects is erased. Failures are absorbed into state, never
// returned: a bad stored session is "not logged in", not an error banner.
func (m *Manager) Initialize(ctx context.Context) {
	token, err := m.tokens.Load(ctx)
	if err != nil {
		m.logger.Warn("token load failed, starting unauthenticated", zap.Error(err))
		token = ""
	}

	if token == "" {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		return
	}

	identity, err := m.backend.Verify(ctx, token)
	if err != nil {
		m.logger.Info("stored session rejected, clearing token", zap.Error(err))
		if clearErr := m.tokens.Clear(ctx); clearErr != nil {
			m.logger.Warn("token clear failed", zap.Error(clearErr))
		}
		m.mu.Lock()
		m.user = nil
		m.loading = false
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.user = identity
	m.loading = false
	m.mu.Unlock()
	m.logger.Info("session restored", zap.String("staff_id", identity.ID))
}

// Login authenticates against the backend. On success the returned token is
// persisted and the identity becomes current. On failure the user-facing
// error is recorded in state and the failure is also returned, so the login
// screen can react without polling. Concurrent calls are not serialized;
// the last response to resolve wins.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		err := errors.New("username and password are required")
		m.mu.Lock()
		m.errMsg = err.Error()
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.loading = true
	m.errMsg = ""
	m.mu.Unlock()

	result, err := m.backend.Login(ctx, username, password)
	if err != nil {
		m.mu.Lock()
		m.loading = false
		m.errMsg = loginErrorMessage(err)
		m.mu.Unlock()
		return err
	}

	if saveErr := m.tokens.Save(ctx, result.Token); saveErr != nil {
		// The session is still valid for this run; it just won't survive
		// a restart.
		m.logger.Warn("token persist failed", zap.Error(saveErr))
	}

	user := result.User
	m.mu.Lock()
	m.user = &user
	m.loading = false
	m.errMsg = ""
	m.mu.Unlock()
	m.logger.Info("login succeeded", zap.String("staff_id", user.ID))
	return nil
}

// Logout clears the session and the persisted token, then notifies the
// backend in the background. The notification is best effort: its failure is
// logged and otherwise ignored.
func (m *Manager) Logout(ctx context.Context) {
	token, err := m.tokens.Load(ctx)
	if err != nil {
		m.logger.Warn("token load failed during logout", zap.Error(err))
		token = ""
	}

	m.mu.Lock()
	m.user = nil
	m.errMsg = ""
	m.mu.Unlock()

	if clearErr := m.tokens.Clear(ctx); clearErr != nil {
		m.logger.Warn("token clear failed", zap.Error(clearErr))
	}

	if token == "" {
		return
	}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), logoutNotifyTimeout)
		defer cancel()
		if err := m.backend.Logout(notifyCtx, token); err != nil {
			m.logger.Debug("logout notification failed", zap.Error(err))
		}
	}()
}

func loginErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericLoginError
}
