package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/backend"
	"github.com/spec-kit/cafe-pos/internal/backend/backendtest"
	"github.com/spec-kit/cafe-pos/internal/config"
	"github.com/spec-kit/cafe-pos/internal/domain"
	"github.com/spec-kit/cafe-pos/internal/session"
)

func newFixture(t *testing.T) (*backendtest.Server, *session.Manager, *session.MemoryTokenStore) {
	t.Helper()

	fake := backendtest.New()
	t.Cleanup(fake.Close)
	fake.AddAccount("lan", "s3cret", domain.Identity{
		ID:          "NV001",
		DisplayName: "Trần Thị Lan",
		Role:        "Thu ngân",
		Username:    "lan",
	})

	tokens := session.NewMemoryTokenStore()
	client := backend.NewClient(config.BackendConfig{BaseURL: fake.URL}, tokens, zap.NewNop())
	manager := session.NewManager(client, tokens, zap.NewNop())
	return fake, manager, tokens
}

func TestManagerStartsLoading(t *testing.T) {
	_, manager, _ := newFixture(t)
	state := manager.State()
	assert.True(t, state.Loading)
	assert.False(t, state.Authenticated())
}

func TestInitializeWithoutTokenSkipsNetwork(t *testing.T) {
	fake, manager, _ := newFixture(t)

	manager.Initialize(context.Background())

	state := manager.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Err)
	assert.Zero(t, fake.VerifyCalls(), "no persisted token means no verify call")
}

func TestInitializeRestoresValidSession(t *testing.T) {
	fake, manager, tokens := newFixture(t)
	require.NoError(t, tokens.Save(context.Background(), fake.MintToken("lan")))

	manager.Initialize(context.Background())

	state := manager.State()
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "NV001", state.User.ID)
	assert.Equal(t, "Trần Thị Lan", state.User.DisplayName)
	assert.Equal(t, 1, fake.VerifyCalls())
}

func TestInitializeRejectedTokenIsErasedSilently(t *testing.T) {
	fake, manager, tokens := newFixture(t)
	require.NoError(t, tokens.Save(context.Background(), "not-a-real-token"))

	manager.Initialize(context.Background())

	state := manager.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Err, "verify failure must not surface an error banner")
	assert.Equal(t, 1, fake.VerifyCalls())

	stored, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected token must be erased")
}

func TestLoginSuccess(t *testing.T) {
	_, manager, tokens := newFixture(t)
	manager.Initialize(context.Background())

	require.NoError(t, manager.Login(context.Background(), "lan", "s3cret"))

	state := manager.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	require.NotNil(t, state.User)
	assert.Equal(t, "NV001", state.User.ID)

	stored, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, stored, "token must be persisted on successful login")
}

func TestLoginRejectedCredentials(t *testing.T) {
	_, manager, tokens := newFixture(t)
	manager.Initialize(context.Background())

	err := manager.Login(context.Background(), "lan", "wrong")
	require.Error(t, err, "failure must be re-signaled to the caller")

	state := manager.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Equal(t, "Tài khoản hoặc mật khẩu không đúng", state.Err)

	stored, loadErr := tokens.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, stored, "no token may be persisted on failed login")
}

func TestLoginEmptyCredentials(t *testing.T) {
	fake, manager, _ := newFixture(t)
	manager.Initialize(context.Background())

	err := manager.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.NotEmpty(t, manager.State().Err)
	assert.Zero(t, fake.LoginCalls())
}

func TestLoginClearsPreviousError(t *testing.T) {
	_, manager, _ := newFixture(t)
	manager.Initialize(context.Background())

	require.Error(t, manager.Login(context.Background(), "lan", "wrong"))
	require.NotEmpty(t, manager.State().Err)

	require.NoError(t, manager.Login(context.Background(), "lan", "s3cret"))
	assert.Empty(t, manager.State().Err)
}

func TestLogoutClearsEverything(t *testing.T) {
	_, manager, tokens := newFixture(t)
	manager.Initialize(context.Background())
	require.NoError(t, manager.Login(context.Background(), "lan", "s3cret"))

	manager.Logout(context.Background())

	state := manager.State()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Err)

	stored, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLogoutWithoutSessionIsSafe(t *testing.T) {
	_, manager, _ := newFixture(t)
	manager.Initialize(context.Background())

	manager.Logout(context.Background())

	state := manager.State()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Err)
}
