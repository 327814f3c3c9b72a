// Package auth gates protected screens on session state.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-pos/internal/domain"
	"github.com/spec-kit/cafe-pos/internal/session"
	apperrors "github.com/spec-kit/cafe-pos/pkg/util"
)

const identityKey = "session_identity"

// LoginPath is where unauthenticated callers are pointed.
const LoginPath = "/session/login"

// Guard wraps routes that require an authenticated cashier. While the
// session manager is still verifying the stored token it answers "wait"
// rather than redirecting, so the verification round-trip never bounces a
// valid session to the login screen.
type Guard struct {
	sessions *session.Manager
}

// NewGuard constructs the middleware.
func NewGuard(sessions *session.Manager) *Guard {
	return &Guard{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (g *Guard) Handle(c *fiber.Ctx) error {
	state := g.sessions.State()

	if state.Loading {
		c.Set(fiber.HeaderRetryAfter, "1")
		return apperrors.NewUnavailable("SESSION_INITIALIZING", "session verification in progress")
	}

	if state.User == nil {
		return apperrors.NewDomainError("UNAUTHORIZED", "login required",
			fiber.StatusUnauthorized, map[string]any{"login": LoginPath})
	}

	c.Locals(identityKey, state.User)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated cashier.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
