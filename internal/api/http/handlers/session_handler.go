package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/cafe-pos/internal/api/dto"
	"github.com/spec-kit/cafe-pos/internal/events"
	"github.com/spec-kit/cafe-pos/internal/session"
	apperrors "github.com/spec-kit/cafe-pos/pkg/util"
)

// SessionHandler exposes the terminal login/logout surface.
type SessionHandler struct {
	sessions   *session.Manager
	dispatcher events.Dispatcher
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *session.Manager, dispatcher events.Dispatcher) *SessionHandler {
	return &SessionHandler{sessions: sessions, dispatcher: dispatcher}
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	state := h.sessions.State()
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Authenticated: state.Authenticated(),
		Loading:       state.Loading,
		Error:         state.Err,
		User:          state.User,
	}})
}

// Login handles POST /session/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if err := h.sessions.Login(c.UserContext(), req.Username, req.Password); err != nil {
		message := h.sessions.State().Err
		return apperrors.NewDomainError("LOGIN_FAILED", message, http.StatusUnauthorized, nil)
	}

	state := h.sessions.State()
	if state.User != nil {
		_ = h.dispatcher.Publish(c.UserContext(), events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionOpened,
			StaffID:   state.User.ID,
			Timestamp: time.Now(),
			Payload: events.SessionOpenedPayload{
				Username: state.User.Username,
				Role:     state.User.Role,
			},
		})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"user": state.User}})
}

// Logout handles POST /session/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	staffID := ""
	if state := h.sessions.State(); state.User != nil {
		staffID = state.User.ID
	}

	h.sessions.Logout(c.UserContext())

	if staffID != "" {
		_ = h.dispatcher.Publish(c.UserContext(), events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionClosed,
			StaffID:   staffID,
			Timestamp: time.Now(),
		})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}
