package dto

import "github.com/spec-kit/cafe-pos/internal/domain"

// LoginRequest payload for the terminal login form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is the session snapshot for the login screen and header.
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	Error         string           `json:"error,omitempty"`
	User          *domain.Identity `json:"user,omitempty"`
}
