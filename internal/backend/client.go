// Package backend is the typed client for the external café REST API. The
// backend owns all persistent data; this package only shuttles requests and
// decodes its loosely shaped JSON into validated view models.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/config"
)

// TokenSource supplies the persisted bearer token for authenticated calls.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// Client talks to the café backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.BackendConfig, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
		tokens:     tokens,
		logger:     logger,
	}
}

// APIError is a non-2xx response from the backend, carrying whatever message
// the backend supplied.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend responded %d", e.Status)
}

// HTTPStatus implements util.UpstreamError.
func (e *APIError) HTTPStatus() int { return e.Status }

// ErrorCode implements util.UpstreamError.
func (e *APIError) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return "UPSTREAM_ERROR"
}

// UserMessage implements util.UpstreamError.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "café backend request failed"
}

// errorEnvelope covers the error body shapes the backend is known to emit.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func joinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// do performs one JSON round-trip. When authed is true the persisted bearer
// token, if any, is attached.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	token := ""
	if authed && c.tokens != nil {
		loaded, err := c.tokens.Load(ctx)
		if err != nil {
			c.logger.Warn("token load failed, sending unauthenticated request", zap.Error(err))
		} else {
			token = loaded
		}
	}
	return c.doBearer(ctx, method, path, token, body, out)
}

// doBearer performs a round-trip with an explicit token, bypassing the token
// source. Verify goes through here because the caller decides which token is
// on trial.
func (c *Client) doBearer(ctx context.Context, method, path, token string, body, out any) error {
	url := joinURL(c.baseURL, path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request to %s: %w", url, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorEnvelope
		if len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Message
			if envelope.Error != nil {
				apiErr.Code = envelope.Error.Code
				if envelope.Error.Message != "" {
					apiErr.Message = envelope.Error.Message
				}
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("invalid JSON response from %s: %w", url, err)
		}
	}
	return nil
}

// Ping checks backend reachability for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/loaimon", nil, nil, false)
}
