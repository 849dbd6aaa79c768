// Package auth talks to the remote account service that handles sign-in and
// password recovery. The ledger never depends on it.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/koso-app/koso/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrNetwork wraps every failure to reach the auth service.
var ErrNetwork = errors.New("network error")

// APIError is returned when the auth service answers with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth service returned status %d", e.Status)
	}
	return e.Message
}

// SignupRequest is the body of a registration request.
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Client handles the signup, login and forgot-password endpoints
type Client struct {
	baseURL    string
	loginPath  string
	forgotPath string
	signupPath string
	retries    int
	backoff    time.Duration
	client     *http.Client
	log        *logrus.Logger
}

type envelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewClient initializes a client from the auth config section
func NewClient(cfg config.AuthConfig, log *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loginPath:  cfg.LoginPath,
		forgotPath: cfg.ForgotPath,
		signupPath: cfg.SignupPath,
		retries:    retries,
		backoff:    cfg.Backoff,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Login checks the credentials and returns the server's message on success.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.post(ctx, c.loginPath, map[string]string{
		"email":    email,
		"password": password,
	})
}

// ForgotPassword asks the server to send a reset link to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.post(ctx, c.forgotPath, map[string]string{"email": email})
}

// Signup registers a new user and returns the server's message.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	return c.post(ctx, c.signupPath, req)
}

// post sends payload to path, retrying transport errors and 5xx answers
// with a linear backoff. 4xx answers are returned immediately.
func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.backoff
			c.log.WithFields(logrus.Fields{"path": path, "attempt": attempt, "wait": wait}).
				Debugf("retrying auth request: %v", lastErr)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
			case <-time.After(wait):
			}
		}

		msg, retry, err := c.do(ctx, path, body)
		if err == nil {
			return msg, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
	}
	return "", lastErr
}

func (c *Client) do(ctx context.Context, path string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Debugf("auth response is not JSON: %s", string(raw))
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return env.Message, false, nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: env.Error}
	if apiErr.Message == "" {
		apiErr.Message = env.Message
	}
	return "", resp.StatusCode >= 500, apiErr
}
