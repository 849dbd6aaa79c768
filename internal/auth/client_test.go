package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koso-app/koso/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, retries int) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.AuthConfig{
		BaseURL:    url,
		LoginPath:  "/login.php",
		ForgotPath: "/forgot_password.php",
		SignupPath: "/signup.php",
		Timeout:    2 * time.Second,
		Retries:    retries,
		Backoff:    time.Millisecond,
	}, log)
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login.php", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "secret1", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Login successful"})
	}))
	defer srv.Close()

	msg, err := newTestClient(srv.URL, 0).Login(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", msg)
}

func TestSignupPostsRegistration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup.php", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"first_name": "Ada",
			"last_name":  "Obi",
			"email":      "ada@example.com",
			"password":   "secret1",
		}, body)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Account created successfully!"})
	}))
	defer srv.Close()

	msg, err := newTestClient(srv.URL, 0).Signup(context.Background(), SignupRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Account created successfully!", msg)
}

func TestLoginRejectedIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Login(context.Background(), "ada@example.com", "wrong")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Reset link sent"})
	}))
	defer srv.Close()

	msg, err := newTestClient(srv.URL, 2).ForgotPassword(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Reset link sent", msg)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).ForgotPassword(context.Background(), "ada@example.com")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "auth service returned status 500", apiErr.Error())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 1).Login(context.Background(), "ada@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, 5).Login(ctx, "ada@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNetwork)
}
