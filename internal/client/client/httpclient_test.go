package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenProvider) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, tokens, 5*time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	_, err := NewHTTPClient("not-a-url", nil, time.Second, nil)
	require.Error(t, err)
}

func TestHTTPClient_Login_DecodesUserAndToken(t *testing.T) {
	var gotBody loginRequest
	var gotContentType string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/jwt/create/", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access": "tok-123",
			"user": map[string]string{
				"id": "u1", "email": "a@x.com", "username": "alice", "date_joined": "2026-01-01",
			},
		})
	}), staticTokens(""))

	user, token, err := c.Login(context.Background(), "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, loginRequest{Email: "a@x.com", Password: "password1"}, gotBody)
}

func TestHTTPClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "email": "a@x.com", "username": "alice", "date_joined": "2026-01-01",
		})
	}), staticTokens("tok-abc"))

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestHTTPClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	var sawAuthHeader bool

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "ok"})
	}), staticTokens(""))

	_, err := c.RequestReset(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, sawAuthHeader)
}

func TestHTTPClient_MapsUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired"})
	}), staticTokens("expired"))

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestHTTPClient_WrongPasswordIsRemoteRejectionNotUnauthorized(t *testing.T) {
	const detail = "No active account found with the given credentials"

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
	}), staticTokens(""))

	_, _, err := c.Login(context.Background(), "a@x.com", "wrongpass1")
	require.NotErrorIs(t, err, common.ErrUnauthorized)

	var re *common.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	assert.Equal(t, detail, re.Detail)
}

func TestHTTPClient_MapsRemoteRejection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid OTP code."})
	}), staticTokens(""))

	_, err := c.VerifyOTP(context.Background(), "a@x.com", "000000")
	var re *common.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Equal(t, "Invalid OTP code.", re.Detail)
}

func TestHTTPClient_RemoteRejectionWithoutDetailKeepsBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"email":["user with this email already exists."]}`))
	}), staticTokens(""))

	_, _, err := c.Register(context.Background(), "b@x.com", "bob", "password1", "password1")
	var re *common.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusConflict, re.StatusCode)
	assert.Contains(t, re.Detail, "already exists")
}

func TestHTTPClient_MapsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c, err := NewHTTPClient(srv.URL, nil, time.Second, nil)
	require.NoError(t, err)

	_, _, err = c.Login(context.Background(), "a@x.com", "password1")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestHTTPClient_RequestResetSurfacesDetailVerbatim(t *testing.T) {
	const detail = "If your email is registered, you will receive an OTP code."

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/password/reset/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
	}), staticTokens(""))

	got, err := c.RequestReset(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, detail, got)
}
