package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Backend paths, relative to the configured base URL.
const (
	pathLogin        = "/jwt/create/"
	pathRegister     = "/users/"
	pathRequestReset = "/password/reset/"
	pathVerifyOTP    = "/password/reset/verify-otp/"
	pathConfirmReset = "/password/reset/confirm/"
	pathCurrentUser  = "/me/"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	OtpCode string `json:"otp_code"`
}

type confirmResetRequest struct {
	Email           string `json:"email"`
	OtpCode         string `json:"otp_code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type authResponse struct {
	Access string      `json:"access"`
	User   models.User `json:"user"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// HTTPClient implements Client over the backend's REST/JSON surface.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenProvider
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. Every request passes
// through one decoration step that attaches the bearer token from tokens
// (when present) and a per-request correlation ID.
func NewHTTPClient(baseURL string, tokens TokenProvider, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	if log == nil {
		log = logging.NewNop()
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log,
	}
	c.hc = &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			base:   http.DefaultTransport,
			tokens: tokens,
			log:    log,
		},
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, pathLogin, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Access, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password, confirmPassword string) (models.User, string, error) {
	req := registerRequest{
		Email:           email,
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, req, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Access, nil
}

func (c *HTTPClient) RequestReset(ctx context.Context, email string) (string, error) {
	var resp detailResponse
	if err := c.do(ctx, http.MethodPost, pathRequestReset, resetRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Detail, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otpCode string) (string, error) {
	var resp detailResponse
	if err := c.do(ctx, http.MethodPost, pathVerifyOTP, verifyOTPRequest{Email: email, OtpCode: otpCode}, &resp); err != nil {
		return "", err
	}
	return resp.Detail, nil
}

func (c *HTTPClient) ConfirmReset(ctx context.Context, email, otpCode, newPassword, confirmPassword string) (string, error) {
	req := confirmResetRequest{
		Email:           email,
		OtpCode:         otpCode,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}
	var resp detailResponse
	if err := c.do(ctx, http.MethodPost, pathConfirmReset, req, &resp); err != nil {
		return "", err
	}
	return resp.Detail, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, pathCurrentUser, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do issues one JSON request and decodes the response into out (when non-nil).
// Non-2xx statuses are mapped onto the shared error taxonomy.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Read the token here, before the round trip: mapStatus needs to know
	// whether a bearer token went out, and the session may change while the
	// request is in flight.
	authed := c.tokens != nil && c.tokens.Token() != ""

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrUnavailable)
	}

	if err := c.mapStatus(resp.StatusCode, data, authed); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("invalid response from server: %w", err)
		}
	}
	return nil
}

// mapStatus translates a non-2xx response into the error taxonomy. A 401
// means the token was rejected, but only when the request actually carried
// one: on an unauthenticated call (wrong-password login, most notably) a 401
// is a business rejection whose detail must reach the caller verbatim.
// Everything else carries the backend's detail message verbatim too.
func (c *HTTPClient) mapStatus(status int, body []byte, authed bool) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusUnauthorized && authed {
		return common.ErrUnauthorized
	}

	detail := ""
	var d detailResponse
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		detail = d.Detail
	} else if s := strings.TrimSpace(string(body)); s != "" {
		detail = s
	}
	return &common.RemoteError{StatusCode: status, Detail: detail}
}

// authTransport is the single request-decoration step: bearer token when the
// session holds one, plus a request ID for log correlation.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenProvider
	log    logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	authed := false
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authed = true
		}
	}

	t.log.Debug(req.Context(), "outgoing request",
		"method", req.Method, "path", req.URL.Path, "request_id", requestID, "authenticated", authed)

	return t.base.RoundTrip(req)
}
