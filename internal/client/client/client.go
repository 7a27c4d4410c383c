package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// Client is the remote API surface consumed by the service layer. One method
// per backend action; implementations attach the current bearer token to
// every call through a single decoration step.
type Client interface {
	// Login exchanges email/password for a user profile and access token.
	Login(ctx context.Context, email, password string) (models.User, string, error)
	// Register creates an account and returns the profile and access token,
	// so a fresh registration starts a session without a separate login.
	Register(ctx context.Context, email, username, password, confirmPassword string) (models.User, string, error)
	// RequestReset asks the backend to email an OTP code. The returned detail
	// is deliberately neutral about whether the address is registered.
	RequestReset(ctx context.Context, email string) (string, error)
	// VerifyOTP checks the emailed code against the backend.
	VerifyOTP(ctx context.Context, email, otpCode string) (string, error)
	// ConfirmReset sets a new password for an already-verified OTP.
	ConfirmReset(ctx context.Context, email, otpCode, newPassword, confirmPassword string) (string, error)
	// CurrentUser fetches the profile for the attached token.
	CurrentUser(ctx context.Context) (models.User, error)
	Close() error
}

// TokenProvider supplies the bearer token attached to outgoing requests.
// An empty string means the request goes out unauthenticated.
type TokenProvider interface {
	Token() string
}
