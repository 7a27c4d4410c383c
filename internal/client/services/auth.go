// Package services contains the application services of the authkeeper
// client. This file defines the authentication service: login, register,
// logout, session restore, and the three-step password-recovery flow.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/client/recovery"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// AuthService defines the typed authentication operations exposed to the
// CLI and any other frontend.
//
// Contract:
//   - Login / Register: authenticate against the backend and establish the
//     session. Register grants a session immediately; recovering a password
//     never does.
//   - RequestOTP / VerifyOTP / ResetPassword: drive the recovery flow in
//     strict order; out-of-order calls fail before any network traffic.
//   - CurrentUser: fetch the profile for the current token without mutating
//     the session. A 401 on any authenticated call clears the session.
//   - Restore: re-establish the session from the durable token slot after a
//     restart.
//
// All methods honor context cancellation and suspend only on the network
// round trip; validation and state transitions are synchronous.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, username, password, confirmPassword string) (models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.User, error)
	CurrentUser(ctx context.Context) (models.User, error)
	RequestOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otpCode string) error
	ResetPassword(ctx context.Context, email, otpCode, newPassword, confirmPassword string) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client, the
// in-memory session, the recovery flow and the durable token slot.
type authService struct {
	client  client.Client
	session *session.State
	flow    *recovery.Flow
	store   credentials.Store
	log     logging.Logger
	now     func() time.Time
}

// NewAuthService constructs an AuthService bound to the given collaborators.
func NewAuthService(c client.Client, s *session.State, f *recovery.Flow, store credentials.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{client: c, session: s, flow: f, store: store, log: log, now: time.Now}
}

// Login authenticates with email and password and establishes the session.
// The session epoch is captured before the call: if the user logs out while
// the request is in flight, the late success is discarded and
// session.ErrStale returned.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validatePassword("password", password); err != nil {
		return models.User{}, err
	}

	epoch := a.session.Epoch()

	user, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}

	if err := a.session.EstablishAt(ctx, epoch, user, token); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Register creates an account and establishes the session right away; no
// separate login step is needed.
func (a *authService) Register(ctx context.Context, email, username, password, confirmPassword string) (models.User, error) {
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validateUsername(username); err != nil {
		return models.User{}, err
	}
	if err := validatePassword("password", password); err != nil {
		return models.User{}, err
	}
	if err := validateConfirm("confirm_password", password, confirmPassword); err != nil {
		return models.User{}, err
	}

	epoch := a.session.Epoch()

	user, token, err := a.client.Register(ctx, email, username, password, confirmPassword)
	if err != nil {
		return models.User{}, err
	}

	if err := a.session.EstablishAt(ctx, epoch, user, token); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Logout clears the session and the stored token. Idempotent.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// Restore brings a session back after a restart: load the stored token,
// drop it when its expiry has already passed, otherwise establish the
// session and hydrate the profile from the backend.
func (a *authService) Restore(ctx context.Context) (models.User, error) {
	token, err := a.store.Load(ctx)
	if err != nil {
		return models.User{}, err
	}
	if token == "" {
		return models.User{}, nil
	}

	if session.TokenExpired(token, a.now()) {
		a.log.Info(ctx, "stored token expired, dropping it")
		if err := a.store.Remove(ctx); err != nil {
			return models.User{}, err
		}
		return models.User{}, nil
	}

	if err := a.session.Establish(ctx, models.User{}, token); err != nil {
		return models.User{}, err
	}

	user, err := a.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}

	// re-establish with the profile filled in; same token, same session
	if err := a.session.Establish(ctx, user, token); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CurrentUser fetches the profile for the attached token. It does not
// mutate the session on success; on a 401 the session is cleared so the
// user is forced to log in again.
func (a *authService) CurrentUser(ctx context.Context) (models.User, error) {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return models.User{}, a.reactToUnauthorized(ctx, err)
	}
	return user, nil
}

// reactToUnauthorized is the single automatic reaction the core owns: a
// rejected token clears the session. Every other error passes through
// untouched and is never retried here.
func (a *authService) reactToUnauthorized(ctx context.Context, err error) error {
	if !errors.Is(err, common.ErrUnauthorized) {
		return err
	}
	if cerr := a.session.Clear(ctx); cerr != nil {
		a.log.Error(ctx, "failed to clear session after rejected token", "error", cerr)
	}
	return err
}

// RequestOTP begins (or restarts) password recovery for email. On success
// the flow moves to otp_requested, bound to that email. The backend's
// detail message is returned as-is; it is deliberately neutral about
// whether the address is registered.
func (a *authService) RequestOTP(ctx context.Context, email string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}

	detail, err := a.client.RequestReset(ctx, email)
	if err != nil {
		return "", err
	}

	a.flow.MarkRequested(email)
	return detail, nil
}

// VerifyOTP checks the emailed code. Calling it without a pending OTP
// request for the same email is a contract violation and fails before any
// network call.
func (a *authService) VerifyOTP(ctx context.Context, email, otpCode string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateOTP(otpCode); err != nil {
		return err
	}
	if err := a.flow.CheckVerify(email); err != nil {
		return err
	}

	if _, err := a.client.VerifyOTP(ctx, email, otpCode); err != nil {
		a.flow.MarkFailed(email, err)
		return err
	}
	return a.flow.MarkVerified(email)
}

// ResetPassword sets a new password after a verified OTP. It never
// establishes a session: the user must log in with the new password
// explicitly.
func (a *authService) ResetPassword(ctx context.Context, email, otpCode, newPassword, confirmPassword string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateOTP(otpCode); err != nil {
		return err
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}
	if err := validateConfirm("confirm_password", newPassword, confirmPassword); err != nil {
		return err
	}
	if err := a.flow.CheckReset(email); err != nil {
		return err
	}

	if _, err := a.client.ConfirmReset(ctx, email, otpCode, newPassword, confirmPassword); err != nil {
		a.flow.MarkFailed(email, err)
		return err
	}
	return a.flow.MarkCompleted(email)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
