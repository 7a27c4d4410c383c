package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// describeError turns a service error into a single line suitable for the
// REPL. Typed errors get friendlier wording; anything else is printed as-is.
func describeError(err error) string {
	var fieldErr *common.FieldError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Reason)
	}
	var remoteErr *common.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable, try again later"
	}
	if errors.Is(err, session.ErrStale) {
		return "session changed while the request was in flight, please retry"
	}
	return err.Error()
}

// Login prompts the user for an email and password and tries to
// authenticate. The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", describeError(err))
		return err
	}

	log.Printf("Logged in as %s", user.Username)
	return nil
}

// Register prompts the user for an email, username and password (twice) and
// attempts to create a new account. On success the session is already
// established, matching the backend behavior of issuing a token on signup.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	user, err := a.authService.Register(ctx, email, username, string(password), string(confirm))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", describeError(err))
		return err
	}

	log.Printf("Welcome, %s! You are now logged in.", user.Username)
	return nil
}

// Logout clears the session and the durable token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", describeError(err))
		return err
	}
	log.Println("Logged out")
	return nil
}

// Whoami fetches the profile for the current token and prints it. A 401
// from the backend clears the session, so the prompt reflects the change.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		log.Printf("Could not fetch profile: %s", describeError(err))
		return err
	}
	fmt.Printf("id: %s\nemail: %s\nusername: %s\njoined: %s\n",
		user.ID, user.Email, user.Username, user.DateJoined)
	return nil
}
