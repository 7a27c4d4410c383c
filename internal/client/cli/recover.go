package cli

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Forgot starts the password-recovery flow: it prompts for an email and
// asks the backend to send a one-time code. The confirmation message comes
// from the backend verbatim and is the same whether or not the account
// exists.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	detail, err := a.authService.RequestOTP(ctx, email)
	if err != nil {
		log.Printf("Could not request a code: %s", describeError(err))
		return err
	}

	log.Println(detail)
	log.Println("Check your inbox, then run 'verify' with the code.")
	return nil
}

// Verify prompts for the email and the emailed code and checks them with
// the backend. It only advances the recovery flow; the session is untouched.
func (a *App) Verify(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.VerifyOTP(ctx, email, code); err != nil {
		log.Printf("Verification failed: %s", describeError(err))
		return err
	}

	log.Println("Code accepted. Run 'reset' to choose a new password.")
	return nil
}

// Reset completes the recovery flow with a new password. Recovering a
// password never logs the user in; they log in with the new password
// afterwards.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.authService.ResetPassword(ctx, email, code, string(password), string(confirm)); err != nil {
		log.Printf("Reset failed: %s", describeError(err))
		return err
	}

	log.Println("Password changed. Use 'login' to sign in with it.")
	return nil
}
