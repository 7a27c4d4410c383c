package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Client-side validation is defense in depth: the backend stays
// authoritative, these checks just fail fast before a network call.
const (
	minPasswordLen = 8
	otpLength      = 6
)

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return common.NewFieldError("email", "malformed address")
	}
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return common.NewFieldError("username", "must not be empty")
	}
	return nil
}

func validatePassword(field, password string) error {
	if len(password) < minPasswordLen {
		return common.NewFieldError(field, "must be at least 8 characters")
	}
	return nil
}

// validateConfirm requires a byte-for-byte match between a password and its
// confirmation field.
func validateConfirm(field, password, confirm string) error {
	if password != confirm {
		return common.NewFieldError(field, "does not match")
	}
	return nil
}

func validateOTP(code string) error {
	if len(code) != otpLength {
		return common.NewFieldError("otp_code", "must be exactly 6 characters")
	}
	return nil
}
