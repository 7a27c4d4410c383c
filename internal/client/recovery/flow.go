// Package recovery implements the password-recovery state machine: request
// OTP, verify OTP, set new password, in that order and no other. The flow
// never touches the session; recovering a password does not log anyone in.
package recovery

import (
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Step is a recovery-flow state.
type Step string

const (
	StepIdle         Step = "idle"
	StepOtpRequested Step = "otp_requested"
	StepOtpVerified  Step = "otp_verified"
	StepCompleted    Step = "completed"
	StepFailed       Step = "failed"
)

// Flow is one in-progress recovery attempt, scoped to a single email
// address. Transitions only move forward along
// idle -> otp_requested -> otp_verified -> completed; a failure parks the
// flow in failed, and a new OTP request starts over (possibly with a new
// email).
type Flow struct {
	mu     sync.Mutex
	step   Step
	email  string
	reason error
}

func NewFlow() *Flow {
	return &Flow{step: StepIdle}
}

// Step returns the current state.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email returns the address the flow is bound to ("" while idle).
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Err returns the failure reason when the flow is in the failed state.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reason
}

// CheckVerify reports whether verifying an OTP for email is legal right
// now. Anything but "OTP requested for this same email" is a caller bug
// and yields a StateError; no network call should be made.
func (f *Flow) CheckVerify(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requireLocked(StepOtpRequested, email)
}

// CheckReset reports whether setting a new password for email is legal
// right now. Requires a verified OTP for this same email; this is what
// stops a reset with a stale or unverified code.
func (f *Flow) CheckReset(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requireLocked(StepOtpVerified, email)
}

func (f *Flow) requireLocked(want Step, email string) error {
	if f.step != want || f.email != email {
		return &common.StateError{
			Expected: describe(want, email),
			Actual:   describe(f.step, f.email),
		}
	}
	return nil
}

// MarkRequested records a successful OTP request. Legal from any state:
// a fresh request abandons whatever came before and rebinds the flow to
// email.
func (f *Flow) MarkRequested(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepOtpRequested
	f.email = email
	f.reason = nil
}

// MarkVerified advances otp_requested -> otp_verified.
func (f *Flow) MarkVerified(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireLocked(StepOtpRequested, email); err != nil {
		return err
	}
	f.step = StepOtpVerified
	return nil
}

// MarkCompleted advances otp_verified -> completed.
func (f *Flow) MarkCompleted(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireLocked(StepOtpVerified, email); err != nil {
		return err
	}
	f.step = StepCompleted
	return nil
}

// MarkFailed parks the flow in failed with the given reason. The email
// binding is kept so the failure can be reported against it.
func (f *Flow) MarkFailed(email string, reason error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepFailed
	f.email = email
	f.reason = reason
}

// Reset returns the flow to idle, e.g. when the user abandons recovery.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepIdle
	f.email = ""
	f.reason = nil
}

func describe(step Step, email string) string {
	if email == "" {
		return string(step)
	}
	return fmt.Sprintf("%s(%s)", step, email)
}
