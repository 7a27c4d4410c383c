package cli

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRestoreSession_AnnouncesSuccess(t *testing.T) {
	a := newTestApp(&fakeAuth{restoreUser: models.User{Username: "alice"}})
	out := captureLog(t)

	a.restoreSession(context.Background())

	if !strings.Contains(out.String(), "Session restored for alice") {
		t.Fatalf("output %q missing restore message", out.String())
	}
}

func TestRestoreSession_ReportsFailure(t *testing.T) {
	a := newTestApp(&fakeAuth{restoreErr: common.ErrUnavailable})
	out := captureLog(t)

	a.restoreSession(context.Background())

	got := out.String()
	if !strings.Contains(got, "Could not restore previous session") {
		t.Fatalf("output %q missing failure message", got)
	}
	if !strings.Contains(got, "server unavailable") {
		t.Fatalf("output %q missing failure reason", got)
	}
}

func TestRestoreSession_QuietWhenNothingStored(t *testing.T) {
	a := newTestApp(&fakeAuth{})
	out := captureLog(t)

	a.restoreSession(context.Background())

	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}
