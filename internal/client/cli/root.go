package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/client/session"
)

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated {
		return ""
	}
	name := snap.User.Username
	if name == "" {
		name = "restoring"
	}
	return fmt.Sprintf("(%s)", name)
}

// restoreSession re-establishes the previous session from the durable token
// slot. A stored session that fails to come back (server down, rejected
// token) is reported so the user knows why they start at the anonymous
// prompt.
func (a *App) restoreSession(ctx context.Context) {
	user, err := a.authService.Restore(ctx)
	if err != nil {
		log.Printf("Could not restore previous session: %s", describeError(err))
		return
	}
	if !user.IsZero() {
		log.Printf("Session restored for %s", user.Username)
	}
}

// requireSession gates protected commands. When the session is missing it
// prints the route the user would be redirected to and returns false.
func (a *App) requireSession() bool {
	d := session.CanEnter("/dashboard", a.session.Snapshot())
	if d.Allow {
		return true
	}
	log.Printf("Not logged in, use 'login' first (would redirect to %s)", d.RedirectTo)
	return false
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to authkeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.restoreSession(ctx)

	for {
		fmt.Printf("akc %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, status, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, forgot, verify, reset, status, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			if a.requireSession() {
				a.Logout(ctx)
			}
		case "whoami", "me":
			if a.requireSession() {
				a.Whoami(ctx)
			}
		case "forgot":
			a.Forgot(ctx)
		case "verify":
			a.Verify(ctx)
		case "reset":
			a.Reset(ctx)
		case "status":
			a.Status()
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// Status prints the current session snapshot without touching the network.
func (a *App) Status() {
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Println("not logged in")
		return
	}
	if snap.User.IsZero() {
		fmt.Println("logged in (profile not loaded yet)")
		return
	}
	fmt.Printf("logged in as %s <%s>\n", snap.User.Username, snap.User.Email)
}
