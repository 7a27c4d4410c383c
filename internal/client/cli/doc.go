// Package cli implements the interactive authkeeper client: a small REPL
// over the authentication service with commands for login, registration,
// password recovery and session inspection.
package cli
