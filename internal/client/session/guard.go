package session

// LoginRoute is where unauthenticated navigation gets redirected.
const LoginRoute = "/login"

// Decision is the outcome of a guard check: either the protected view may
// render, or navigation should go to RedirectTo instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// CanEnter is a pure predicate over a session snapshot. It must be
// re-evaluated on every session change, never cached: the snapshot it was
// computed from is already stale once Establish or Clear runs.
func CanEnter(route string, snap Snapshot) Decision {
	if snap.IsAuthenticated {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: LoginRoute}
}
