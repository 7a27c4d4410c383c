// Package models defines value objects returned by the backend.
package models

// User is the profile the backend returns after authentication. It is an
// immutable value: the session replaces it wholesale, never mutates fields.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	DateJoined string `json:"date_joined"`
}

// IsZero reports whether the profile has not been populated yet.
func (u User) IsZero() bool {
	return u == User{}
}
