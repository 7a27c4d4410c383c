// Package credentials persists the single bearer-token slot that survives
// client restarts. The store is single-tenant: logging in as a different
// user overwrites the slot, it never appends.
package credentials

import "context"

// Store is the durable token slot.
//
// Contract:
//   - Save overwrites the slot; saving the same token twice is a no-op.
//   - Load returns "" with a nil error when no token is stored.
//   - Remove is idempotent; removing an empty slot is a no-op.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Remove(ctx context.Context) error
}
