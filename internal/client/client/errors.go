package client

import "github.com/dmitrijs2005/authkeeper/internal/common"

// Re-exported sentinels so callers holding only a Client don't need to
// import the taxonomy package for the two most common checks.
var (
	ErrUnauthorized = common.ErrUnauthorized
	ErrUnavailable  = common.ErrUnavailable
)
