package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrNotFound occurs when a requested record is missing, or not visible
	// under the caller's session.
	ErrNotFound = errors.New("property not found")
)
