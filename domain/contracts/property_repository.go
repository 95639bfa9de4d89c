package contracts

import (
	"context"

	"inmohub/domain/listing"
)

// Session is the caller's auth context passed into repository calls. It is
// explicit rather than ambient so the core stays testable without a global
// runtime.
type Session struct {
	IsAdmin bool
	Token   string
}

// PublicSession is the unauthenticated caller context.
func PublicSession() Session {
	return Session{}
}

// AdminSession is an elevated caller context.
func AdminSession(token string) Session {
	return Session{IsAdmin: true, Token: token}
}

// PropertyRepository is the persisted-store boundary for property records.
// Any call may fail (network/auth/constraint); implementations surface the
// failure to the caller, never swallow it.
type PropertyRepository interface {
	// List returns all rows visible under the caller's privilege. Public
	// sessions receive only published rows, pre-filtered store-side; callers
	// must still apply the in-memory visibility policy before any public
	// render and may treat the pre-filtering as an optimization only.
	List(ctx context.Context, session Session) ([]*listing.Property, error)

	// GetByID retrieves one row visible under the caller's privilege.
	// Returns ErrNotFound for missing rows and, for public sessions, for
	// unpublished rows.
	GetByID(ctx context.Context, session Session, id string) (*listing.Property, error)

	// Insert persists a new record and assigns its durable identity,
	// replacing any client-generated draft placeholder.
	Insert(ctx context.Context, p *listing.Property) (*listing.Property, error)

	// Update replaces the record stored under id, preserving identity.
	Update(ctx context.Context, id string, p *listing.Property) (*listing.Property, error)

	// Delete removes the record and its images. Hard delete, irreversible.
	Delete(ctx context.Context, id string) error
}
