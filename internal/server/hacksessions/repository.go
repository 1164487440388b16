package hacksessions

import (
	"context"
)

type Repository interface {
	GetByOwner(ctx context.Context, owner string) (*Session, error)

	// Upsert replaces the owner's session wholesale. Starting a hack against
	// a new station intentionally discards any prior session state.
	Upsert(ctx context.Context, session *Session) error

	SetTriesRemaining(ctx context.Context, owner string, tries int) error

	// Finalize marks the session resolved. It is idempotent: a session that
	// is already done is left untouched.
	Finalize(ctx context.Context, owner string, wasSuccessful bool, coordinates *string) error
}
