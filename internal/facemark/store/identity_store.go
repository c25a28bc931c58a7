package store

import (
	"context"
	"errors"
	"time"

	"github.com/presencelabs/facemark/internal/facemark/types"
)

// ErrDuplicateExternalID is returned by Add when the external ID is already
// enrolled.  External IDs are globally unique by construction.
var ErrDuplicateExternalID = errors.New("external id already enrolled")

type IdentityStore interface {
	// Add enrolls a new identity and returns it with its assigned label.
	Add(ctx context.Context, externalID, displayName string, enrolledAt time.Time) (types.Identity, error)

	// GetByExternalID reports whether the external ID is enrolled.
	GetByExternalID(ctx context.Context, externalID string) (types.Identity, bool, error)

	// ListAll returns every enrolled identity ordered by display name.
	ListAll(ctx context.Context) ([]types.Identity, error)
}
