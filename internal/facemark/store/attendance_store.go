package store

import (
	"context"

	"github.com/presencelabs/facemark/internal/facemark/types"
)

// AttendanceStore is the durable ledger of presence events.  It owns the
// one-record-per-(identity, day) invariant.
type AttendanceStore interface {
	// InsertIfAbsent atomically inserts rec unless a record for the same
	// (IdentityID, Day) already exists.  Returns true when a row was
	// written, false when the pair was already present.  The existing row
	// is never altered.  Callers must not pre-check existence; this single
	// call is the race-free duplicate boundary.
	InsertIfAbsent(ctx context.Context, rec types.AttendanceRecord) (bool, error)

	// ListByDate returns the day's records ordered by clock time ascending.
	ListByDate(ctx context.Context, day string) ([]types.AttendanceRow, error)

	// ListAll returns every record ordered by day descending, then clock
	// descending.
	ListAll(ctx context.Context) ([]types.AttendanceRow, error)

	// CountForIdentity returns the total number of historical records for
	// one identity.
	CountForIdentity(ctx context.Context, identityID int64) (int, error)
}
