package service

import (
	"context"
	"fmt"
	"time"

	"github.com/presencelabs/facemark/internal/facemark/store"
	"github.com/presencelabs/facemark/internal/facemark/types"
)

type RecordResult int

const (
	// Recorded: a new attendance row was written.
	Recorded RecordResult = iota
	// AlreadyRecorded: a row for this (identity, day) already existed.
	// This is an expected outcome, not an error; genuine storage faults
	// come back through the error return instead.
	AlreadyRecorded
)

// Ledger is the durable attendance boundary.  Record delegates the
// duplicate decision entirely to the store's atomic insert-if-absent —
// there is no existence pre-check at this layer either.
type Ledger struct {
	attendance store.AttendanceStore
}

func NewLedger(attendance store.AttendanceStore) *Ledger {
	return &Ledger{attendance: attendance}
}

// Record persists a presence event for identityID on day, stamped with the
// wall-clock time of at.  Subsequent calls for the same (identityID, day)
// return AlreadyRecorded and leave the stored time untouched.
func (l *Ledger) Record(ctx context.Context, identityID int64, day string, at time.Time) (RecordResult, error) {
	at = at.UTC()
	inserted, err := l.attendance.InsertIfAbsent(ctx, types.AttendanceRecord{
		IdentityID: identityID,
		Day:        day,
		Clock:      types.ClockOf(at),
		Status:     types.StatusPresent,
		RecordedAt: at,
	})
	if err != nil {
		return 0, fmt.Errorf("ledger record: %w", err)
	}
	if !inserted {
		return AlreadyRecorded, nil
	}
	return Recorded, nil
}

// QueryByDate returns the day's records ordered by clock time ascending.
func (l *Ledger) QueryByDate(ctx context.Context, day string) ([]types.AttendanceRow, error) {
	rows, err := l.attendance.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("ledger query by date: %w", err)
	}
	return rows, nil
}

// QueryAll returns every record, newest day first, newest time first.
func (l *Ledger) QueryAll(ctx context.Context) ([]types.AttendanceRow, error) {
	rows, err := l.attendance.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger query all: %w", err)
	}
	return rows, nil
}

// CountFor returns the identity's total historical presence count.
func (l *Ledger) CountFor(ctx context.Context, identityID int64) (int, error) {
	n, err := l.attendance.CountForIdentity(ctx, identityID)
	if err != nil {
		return 0, fmt.Errorf("ledger count: %w", err)
	}
	return n, nil
}
