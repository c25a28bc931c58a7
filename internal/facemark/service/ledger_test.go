package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencelabs/facemark/internal/facemark/service"
	"github.com/presencelabs/facemark/internal/facemark/store/memory"
)

func TestLedger_Record_FirstThenAlreadyRecorded(t *testing.T) {
	ids := memory.NewIdentityStore()
	ctx := context.Background()
	alice, err := ids.Add(ctx, "R100", "Alice", time.Now().UTC())
	require.NoError(t, err)

	ledger := service.NewLedger(memory.NewAttendanceStore(ids))

	first := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	res, err := ledger.Record(ctx, alice.ID, "2024-01-10", first)
	require.NoError(t, err)
	assert.Equal(t, service.Recorded, res)

	// Every later call for the same (identity, day) is AlreadyRecorded and
	// the stored time stays the first one.
	for hour := 10; hour <= 14; hour++ {
		res, err = ledger.Record(ctx, alice.ID, "2024-01-10",
			time.Date(2024, 1, 10, hour, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, service.AlreadyRecorded, res)
	}

	rows, err := ledger.QueryByDate(ctx, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "09:00:00", rows[0].Clock)
}

func TestLedger_Record_SeparateDaysIndependent(t *testing.T) {
	ids := memory.NewIdentityStore()
	ctx := context.Background()
	alice, err := ids.Add(ctx, "R100", "Alice", time.Now().UTC())
	require.NoError(t, err)

	ledger := service.NewLedger(memory.NewAttendanceStore(ids))

	res, err := ledger.Record(ctx, alice.ID, "2024-01-10", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, service.Recorded, res)

	res, err = ledger.Record(ctx, alice.ID, "2024-01-11", time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, service.Recorded, res)

	n, err := ledger.CountFor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMarkedSet_FreshAndIdempotent(t *testing.T) {
	m := service.NewMarkedSet()

	assert.False(t, m.AlreadyMarked(1))
	assert.Equal(t, 0, m.Len())

	m.Mark(1)
	m.Mark(1)
	assert.True(t, m.AlreadyMarked(1))
	assert.False(t, m.AlreadyMarked(2))
	assert.Equal(t, 1, m.Len())
}
