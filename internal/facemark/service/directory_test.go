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

func TestLoadDirectory_EmptyStoreUnavailable(t *testing.T) {
	ids := memory.NewIdentityStore()

	_, err := service.LoadDirectory(context.Background(), ids)
	require.ErrorIs(t, err, service.ErrDirectoryUnavailable)
}

func TestLoadDirectory_SnapshotsAllIdentities(t *testing.T) {
	ids := memory.NewIdentityStore()
	ctx := context.Background()

	alice, err := ids.Add(ctx, "R100", "Alice", time.Now().UTC())
	require.NoError(t, err)
	bob, err := ids.Add(ctx, "R101", "Bob", time.Now().UTC())
	require.NoError(t, err)

	dir, err := service.LoadDirectory(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Size())

	info, ok := dir.Lookup(alice.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", info.DisplayName)

	info, ok = dir.Lookup(bob.ID)
	require.True(t, ok)
	assert.Equal(t, "R101", info.ExternalID)

	_, ok = dir.Lookup(999)
	assert.False(t, ok)
}

func TestLoadDirectory_SnapshotIsImmutable(t *testing.T) {
	ids := memory.NewIdentityStore()
	ctx := context.Background()

	_, err := ids.Add(ctx, "R100", "Alice", time.Now().UTC())
	require.NoError(t, err)

	dir, err := service.LoadDirectory(ctx, ids)
	require.NoError(t, err)

	// Enrollment after the snapshot is not visible until the next load.
	carol, err := ids.Add(ctx, "R102", "Carol", time.Now().UTC())
	require.NoError(t, err)

	_, ok := dir.Lookup(carol.ID)
	assert.False(t, ok, "snapshot must not see identities enrolled after load")
	assert.Equal(t, 1, dir.Size())
}
