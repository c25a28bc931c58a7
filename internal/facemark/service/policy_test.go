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

func loadTestDirectory(t *testing.T) (*service.Directory, int64) {
	t.Helper()

	ids := memory.NewIdentityStore()
	alice, err := ids.Add(context.Background(), "R100", "Alice", time.Now().UTC())
	require.NoError(t, err)

	dir, err := service.LoadDirectory(context.Background(), ids)
	require.NoError(t, err)
	return dir, alice.ID
}

func TestDecide_AcceptsKnownLabelBelowThreshold(t *testing.T) {
	dir, alice := loadTestDirectory(t)

	v := service.Decide(dir, alice, 45, 70)
	assert.Equal(t, service.DecisionAccepted, v.Decision)
	assert.Equal(t, "Alice", v.Identity.DisplayName)
	assert.Equal(t, "R100", v.Identity.ExternalID)
}

func TestDecide_RejectsScoreAboveThreshold(t *testing.T) {
	dir, alice := loadTestDirectory(t)

	v := service.Decide(dir, alice, 85, 70)
	assert.Equal(t, service.DecisionRejected, v.Decision)
	assert.Equal(t, service.ReasonScoreTooHigh, v.Reason)
}

func TestDecide_BoundaryScoreEqualToThresholdRejected(t *testing.T) {
	dir, alice := loadTestDirectory(t)

	v := service.Decide(dir, alice, 70, 70)
	assert.Equal(t, service.DecisionRejected, v.Decision)
}

func TestDecide_RejectsUnknownLabel(t *testing.T) {
	dir, _ := loadTestDirectory(t)

	v := service.Decide(dir, 999, 10, 70)
	assert.Equal(t, service.DecisionRejected, v.Decision)
	assert.Equal(t, service.ReasonUnknownLabel, v.Reason)
}

func TestDecide_Deterministic(t *testing.T) {
	dir, alice := loadTestDirectory(t)

	first := service.Decide(dir, alice, 69.9, 70)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, service.Decide(dir, alice, 69.9, 70))
	}
	assert.Equal(t, service.DecisionAccepted, first.Decision)
}
