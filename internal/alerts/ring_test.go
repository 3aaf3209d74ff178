package alerts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-orchestrator/console/internal/models"
)

func TestRingPushNewestFirst(t *testing.T) {
	r := NewRing(10, nil)

	r.Push(models.SeverityInfo, "first")
	r.Push(models.SeverityWarning, "second")

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, "first", list[1].Message)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestRingEvictsOldestByInsertionOrder(t *testing.T) {
	r := NewRing(10, nil)

	// Oldest entry has the highest severity; eviction must still be by
	// insertion order, not severity.
	r.Push(models.SeverityError, "alert-0")
	for i := 1; i <= 10; i++ {
		r.Push(models.SeverityInfo, fmt.Sprintf("alert-%d", i))
	}

	list := r.List()
	require.Len(t, list, 10)
	assert.Equal(t, "alert-10", list[0].Message)
	assert.Equal(t, "alert-1", list[9].Message)
	for _, a := range list {
		assert.NotEqual(t, "alert-0", a.Message)
	}
}

func TestRingNeverExceedsCapacity(t *testing.T) {
	r := NewRing(10, nil)
	for i := 0; i < 50; i++ {
		r.Push(models.SeverityInfo, "spam")
		assert.LessOrEqual(t, r.Len(), 10)
	}
}

func TestRingDismiss(t *testing.T) {
	r := NewRing(10, nil)

	a := r.Push(models.SeverityInfo, "keep")
	b := r.Push(models.SeveritySuccess, "drop")

	r.Dismiss(b.ID)

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestRingDismissUnknownIDIsNoOp(t *testing.T) {
	r := NewRing(10, nil)
	r.Push(models.SeverityInfo, "only")

	before := r.List()
	r.Dismiss("no-such-id")
	assert.Equal(t, before, r.List())
}

func TestRingNoDeduplication(t *testing.T) {
	r := NewRing(10, nil)
	r.Push(models.SeverityInfo, "same message")
	r.Push(models.SeverityInfo, "same message")
	assert.Equal(t, 2, r.Len())
}
