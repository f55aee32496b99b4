package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory BookingStore for lifecycle tests.
type memStore struct {
	statuses map[string]Status
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{statuses: make(map[string]Status)}
	for _, id := range ids {
		s.statuses[id] = StatusScheduled
	}
	return s
}

func (s *memStore) GetStatus(id string) (Status, error) {
	status, ok := s.statuses[id]
	if !ok {
		return "", ErrNotFound
	}
	return status, nil
}

func (s *memStore) SetStatus(id string, status Status) error {
	if _, ok := s.statuses[id]; !ok {
		return ErrNotFound
	}
	s.statuses[id] = status
	return nil
}

func (s *memStore) Delete(id string) error {
	if _, ok := s.statuses[id]; !ok {
		return ErrNotFound
	}
	delete(s.statuses, id)
	return nil
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "completed", "cancelled", "no-show"} {
		got, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), got)
	}
	_, err := ParseStatus("pending")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
}

func TestSetStatusUnguarded(t *testing.T) {
	store := newMemStore("r1")
	lc := NewLifecycle(store, nil)

	require.NoError(t, lc.SetStatus("r1", StatusCancelled))
	// Default mode imposes no transition table: un-cancelling is allowed.
	require.NoError(t, lc.SetStatus("r1", StatusScheduled))
	require.NoError(t, lc.SetStatus("r1", StatusCompleted))
	require.NoError(t, lc.SetStatus("r1", StatusNoShow))

	assert.ErrorIs(t, lc.SetStatus("missing", StatusCompleted), ErrNotFound)
	assert.Error(t, lc.SetStatus("r1", Status("bogus")))
}

func TestSetStatusStrict(t *testing.T) {
	store := newMemStore("r1")
	lc := NewLifecycle(store, nil)
	lc.Strict = true

	require.NoError(t, lc.SetStatus("r1", StatusCancelled))
	assert.Error(t, lc.SetStatus("r1", StatusCompleted), "terminal states are final in strict mode")
	assert.Error(t, lc.SetStatus("r1", StatusScheduled), "no un-cancelling in strict mode")
	assert.NoError(t, lc.SetStatus("r1", StatusCancelled), "re-setting the same status is a no-op")
	assert.Equal(t, StatusCancelled, store.statuses["r1"])
}

// P5: one bad id among N changes exactly N-1 and reports one failure.
func TestBulkSetStatusPartialFailure(t *testing.T) {
	store := newMemStore("r1", "r2", "r3")
	lc := NewLifecycle(store, nil)

	result := lc.BulkSetStatus([]string{"r1", "r-missing", "r3"}, StatusCompleted)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "r-missing")

	assert.Equal(t, StatusCompleted, store.statuses["r1"])
	assert.Equal(t, StatusScheduled, store.statuses["r2"], "untouched id keeps its status")
	assert.Equal(t, StatusCompleted, store.statuses["r3"])
}

func TestBulkSetStatusEmpty(t *testing.T) {
	lc := NewLifecycle(newMemStore(), nil)
	result := lc.BulkSetStatus(nil, StatusCompleted)
	assert.Zero(t, result.Succeeded)
	assert.Zero(t, result.Failed)
}

func TestDelete(t *testing.T) {
	store := newMemStore("r1")
	lc := NewLifecycle(store, nil)

	require.NoError(t, lc.Delete("r1", "customer asked to remove record"))
	assert.NotContains(t, store.statuses, "r1")
	assert.ErrorIs(t, lc.Delete("r1", ""), ErrNotFound)
}

// Scenario 5: bulkDelete with one missing id removes the rest and reports
// the miss.
func TestBulkDeletePartialFailure(t *testing.T) {
	store := newMemStore("r1", "r2")
	lc := NewLifecycle(store, nil)

	result := lc.BulkDelete([]string{"r1", "r2", "r-missing"})
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.NotContains(t, store.statuses, "r1")
	assert.NotContains(t, store.statuses, "r2")
}
