package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivario/reservation-service/internal/wizard"
)

func TestMemoryStore_DraftRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	draft := wizard.NewDraft("sess-1")
	draft.Notes = "window seat"
	require.NoError(t, store.Save(context.Background(), draft))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "window seat", got.Notes)
	require.Len(t, got.Participants, 1)

	// mutating the returned draft must not leak into the store
	got.Notes = "aisle seat"
	again, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "window seat", again.Notes)

	require.NoError(t, store.Delete(context.Background(), "sess-1"))
	_, err = store.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCartStore_OrderedAndDeduplicated(t *testing.T) {
	store := NewMemoryCartStore()

	require.NoError(t, store.Add(context.Background(), "sess-1", 3))
	require.NoError(t, store.Add(context.Background(), "sess-1", 1))
	require.NoError(t, store.Add(context.Background(), "sess-1", 3)) // duplicate, ignored

	ids, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1}, ids, "insertion order is preserved")

	require.NoError(t, store.Remove(context.Background(), "sess-1", 3))
	ids, err = store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids)

	require.NoError(t, store.Clear(context.Background(), "sess-1"))
	ids, err = store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryCartStore_SessionsAreIndependent(t *testing.T) {
	store := NewMemoryCartStore()

	require.NoError(t, store.Add(context.Background(), "sess-a", 1))
	require.NoError(t, store.Add(context.Background(), "sess-b", 2))
	require.NoError(t, store.Clear(context.Background(), "sess-a"))

	ids, err := store.Get(context.Background(), "sess-b")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)
}
