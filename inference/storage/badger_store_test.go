package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orrollo/NxBRE/inference"
)

func openTestStore(t *testing.T) *BadgerFactStore {
	t.Helper()
	store, err := NewBadgerFactStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerFactStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	facts := []*inference.Atom{
		inference.NewAtom("likes", inference.NewIndividual("Alice"), inference.NewIndividual("Bob")),
		inference.NewAtom("age", inference.NewIndividual("Alice"), inference.NewIndividual(int64(30))),
		inference.NewAtom("weight", inference.NewIndividual("Alice"), inference.NewIndividual(64.5)),
		inference.NewAtom("active", inference.NewIndividual("Alice"), inference.NewIndividual(true)),
		inference.NewAtom("seen", inference.NewIndividual("Alice"), inference.NewIndividual(when)),
		inference.NewNegativeAtom("banned", inference.NewIndividual("Alice")),
	}
	require.NoError(t, store.Snapshot(facts))

	restored, err := store.Restore()
	require.NoError(t, err)
	require.Len(t, restored, len(facts))

	byHash := make(map[uint64]*inference.Atom, len(restored))
	for _, fact := range restored {
		byHash[fact.LongHashCode()] = fact
	}
	for _, want := range facts {
		got, ok := byHash[want.LongHashCode()]
		require.True(t, ok, "missing %s", want)
		equal, err := got.Equals(want)
		require.NoError(t, err)
		assert.True(t, equal)
		assert.Equal(t, want.IsNegative(), got.IsNegative())
	}
}

func TestBadgerFactStoreSlotNamesSurvive(t *testing.T) {
	store := openTestStore(t)

	fact := inference.NewAtom("order",
		inference.NewSlot("customer", inference.NewIndividual("Alice")),
		inference.NewIndividual(int64(12)),
	)
	require.NoError(t, store.Snapshot([]*inference.Atom{fact}))

	restored, err := store.Restore()
	require.NoError(t, err)
	require.Len(t, restored, 1)

	value, err := restored[0].ValueBySlot("customer")
	require.NoError(t, err)
	assert.Equal(t, "Alice", value)
	assert.Equal(t, "", restored[0].SlotName(1))
}

func TestBadgerFactStoreFactsBySignature(t *testing.T) {
	store := openTestStore(t)

	facts := []*inference.Atom{
		inference.NewAtom("likes", inference.NewIndividual("Alice"), inference.NewIndividual("Bob")),
		inference.NewAtom("likes", inference.NewIndividual("Carol"), inference.NewIndividual("Dave")),
		inference.NewAtom("likes", inference.NewIndividual("Eve")),
		inference.NewAtom("hates", inference.NewIndividual("Alice"), inference.NewIndividual("Eve")),
	}
	require.NoError(t, store.Snapshot(facts))

	likes, err := store.FactsBySignature("likes2")
	require.NoError(t, err)
	assert.Len(t, likes, 2)
	for _, fact := range likes {
		assert.Equal(t, "likes2", fact.Signature())
	}

	none, err := store.FactsBySignature("loves2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBadgerFactStoreSnapshotReplaces(t *testing.T) {
	store := openTestStore(t)

	first := inference.NewAtom("color", inference.NewIndividual("sky"), inference.NewIndividual("blue"))
	second := inference.NewAtom("color", inference.NewIndividual("grass"), inference.NewIndividual("green"))

	require.NoError(t, store.Snapshot([]*inference.Atom{first}))
	require.NoError(t, store.Snapshot([]*inference.Atom{second}))

	restored, err := store.Restore()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	equal, err := restored[0].Equals(second)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestBadgerFactStoreRejectsPatterns(t *testing.T) {
	store := openTestStore(t)

	pattern := inference.NewAtom("likes", inference.NewIndividual("Alice"), inference.NewVariable("X"))
	assert.Error(t, store.Snapshot([]*inference.Atom{pattern}))

	unresolved := inference.NewAtom("age", inference.NewIndividual("Alice"), inference.NewFunction("GreaterThan", nil, "18"))
	assert.Error(t, store.Snapshot([]*inference.Atom{unresolved}))
}
