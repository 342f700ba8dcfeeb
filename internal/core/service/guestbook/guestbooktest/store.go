// Package guestbooktest holds a reusable test suite for the Store
// port. Every store implementation runs the same suite, which is what
// makes swapping the backing medium safe: the contract is pinned by
// tests rather than by convention.
package guestbooktest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

// StoreFactory returns a fresh, empty store for a single test. Cleanup
// should be registered on t.
type StoreFactory func(t *testing.T) guestbook.Store

// StoreContract runs the shared behaviour suite against a store
// implementation.
func StoreContract(t *testing.T, newStore StoreFactory) {
	t.Helper()

	ctx := context.Background()

	insert := func(t *testing.T, store guestbook.Store, user, comment string) domain.Entry {
		t.Helper()

		created, err := store.Insert(ctx, domain.Entry{User: user, Comment: comment})
		require.NoError(t, err)
		require.True(t, created.HasID())

		return created
	}

	t.Run("insert assigns unique increasing ids", func(t *testing.T) {
		store := newStore(t)

		first := insert(t, store, "john", "Great Comment")
		second := insert(t, store, "jane", "Me Too!")

		assert.Equal(t, int64(1), *first.ID)
		assert.Equal(t, int64(2), *second.ID)
	})

	t.Run("get returns what insert stored", func(t *testing.T) {
		store := newStore(t)

		created := insert(t, store, "john", "Great Comment")

		got, err := store.Get(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "john", got.User)
		assert.Equal(t, "Great Comment", got.Comment)
		assert.Equal(t, *created.ID, *got.ID)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(ctx, 42)
		assert.ErrorIs(t, err, guestbook.ErrNotFound)
	})

	t.Run("list returns entries in insertion order", func(t *testing.T) {
		store := newStore(t)

		insert(t, store, "john", "first")
		insert(t, store, "jane", "second")
		insert(t, store, "john", "third")

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "first", entries[0].Comment)
		assert.Equal(t, "second", entries[1].Comment)
		assert.Equal(t, "third", entries[2].Comment)
	})

	t.Run("list on empty store is empty not nil", func(t *testing.T) {
		store := newStore(t)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("list by user matches exactly", func(t *testing.T) {
		store := newStore(t)

		insert(t, store, "john", "first")
		insert(t, store, "jane", "second")
		insert(t, store, "john", "third")

		johns, err := store.ListByUser(ctx, "john")
		require.NoError(t, err)
		require.Len(t, johns, 2)
		assert.Equal(t, "first", johns[0].Comment)
		assert.Equal(t, "third", johns[1].Comment)

		// exact match only, no case folding
		none, err := store.ListByUser(ctx, "John")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("upsert replaces fields in place", func(t *testing.T) {
		store := newStore(t)

		created := insert(t, store, "john", "Great Comment")
		insert(t, store, "jane", "Me Too!")

		changed := created.Clone()
		changed.Comment = "Edited Comment"

		_, err := store.Upsert(ctx, changed)
		require.NoError(t, err)

		got, err := store.Get(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Edited Comment", got.Comment)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("upsert with unseen id inserts under that id", func(t *testing.T) {
		store := newStore(t)

		var id int64 = 7
		_, err := store.Upsert(ctx, domain.Entry{ID: &id, User: "john", Comment: "seeded"})
		require.NoError(t, err)

		got, err := store.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "seeded", got.Comment)
	})

	t.Run("insert after upsert does not collide with the upserted id", func(t *testing.T) {
		store := newStore(t)

		var id int64 = 7
		_, err := store.Upsert(ctx, domain.Entry{ID: &id, User: "john", Comment: "seeded"})
		require.NoError(t, err)

		created := insert(t, store, "jane", "fresh")
		assert.Greater(t, *created.ID, int64(7))
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		store := newStore(t)

		created := insert(t, store, "john", "Great Comment")
		keep := insert(t, store, "jane", "Me Too!")

		require.NoError(t, store.Delete(ctx, *created.ID))

		_, err := store.Get(ctx, *created.ID)
		assert.ErrorIs(t, err, guestbook.ErrNotFound)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, *keep.ID, *entries[0].ID)
	})

	t.Run("delete unknown id is not found", func(t *testing.T) {
		store := newStore(t)

		assert.ErrorIs(t, store.Delete(ctx, 42), guestbook.ErrNotFound)
	})

	t.Run("delete twice is not found the second time", func(t *testing.T) {
		store := newStore(t)

		created := insert(t, store, "john", "Great Comment")

		require.NoError(t, store.Delete(ctx, *created.ID))
		assert.ErrorIs(t, store.Delete(ctx, *created.ID), guestbook.ErrNotFound)
	})

	t.Run("deleted id is never reassigned", func(t *testing.T) {
		store := newStore(t)

		first := insert(t, store, "john", "Great Comment")
		require.NoError(t, store.Delete(ctx, *first.ID))

		second := insert(t, store, "jane", "Me Too!")
		assert.NotEqual(t, *first.ID, *second.ID)
	})

	t.Run("results do not alias internal state", func(t *testing.T) {
		store := newStore(t)

		created := insert(t, store, "john", "Great Comment")

		got, err := store.Get(ctx, *created.ID)
		require.NoError(t, err)
		got.Comment = "mutated by caller"

		again, err := store.Get(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Great Comment", again.Comment)
	})
}
