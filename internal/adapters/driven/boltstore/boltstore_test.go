package boltstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestbook/internal/adapters/driven/boltstore"
	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
	"guestbook/internal/core/service/guestbook/guestbooktest"
)

func TestBoltStoreContract(t *testing.T) {
	guestbooktest.StoreContract(t, func(t *testing.T) guestbook.Store {
		store, err := boltstore.New(filepath.Join(t.TempDir(), "test_guestbook.db"))
		require.NoError(t, err)

		t.Cleanup(func() { store.Close() })

		return store
	})
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test_guestbook.db")

	store, err := boltstore.New(path)
	require.NoError(t, err)

	created, err := store.Insert(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := boltstore.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, *created.ID)
	require.NoError(t, err)
	assert.Equal(t, "john", got.User)
	assert.Equal(t, "Great Comment", got.Comment)

	// the id sequence carries across restarts too
	next, err := reopened.Insert(ctx, domain.Entry{User: "jane", Comment: "Me Too!"})
	require.NoError(t, err)
	assert.Greater(t, *next.ID, *created.ID)
}

func TestBoltStoreUnavailablePath(t *testing.T) {
	_, err := boltstore.New(filepath.Join(t.TempDir(), "no", "such", "dir", "guestbook.db"))
	assert.ErrorIs(t, err, guestbook.ErrStoreUnavailable)
}
