package guestbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestbook/internal/adapters/driven/memstore"
	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

func newService(t *testing.T) guestbook.Service {
	t.Helper()

	repo := guestbook.NewRepository(memstore.New())
	return guestbook.NewService(repo)
}

func TestCreateValidation(t *testing.T) {
	testCases := map[string]struct {
		entry   domain.Entry
		wantErr error
	}{
		"ok": {
			entry: domain.Entry{User: "john", Comment: "Great Comment"},
		},
		"error - empty user": {
			entry:   domain.Entry{User: "", Comment: "Great Comment"},
			wantErr: guestbook.ErrInvalidEntry,
		},
		"error - empty comment": {
			entry:   domain.Entry{User: "john", Comment: ""},
			wantErr: guestbook.ErrInvalidEntry,
		},
		"error - whitespace only user": {
			entry:   domain.Entry{User: "   ", Comment: "Great Comment"},
			wantErr: guestbook.ErrInvalidEntry,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			svc := newService(t)

			created, err := svc.Create(context.Background(), tc.entry)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, created.HasID())

			got, err := svc.GetByID(context.Background(), *created.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.entry.User, got.User)
			assert.Equal(t, tc.entry.Comment, got.Comment)
		})
	}
}

func TestCreateIgnoresClientSuppliedID(t *testing.T) {
	svc := newService(t)

	var clientID int64 = 99
	created, err := svc.Create(context.Background(), domain.Entry{ID: &clientID, User: "john", Comment: "Great Comment"})

	require.NoError(t, err)
	require.True(t, created.HasID())
	assert.Equal(t, int64(1), *created.ID, "store assigns the id, not the client")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and keeps id and size", func(t *testing.T) {
		svc := newService(t)

		created, err := svc.Create(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, domain.Entry{User: "jane", Comment: "Me Too!"})
		require.NoError(t, err)

		changed := created.Clone()
		changed.Comment = "Edited Comment"

		updated, err := svc.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, *created.ID, *updated.ID)

		got, err := svc.GetByID(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Edited Comment", got.Comment)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("error - unknown id does not insert", func(t *testing.T) {
		svc := newService(t)

		var id int64 = 42
		_, err := svc.Update(ctx, domain.Entry{ID: &id, User: "john", Comment: "Great Comment"})
		assert.ErrorIs(t, err, guestbook.ErrNotFound)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all, "a failed update must not create records")
	})

	t.Run("error - missing id", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Update(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
		assert.ErrorIs(t, err, guestbook.ErrMissingID)
	})

	t.Run("error - invalid fields", func(t *testing.T) {
		svc := newService(t)

		created, err := svc.Create(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
		require.NoError(t, err)

		changed := created.Clone()
		changed.Comment = ""

		_, err = svc.Update(ctx, changed)
		assert.ErrorIs(t, err, guestbook.ErrInvalidEntry)
	})
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	assert.ErrorIs(t, svc.DeleteByID(ctx, 42), guestbook.ErrNotFound)

	created, err := svc.Create(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, *created.ID))
	assert.ErrorIs(t, svc.DeleteByID(ctx, *created.ID), guestbook.ErrNotFound)
}

// The walkthrough scenario: two inserts, list, filter, delete, list.
func TestGuestbookScenario(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.Entry{User: "jane", Comment: "Me Too!"})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), *all[0].ID)
	assert.Equal(t, int64(2), *all[1].ID)

	johns, err := svc.GetByUser(ctx, "john")
	require.NoError(t, err)
	require.Len(t, johns, 1)
	assert.Equal(t, int64(1), *johns[0].ID)

	require.NoError(t, svc.DeleteByID(ctx, 1))

	_, err = svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, guestbook.ErrNotFound)

	all, err = svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), *all[0].ID)
}
