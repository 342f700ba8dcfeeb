package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestbook/internal/adapters/driven/filestore"
	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
	"guestbook/internal/core/service/guestbook/guestbooktest"
)

const testData = `[
	{"id": 1, "user": "john", "comment": "Great Comment"},
	{"id": 5, "user": "jane", "comment": "Me Too!"}
]`

func setupTestEnvironment(t *testing.T, initialData string) *filestore.FileStore {
	t.Helper()

	tempDir := t.TempDir()
	tempDBFilename := filepath.Join(tempDir, "test_guestbook.json")

	err := os.WriteFile(tempDBFilename, []byte(initialData), 0644)
	require.NoError(t, err, "Failed to write initial test data")

	store, err := filestore.New(tempDBFilename)
	require.NoError(t, err, "Failed to initialize store")

	return store
}

func TestFileStoreContract(t *testing.T) {
	guestbooktest.StoreContract(t, func(t *testing.T) guestbook.Store {
		store, err := filestore.New(filepath.Join(t.TempDir(), "test_guestbook.json"))
		require.NoError(t, err)

		return store
	})
}

func TestFileStoreLoad(t *testing.T) {
	testCases := map[string]struct {
		initialData string
		wantUsers   []string
		wantErr     bool
	}{
		"ok - seeded file": {
			initialData: testData,
			wantUsers:   []string{"john", "jane"},
		},
		"ok - empty file": {
			initialData: "",
			wantUsers:   []string{},
		},
		"error - not json": {
			initialData: "definitely not json",
			wantErr:     true,
		},
		"error - entry without id": {
			initialData: `[{"user": "john", "comment": "no id"}]`,
			wantErr:     true,
		},
		"error - duplicate ids": {
			initialData: `[{"id": 1, "user": "a", "comment": "x"}, {"id": 1, "user": "b", "comment": "y"}]`,
			wantErr:     true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tempDBFilename := filepath.Join(t.TempDir(), "test_guestbook.json")
			require.NoError(t, os.WriteFile(tempDBFilename, []byte(tc.initialData), 0644))

			store, err := filestore.New(tempDBFilename)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, guestbook.ErrStoreUnavailable)
				return
			}

			require.NoError(t, err)

			entries, err := store.List(context.Background())
			require.NoError(t, err)

			users := make([]string, 0, len(entries))
			for _, e := range entries {
				users = append(users, e.User)
			}
			assert.Equal(t, tc.wantUsers, users)
		})
	}
}

func TestFileStoreCountsFromHighestSeededID(t *testing.T) {
	store := setupTestEnvironment(t, testData)

	created, err := store.Insert(context.Background(), domain.Entry{User: "ann", Comment: "hello"})
	require.NoError(t, err)

	// seeded file holds ids 1 and 5, so the next insert must go past 5
	assert.Equal(t, int64(6), *created.ID)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	tempDBFilename := filepath.Join(t.TempDir(), "test_guestbook.json")

	store, err := filestore.New(tempDBFilename)
	require.NoError(t, err)

	created, err := store.Insert(ctx, domain.Entry{User: "john", Comment: "Great Comment"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := filestore.New(tempDBFilename)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, *created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Great Comment", got.Comment)
}

func TestFileStoreWatchReloadsExternalEdits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tempDir := t.TempDir()
	tempDBFilename := filepath.Join(tempDir, "test_guestbook.json")
	require.NoError(t, os.WriteFile(tempDBFilename, []byte(testData), 0644))

	store, err := filestore.New(tempDBFilename)
	require.NoError(t, err)
	require.NoError(t, store.Watch(ctx))

	// edit the file behind the store's back
	edited := `[{"id": 9, "user": "mallory", "comment": "edited on disk"}]`
	require.NoError(t, os.WriteFile(tempDBFilename, []byte(edited), 0644))

	require.Eventually(t, func() bool {
		entries, err := store.List(ctx)
		if err != nil || len(entries) != 1 {
			return false
		}
		return entries[0].User == "mallory"
	}, 5*time.Second, 50*time.Millisecond, "store never picked up the on-disk edit")
}
