package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wordgraph/internal/adapters/file"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TraceStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunTraceStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesArrowText(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, store.Save(context.Background(), "random_walk", domain.Trace{"a", "b", "a", "b"}))

	data, err := os.ReadFile(filepath.Join(dir, "random_walk.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a -> b -> a -> b\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_DefaultsToWorkingDirectory(t *testing.T) {
	store := file.New("")
	assert.Equal(t, "random_walk.txt", store.Path("random_walk"))
}

func TestFileStore_RejectsUnsafeSessionIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", "..", "with space"} {
		assert.ErrorIs(t, store.Save(ctx, id, domain.Trace{"a"}), domain.ErrInvalidSessionID, id)
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidSessionID, id)
	}
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
