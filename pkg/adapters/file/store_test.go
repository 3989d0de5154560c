package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/absm/pkg/adapters/file"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunMachineStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "machines")
	store := file.New(dir)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists nothing")

	require.NoError(t, store.Save(ctx, "hero", &definition.Definition{Version: 1}))
	_, err = os.Stat(filepath.Join(dir, "hero.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	store := file.New(t.TempDir())
	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, id, &definition.Definition{}), id)
	}
	assert.Equal(t, ".absm/machines", filepath.ToSlash(file.New("").BasePath))
}

func TestFileStore_ListsTempLookingIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)
	def := &definition.Definition{Version: 1}

	require.NoError(t, store.Save(ctx, "tmp-walk", def))
	require.NoError(t, store.Save(ctx, "hero", def))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "tmp-walk"}, ids)

	// Stray temp files from an interrupted save are not machines.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hero-123.tmp"), []byte("{}"), 0o644))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "tmp-walk"}, ids)
}
