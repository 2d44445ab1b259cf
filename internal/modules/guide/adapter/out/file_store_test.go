package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guideout "ritualcoach/internal/modules/guide/adapter/out"
	apperrors "ritualcoach/internal/platform/errors"
)

func TestFileStoreReadWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "guides")
	store := guideout.NewFileStore(dir)

	_, found, err := store.Read(ctx, "smarta.md")
	require.NoError(t, err)
	assert.False(t, found)

	path, err := store.Write(ctx, "smarta.md", "# Smarta\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "smarta.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Smarta\n", string(raw))

	content, found, err := store.Read(ctx, "smarta.md")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "# Smarta\n", content)
}

func TestFileStoreRejectsPaths(t *testing.T) {
	t.Parallel()
	store := guideout.NewFileStore(t.TempDir())
	for _, name := range []string{"", "../escape.md", "a/b.md", ".hidden"} {
		_, err := store.Write(context.Background(), name, "x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, name)
	}
}
