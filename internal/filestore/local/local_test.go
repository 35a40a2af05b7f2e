package local

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "finding_1", "Roof Photo.JPG", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "finding_1_"))
	assert.Equal(t, ".jpg", filepath.Ext(key), "extension is kept, lowercased")

	reader, mimeType, err := store.Open(ctx, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
	assert.Equal(t, "image/jpeg", mimeType)

	require.NoError(t, store.Delete(ctx, key))

	_, _, err = store.Open(ctx, key)
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), "nope.jpg")
	assert.Error(t, err)
}

func TestDeleteMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "nope.jpg")
	assert.Error(t, err)
}

func TestRejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../escape.jpg", "../../etc/passwd", "/etc/passwd"} {
		_, _, err := store.Open(ctx, key)
		assert.Error(t, err, "open %q", key)

		err = store.Delete(ctx, key)
		assert.Error(t, err, "delete %q", key)
	}
}

func TestUnknownExtensionFallsBack(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "finding_1", "blob", strings.NewReader("data"))
	require.NoError(t, err)

	reader, mimeType, err := store.Open(ctx, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	assert.Equal(t, "application/octet-stream", mimeType)
}
