package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	content := "fake image bytes"
	err = store.Put(context.Background(), "part.jpg", strings.NewReader(content), int64(len(content)), "image/jpeg")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "part.jpg"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	err = store.Delete(context.Background(), "part.jpg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "part.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteMissingIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.jpg"))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../secret", "a/b.jpg", `a\b.jpg`} {
		assert.Error(t, store.Put(context.Background(), key, strings.NewReader("x"), 1, ""), "key %q", key)
		assert.Error(t, store.Delete(context.Background(), key), "key %q", key)
	}
}

func TestLocalStorePublicPath(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/uploads/part.jpg", store.PublicPath("part.jpg"))
}

func TestNewKeyKeepsExtension(t *testing.T) {
	key := NewKey("My Photo.JPG")
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, NewKey("a.png"), NewKey("a.png"))
}
