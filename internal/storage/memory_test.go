package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey(FolderThumbnails, "Holiday.PNG")
	assert.True(t, strings.HasPrefix(key, "thumbnails/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, objectKey(FolderThumbnails, "Holiday.PNG"))

	assert.NotContains(t, objectKey(FolderVideos, "../../etc/passwd"), "..")
}

func TestMemoryStoreUploadAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	url, err := store.Upload(ctx, FolderVideos, "clip.mp4", "video/mp4", strings.NewReader("bytes"), 5)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, memoryBaseURL+"videos/"))
	assert.True(t, store.Has(url))

	require.NoError(t, store.Delete(ctx, url))
	assert.False(t, store.Has(url))
	assert.NoError(t, store.Delete(ctx, "https://elsewhere.test/x.png"))
}

func TestMemoryStoreFail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	store.Fail(boom)
	_, err := store.Upload(ctx, FolderAvatars, "a.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())

	store.Fail(nil)
	_, err = store.Upload(ctx, FolderAvatars, "a.png", "image/png", strings.NewReader("x"), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
