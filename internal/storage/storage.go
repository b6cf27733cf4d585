// Package storage uploads user assets (videos, thumbnails, avatars,
// cover images) and hands back public URLs.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Folders group objects by what they hold.
const (
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
)

// AssetStore is the upload collaborator. Implementations must be safe
// for concurrent use.
type AssetStore interface {
	// Upload stores size bytes from r and returns the public URL.
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error)
	// Delete removes the object behind url. Unknown URLs are not an error.
	Delete(ctx context.Context, url string) error
}

// File is one uploaded multipart part, opened for reading.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// objectKey builds <folder>/<uuid><ext>. The client's file name only
// contributes its extension.
func objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return folder + "/" + uuid.NewString() + ext
}
