// Package memory implements the repository interfaces in process memory.
// It mirrors the Postgres schema rules that callers depend on: unique
// keys surface as repository.ErrDuplicate and deletes cascade the same
// way the foreign keys do. Every value handed out is a copy.
package memory

import (
	"bytes"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
)

var (
	_ repository.UserRepository         = (*UserStore)(nil)
	_ repository.VideoRepository        = (*VideoStore)(nil)
	_ repository.CommentRepository      = (*CommentStore)(nil)
	_ repository.TweetRepository        = (*TweetStore)(nil)
	_ repository.LikeRepository         = (*LikeStore)(nil)
	_ repository.PlaylistRepository     = (*PlaylistStore)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionStore)(nil)
	_ repository.ReadModelRepository    = (*ReadModelStore)(nil)
	_ repository.SessionRepository      = (*SessionStore)(nil)
)

// epoch anchors the store clock. Each write advances it by one
// millisecond, so creation order and timestamp order always agree.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DB is the shared state behind all memory stores.
type DB struct {
	mu   sync.RWMutex
	tick int64

	users         map[uuid.UUID]*models.User
	videos        map[uuid.UUID]*models.Video
	comments      map[uuid.UUID]*models.Comment
	tweets        map[uuid.UUID]*models.Tweet
	likes         map[uuid.UUID]*models.Like
	playlists     map[uuid.UUID]*models.Playlist
	subscriptions map[uuid.UUID]*models.Subscription
}

func New() *DB {
	return &DB{
		users:         make(map[uuid.UUID]*models.User),
		videos:        make(map[uuid.UUID]*models.Video),
		comments:      make(map[uuid.UUID]*models.Comment),
		tweets:        make(map[uuid.UUID]*models.Tweet),
		likes:         make(map[uuid.UUID]*models.Like),
		playlists:     make(map[uuid.UUID]*models.Playlist),
		subscriptions: make(map[uuid.UUID]*models.Subscription),
	}
}

func (db *DB) Users() *UserStore                 { return &UserStore{db: db} }
func (db *DB) Videos() *VideoStore               { return &VideoStore{db: db} }
func (db *DB) Comments() *CommentStore           { return &CommentStore{db: db} }
func (db *DB) Tweets() *TweetStore               { return &TweetStore{db: db} }
func (db *DB) Likes() *LikeStore                 { return &LikeStore{db: db} }
func (db *DB) Playlists() *PlaylistStore         { return &PlaylistStore{db: db} }
func (db *DB) Subscriptions() *SubscriptionStore { return &SubscriptionStore{db: db} }
func (db *DB) ReadModel() *ReadModelStore        { return &ReadModelStore{db: db} }

// now must be called with mu held for writing.
func (db *DB) now() time.Time {
	db.tick++
	return epoch.Add(time.Duration(db.tick) * time.Millisecond)
}

// newerFirst orders by creation time descending with the id as the
// tie-breaker, matching ORDER BY created_at DESC, id DESC.
func newerFirst(at, bt time.Time, aid, bid uuid.UUID) int {
	if c := bt.Compare(at); c != 0 {
		return c
	}
	return bytes.Compare(bid[:], aid[:])
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.WatchHistory = cloneIDs(u.WatchHistory)
	return &c
}

func clonePlaylist(p *models.Playlist) *models.Playlist {
	c := *p
	c.Videos = cloneIDs(p.Videos)
	return &c
}

func (db *DB) ownerSummary(id uuid.UUID) models.OwnerSummary {
	u, ok := db.users[id]
	if !ok {
		return models.OwnerSummary{ID: id}
	}
	return models.OwnerSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

func (db *DB) videoView(v *models.Video) models.VideoView {
	return models.VideoView{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       db.ownerSummary(v.OwnerID),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// deleteLikesOn removes every like on target.
// Must be called with mu held for writing.
func (db *DB) deleteLikesOn(target models.LikeTarget) {
	for id, l := range db.likes {
		if l.Target == target {
			delete(db.likes, id)
		}
	}
}
