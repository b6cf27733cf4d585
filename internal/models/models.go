package models

import (
	"time"

	"github.com/google/uuid"
)

// JSON field names are camelCase: the web client was written against
// that shape and every response uses it.

// User is an account and, at the same time, a channel other users can
// subscribe to.
//
// Username and Email are stored lower-cased; both are unique.
// PasswordHash is a bcrypt hash and is never serialized.
//
// WatchHistory is the ordered list of watched video ids, oldest first.
// It may reference videos that were deleted since; readers skip those.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullName"`
	Avatar       string      `json:"avatar"`
	CoverImage   string      `json:"coverImage"`
	PasswordHash string      `json:"-"`
	WatchHistory []uuid.UUID `json:"watchHistory"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Owned is implemented by entities that only their owner may mutate.
type Owned interface {
	OwnedBy() uuid.UUID
}

// Video is an uploaded video. VideoFile and Thumbnail are public URLs
// handed back by the asset store; the service never reads the bytes.
type Video struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v *Video) OwnedBy() uuid.UUID { return v.OwnerID }

// VisibleTo reports whether viewer may see the video. Unpublished videos
// are only visible to their owner.
func (v *Video) VisibleTo(viewer uuid.UUID) bool {
	return v.IsPublished || v.OwnerID == viewer
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	VideoID   uuid.UUID `json:"videoId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) OwnedBy() uuid.UUID { return c.OwnerID }

// Tweet is a short text post on a channel's community tab.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	OwnerID   uuid.UUID `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tweet) OwnedBy() uuid.UUID { return t.OwnerID }

// Playlist holds an ordered list of video ids. Membership has set
// semantics: a video appears at most once.
type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	Videos      []uuid.UUID `json:"videos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p *Playlist) OwnedBy() uuid.UUID { return p.OwnerID }

// Subscription links a subscriber to a channel (both are users).
// At most one row exists per (SubscriberID, ChannelID).
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriberId"`
	ChannelID    uuid.UUID `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LikeTargetType names the kind of entity a like points at.
type LikeTargetType string

const (
	LikeTargetVideo   LikeTargetType = "video"
	LikeTargetComment LikeTargetType = "comment"
	LikeTargetTweet   LikeTargetType = "tweet"
)

func (t LikeTargetType) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// LikeTarget identifies the liked entity.
type LikeTarget struct {
	Type LikeTargetType `json:"type"`
	ID   uuid.UUID      `json:"id"`
}

// Like is one user's like on one target. At most one row exists per
// (OwnerID, Target).
type Like struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"likedBy"`
	Target    LikeTarget `json:"target"`
	CreatedAt time.Time  `json:"createdAt"`
}
