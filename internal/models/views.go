package models

import (
	"time"

	"github.com/google/uuid"
)

// The types below are read models: joined, projected shapes that are
// computed on read and never stored as-is.

// OwnerSummary is the public-safe projection of a user that gets
// embedded into videos, comments and subscription lists.
type OwnerSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName,omitempty"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

// VideoView is a video with its owner resolved.
type VideoView struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	Owner       OwnerSummary `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (v VideoView) VisibleTo(viewer uuid.UUID) bool {
	return v.IsPublished || v.Owner.ID == viewer
}

// CommentView is a comment with its author projected to id, username
// and avatar.
type CommentView struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	VideoID   uuid.UUID    `json:"videoId"`
	Owner     OwnerSummary `json:"owner"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// PlaylistView is a playlist with its videos resolved, in playlist order.
type PlaylistView struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	Videos      []VideoView `json:"videos"`
	TotalVideos int         `json:"totalVideos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ChannelProfile is the public profile of a channel as seen by one
// requester. IsSubscribed is always false for anonymous requesters.
type ChannelProfile struct {
	ID                        uuid.UUID `json:"id"`
	FullName                  string    `json:"fullName"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

// ChannelStats are the dashboard totals of one channel. Every field is 0
// for a channel without videos or subscribers.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// ChannelSummary is one entry of a subscriber or subscribed-channel list.
type ChannelSummary struct {
	OwnerSummary
	SubscribedAt time.Time `json:"subscribedAt"`
}
