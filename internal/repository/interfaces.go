package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
)

// Conventions shared by every implementation:
//
//   - context.Context is the first parameter of every method.
//   - Single-row lookups return nil, nil when the row does not exist.
//   - List methods return an empty slice, never nil.
//   - A unique-index violation is reported as ErrDuplicate (wrapped).

// ErrDuplicate is returned when a write would violate a uniqueness rule.
var ErrDuplicate = errors.New("duplicate key")

type UserRepository interface {
	// Create inserts u and returns it with ID and timestamps populated.
	Create(ctx context.Context, u *models.User) (*models.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmailOrUsername returns the first user matching either value.
	// An empty argument never matches.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)

	// UpdateAccount sets full name and email. Returns nil, nil if the user
	// does not exist.
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// AppendWatchHistory pushes videoID to the end of the user's history.
	AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

// VideoSortField is a sortable video column. Only the constants below
// are valid; implementations map them to their own column names.
type VideoSortField string

const (
	SortByCreatedAt VideoSortField = "createdAt"
	SortByViews     VideoSortField = "views"
	SortByDuration  VideoSortField = "duration"
	SortByTitle     VideoSortField = "title"
)

// VideoQuery describes one page of a video listing.
type VideoQuery struct {
	// Search is matched case-insensitively as a substring of title or
	// description. Empty disables the filter.
	Search string
	// OwnerID restricts the listing to one channel when non-nil.
	OwnerID *uuid.UUID
	// IncludeUnpublished lists unpublished videos as well.
	IncludeUnpublished bool
	SortField          VideoSortField
	Descending         bool
	Offset             int
	Limit              int
}

// VideoUpdate holds the fields to change; nil fields are left alone.
type VideoUpdate struct {
	Title       *string
	Description *string
	Duration    *float64
	Thumbnail   *string
	VideoFile   *string
}

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// GetView returns the video with its owner resolved.
	GetView(ctx context.Context, id uuid.UUID) (*models.VideoView, error)

	// List returns one page of videos plus the total matching count.
	List(ctx context.Context, q VideoQuery) ([]models.VideoView, int64, error)

	// ListByIDs resolves ids to videos in no particular order. Unknown ids
	// are skipped. Callers that need the input order must reorder.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.VideoView, error)

	// ListByOwner returns all of a channel's videos, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error)

	Update(ctx context.Context, id uuid.UUID, upd VideoUpdate) (*models.Video, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Video, error)

	// IncrementViews adds one view and returns the updated video, or
	// nil, nil if it does not exist.
	IncrementViews(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// Delete removes the video together with its comments, its likes and
	// its playlist memberships.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	// Delete removes the comment and the likes on it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type TweetRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	// ListByOwner returns a user's tweets, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LikeRepository interface {
	// Toggle removes the owner's like on target if present and adds it
	// otherwise. It reports whether the like exists afterwards. A unique
	// index backs the pair, so concurrent toggles never leave two rows.
	Toggle(ctx context.Context, ownerID uuid.UUID, target models.LikeTarget) (bool, error)

	// ListLikedVideos returns the videos the owner liked, most recently
	// liked first, restricted to videos the owner may see.
	ListLikedVideos(ctx context.Context, ownerID uuid.UUID) ([]models.VideoView, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error)
	// Update changes the non-nil fields.
	Update(ctx context.Context, id uuid.UUID, name, description *string) (*models.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo appends videoID. ErrDuplicate if it is already present.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	// RemoveVideo removes videoID. No-op if it is not present.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}

type SubscriptionRepository interface {
	// Toggle flips the (subscriber, channel) pair and reports whether the
	// subscription exists afterwards. Same concurrency guarantee as likes.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)

	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)

	// ListSubscribers returns the users subscribed to channelID, newest first.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelSummary, error)
	// ListSubscribedChannels returns the channels subscriberID follows, newest first.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelSummary, error)
}

// ReadModelRepository answers the cross-entity questions that a single
// row lookup cannot: channel profiles, dashboard totals, comment pages
// and watch history.
type ReadModelRepository interface {
	// ChannelProfile looks a channel up by its (lower-cased) username.
	// requesterID may be uuid.Nil for anonymous requests.
	ChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error)

	CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	// CountVideoLikes counts likes on every video the channel owns.
	CountVideoLikes(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// VideoComments returns one page of a video's comments, newest first,
	// plus the video's total comment count.
	VideoComments(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]models.CommentView, int64, error)

	// WatchHistory returns the user's stored history sequence and the
	// videos it references, in no particular order. found is false when
	// the user does not exist.
	WatchHistory(ctx context.Context, userID uuid.UUID) (ids []uuid.UUID, videos []models.VideoView, found bool, err error)
}

// SessionRepository keeps the one valid refresh token per user.
type SessionRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	// ConsumeRefreshToken deletes the stored token if it equals token and
	// reports whether it did. Compare and delete are one atomic step, so
	// a token is accepted at most once.
	ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
	Ping(ctx context.Context) error
}
