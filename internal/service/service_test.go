package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository/memory"
	"github.com/lalith-99/vidora/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testEnv wires every service to one memory database and asset store.
type testEnv struct {
	db     *memory.DB
	assets *storage.MemoryStore

	users         *UserService
	videos        *VideoService
	comments      *CommentService
	tweets        *TweetService
	likes         *LikeService
	playlists     *PlaylistService
	subscriptions *SubscriptionService
	reads         *ReadModel
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	db := memory.New()
	assets := storage.NewMemoryStore()
	tokens := auth.NewTokenIssuer("test-access", "test-refresh", time.Minute, time.Hour)

	return &testEnv{
		db:            db,
		assets:        assets,
		users:         NewUserService(db.Users(), memory.NewSessionStore(), tokens, assets, logger),
		videos:        NewVideoService(db.Videos(), db.Users(), assets, logger),
		comments:      NewCommentService(db.Comments(), db.Videos(), logger),
		tweets:        NewTweetService(db.Tweets(), db.Users(), logger),
		likes:         NewLikeService(db.Likes(), db.Videos(), db.Comments(), db.Tweets(), logger),
		playlists:     NewPlaylistService(db.Playlists(), db.Videos(), db.Users(), logger),
		subscriptions: NewSubscriptionService(db.Subscriptions(), db.Users(), logger),
		reads:         NewReadModel(db.ReadModel(), db.Videos(), logger),
	}
}

func testFile(name string) *storage.File {
	const body = "file-bytes"
	return &storage.File{
		Name:        name,
		ContentType: "application/octet-stream",
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

// createUser inserts a user straight into the store, skipping bcrypt.
func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.db.Users().Create(context.Background(), &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Avatar:   "memory://assets/avatars/" + username + ".png",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) publish(t *testing.T, owner uuid.UUID, title string, published bool) *models.Video {
	t.Helper()
	v, err := e.videos.Publish(context.Background(), owner, PublishVideoInput{
		Title:       title,
		Description: title + " description",
		Duration:    60,
		IsPublished: &published,
		VideoFile:   testFile(title + ".mp4"),
	})
	require.NoError(t, err)
	return v
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), "error: %v", err)
}

func TestOrderByIDsKeepsDuplicatesAndSkipsMissing(t *testing.T) {
	a, b, gone := uuid.New(), uuid.New(), uuid.New()
	videos := []models.VideoView{{ID: b}, {ID: a}}

	ordered := orderByIDs([]uuid.UUID{a, b, gone, a}, videos)

	ids := make([]uuid.UUID, 0, len(ordered))
	for _, v := range ordered {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []uuid.UUID{a, b, a}, ids)
}

func TestFilterVisible(t *testing.T) {
	owner := uuid.New()
	videos := []models.VideoView{
		{ID: uuid.New(), IsPublished: true, Owner: models.OwnerSummary{ID: uuid.New()}},
		{ID: uuid.New(), IsPublished: false, Owner: models.OwnerSummary{ID: uuid.New()}},
		{ID: uuid.New(), IsPublished: false, Owner: models.OwnerSummary{ID: owner}},
	}
	want := []uuid.UUID{videos[0].ID, videos[2].ID}

	visible := filterVisible(videos, owner)
	require.Len(t, visible, 2)
	assert.Equal(t, want[0], visible[0].ID)
	assert.Equal(t, want[1], visible[1].ID)
}

func TestLoadOwned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	video := env.publish(t, owner.ID, "clip", true)

	got, err := loadOwned(ctx, env.db.Videos().GetByID, video.ID, owner.ID, "video")
	require.NoError(t, err)
	assert.Equal(t, video.ID, got.ID)

	_, err = loadOwned(ctx, env.db.Videos().GetByID, video.ID, other.ID, "video")
	assertKind(t, err, apperr.KindForbidden)
	assert.Equal(t, "You are not the owner of this video", apperr.Message(err))

	_, err = loadOwned(ctx, env.db.Videos().GetByID, uuid.New(), owner.ID, "video")
	assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Video not found", apperr.Message(err))
}
