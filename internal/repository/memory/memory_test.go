package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	u, err := db.Users().Create(context.Background(), &models.User{
		Username: username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestUserUniqueness(t *testing.T) {
	db := New()
	ctx := context.Background()
	seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := db.Users().Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = db.Users().UpdateAccount(ctx, bob.ID, "Bob", "alice@example.com")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	missing, err := db.Users().UpdateAccount(ctx, uuid.New(), "Ghost", "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	db := New()
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	require.NoError(t, db.Users().AppendWatchHistory(ctx, u.ID, uuid.New()))

	got, err := db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Username = "mallory"
	got.WatchHistory[0] = uuid.Nil

	again, err := db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
	assert.NotEqual(t, uuid.Nil, again.WatchHistory[0])
}

func TestLikeToggleIsSetLike(t *testing.T) {
	db := New()
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	target := models.LikeTarget{Type: models.LikeTargetTweet, ID: uuid.New()}

	liked, err := db.Likes().Toggle(ctx, owner.ID, target)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = db.Likes().Toggle(ctx, owner.ID, target)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, db.likes)
}

func TestPlaylistAddVideoDuplicate(t *testing.T) {
	db := New()
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	p, err := db.Playlists().Create(ctx, owner.ID, "p", "d")
	require.NoError(t, err)
	videoID := uuid.New()

	require.NoError(t, db.Playlists().AddVideo(ctx, p.ID, videoID))
	assert.ErrorIs(t, db.Playlists().AddVideo(ctx, p.ID, videoID), repository.ErrDuplicate)

	require.NoError(t, db.Playlists().RemoveVideo(ctx, p.ID, videoID))
	require.NoError(t, db.Playlists().RemoveVideo(ctx, p.ID, videoID))

	got, err := db.Playlists().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Videos)
}

func TestDeleteCommentRemovesItsLikes(t *testing.T) {
	db := New()
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	video, err := db.Videos().Create(ctx, &models.Video{Title: "v", OwnerID: owner.ID, IsPublished: true})
	require.NoError(t, err)
	comment, err := db.Comments().Create(ctx, video.ID, owner.ID, "hi")
	require.NoError(t, err)
	_, err = db.Likes().Toggle(ctx, owner.ID, models.LikeTarget{Type: models.LikeTargetComment, ID: comment.ID})
	require.NoError(t, err)

	require.NoError(t, db.Comments().Delete(ctx, comment.ID))
	assert.Empty(t, db.likes)
}

func TestSubscriptionListsNewestFirst(t *testing.T) {
	db := New()
	ctx := context.Background()
	channel := seedUser(t, db, "channel")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")

	for _, u := range []*models.User{first, second} {
		ok, err := db.Subscriptions().Toggle(ctx, u.ID, channel.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}

	subs, err := db.Subscriptions().ListSubscribers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, second.ID, subs[0].ID)
	assert.Equal(t, first.ID, subs[1].ID)

	exists, err := db.Subscriptions().Exists(ctx, first.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now()
	store.now = func() time.Time { return now }
	userID := uuid.New()

	require.NoError(t, store.SaveRefreshToken(ctx, userID, "token-1", time.Minute))
	now = now.Add(2 * time.Minute)
	ok, err := store.ConsumeRefreshToken(ctx, userID, "token-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeRefreshTokenOnce(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, store.SaveRefreshToken(ctx, userID, "token-1", time.Minute))

	ok, err := store.ConsumeRefreshToken(ctx, userID, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	var wg sync.WaitGroup
	var accepted atomic.Int32
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := store.ConsumeRefreshToken(ctx, userID, "token-1"); err == nil && ok {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), accepted.Load())
}
