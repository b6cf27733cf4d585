package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/vidora/internal/db"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testPool connects to DATABASE_URL and applies the schema. Tests that
// need it are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, url, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(database.Close)
	require.NoError(t, database.Migrate(ctx))
	return database.Pool()
}

// seed creates a user whose name cannot collide with earlier runs.
func seed(t *testing.T, users *UserStore, prefix string) *models.User {
	t.Helper()
	name := fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
	u, err := users.Create(context.Background(), &models.User{
		Username:     name,
		Email:        name + "@example.com",
		FullName:     "Test " + prefix,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = users.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func seedVideo(t *testing.T, videos *VideoStore, owner uuid.UUID, title string) *models.Video {
	t.Helper()
	v, err := videos.Create(context.Background(), &models.Video{
		Title:       title,
		Description: "about " + title,
		VideoFile:   "memory://assets/videos/" + title,
		IsPublished: true,
		OwnerID:     owner,
	})
	require.NoError(t, err)
	return v
}

func TestReadModelChannelProfile(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users, subs, reads := NewUserStore(pool), NewSubscriptionStore(pool), NewReadModelStore(pool)

	channel := seed(t, users, "channel")
	fan := seed(t, users, "fan")
	_, err := subs.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)

	profile, err := reads.ChannelProfile(ctx, channel.Username, fan.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.Zero(t, profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	anonymous, err := reads.ChannelProfile(ctx, channel.Username, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)

	missing, err := reads.ChannelProfile(ctx, "no-such-channel-"+uuid.NewString(), uuid.Nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReadModelChannelStats(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users, videos, likes, subs, reads := NewUserStore(pool), NewVideoStore(pool), NewLikeStore(pool), NewSubscriptionStore(pool), NewReadModelStore(pool)

	empty := seed(t, users, "empty")
	for name, count := range map[string]func(context.Context, uuid.UUID) (int64, error){
		"videos":      reads.CountVideos,
		"views":       reads.SumViews,
		"subscribers": reads.CountSubscribers,
		"likes":       reads.CountVideoLikes,
	} {
		n, err := count(ctx, empty.ID)
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}

	owner := seed(t, users, "owner")
	fan := seed(t, users, "fan")
	first := seedVideo(t, videos, owner.ID, "first")
	second := seedVideo(t, videos, owner.ID, "second")
	for range 3 {
		_, err := videos.IncrementViews(ctx, first.ID)
		require.NoError(t, err)
	}
	_, err := likes.Toggle(ctx, fan.ID, models.LikeTarget{Type: models.LikeTargetVideo, ID: first.ID})
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, owner.ID, models.LikeTarget{Type: models.LikeTargetVideo, ID: second.ID})
	require.NoError(t, err)
	_, err = subs.Toggle(ctx, fan.ID, owner.ID)
	require.NoError(t, err)

	n, err := reads.CountVideos(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = reads.SumViews(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = reads.CountSubscribers(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = reads.CountVideoLikes(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestReadModelVideoCommentsPaging(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users, videos, comments, reads := NewUserStore(pool), NewVideoStore(pool), NewCommentStore(pool), NewReadModelStore(pool)

	owner := seed(t, users, "commenter")
	video := seedVideo(t, videos, owner.ID, "talked-about")
	for i := range 15 {
		_, err := comments.Create(ctx, video.ID, owner.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	first, total, err := reads.VideoComments(ctx, video.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	require.Len(t, first, 10)

	second, _, err := reads.VideoComments(ctx, video.ID, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 5)

	all := append(first, second...)
	seen := make(map[uuid.UUID]bool, len(all))
	for i, c := range all {
		assert.False(t, seen[c.ID], "comment repeated across pages")
		seen[c.ID] = true
		assert.Equal(t, owner.Username, c.Owner.Username)
		if i > 0 {
			assert.False(t, c.CreatedAt.After(all[i-1].CreatedAt), "comments not newest first")
		}
	}

	beyond, total, err := reads.VideoComments(ctx, video.ID, 1<<40, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, int64(15), total)
}

func TestReadModelWatchHistory(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users, videos, reads := NewUserStore(pool), NewVideoStore(pool), NewReadModelStore(pool)

	owner := seed(t, users, "uploader")
	viewer := seed(t, users, "viewer")
	a := seedVideo(t, videos, owner.ID, "a")
	b := seedVideo(t, videos, owner.ID, "b")
	c := seedVideo(t, videos, owner.ID, "c")
	for _, id := range []uuid.UUID{b.ID, a.ID, c.ID, b.ID} {
		require.NoError(t, users.AppendWatchHistory(ctx, viewer.ID, id))
	}
	require.NoError(t, videos.Delete(ctx, c.ID))

	ids, resolved, found, err := reads.WatchHistory(ctx, viewer.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID, c.ID, b.ID}, ids)

	got := make([]uuid.UUID, 0, len(resolved))
	for _, v := range resolved {
		got = append(got, v.ID)
		assert.Equal(t, owner.Username, v.Owner.Username)
	}
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, got)

	_, _, found, err = reads.WatchHistory(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}
