package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelStatsEmptyChannel(t *testing.T) {
	env := newTestEnv(t)
	channel := env.createUser(t, "quiet")

	stats, err := env.reads.ChannelStats(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{}, *stats)
}

func TestChannelStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel := env.createUser(t, "busy")
	fans := []*models.User{env.createUser(t, "fan1"), env.createUser(t, "fan2")}

	a := env.publish(t, channel.ID, "a", true)
	env.publish(t, channel.ID, "b", false)

	for _, fan := range fans {
		_, err := env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
		require.NoError(t, err)
		_, err = env.likes.Toggle(ctx, fan.ID, models.LikeTarget{Type: models.LikeTargetVideo, ID: a.ID})
		require.NoError(t, err)
		_, err = env.videos.IncrementView(ctx, a.ID, fan.ID)
		require.NoError(t, err)
	}
	_, err := env.videos.IncrementView(ctx, a.ID, uuid.Nil)
	require.NoError(t, err)

	stats, err := env.reads.ChannelStats(ctx, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{
		TotalVideos:      2,
		TotalViews:       3,
		TotalSubscribers: 2,
		TotalLikes:       2,
	}, *stats)
}

func TestVideoCommentsPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "maker")
	video := env.publish(t, owner.ID, "clip", true)

	for i := range 15 {
		_, err := env.comments.Add(ctx, owner.ID, video.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	page, err := env.reads.VideoComments(ctx, video.ID, 2, 10, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "comment 4", page.Items[0].Content)
	assert.Equal(t, "comment 0", page.Items[4].Content)
	assert.Equal(t, "maker", page.Items[0].Owner.Username)

	first, err := env.reads.VideoComments(ctx, video.ID, 0, 0, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, first.Items, models.DefaultPageLimit)
	assert.Equal(t, "comment 14", first.Items[0].Content)

	beyond, err := env.reads.VideoComments(ctx, video.ID, 5, 10, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)

	_, err = env.reads.VideoComments(ctx, uuid.New(), 1, 10, uuid.Nil)
	assertKind(t, err, apperr.KindNotFound)
}

func TestWatchHistoryOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "maker")
	viewer := env.createUser(t, "viewer")
	a := env.publish(t, owner.ID, "a", true)
	b := env.publish(t, owner.ID, "b", true)
	c := env.publish(t, owner.ID, "c", true)

	for _, id := range []uuid.UUID{a.ID, b.ID, a.ID, c.ID} {
		_, err := env.videos.IncrementView(ctx, id, viewer.ID)
		require.NoError(t, err)
	}
	require.NoError(t, env.videos.Delete(ctx, owner.ID, c.ID))
	_, err := env.videos.TogglePublish(ctx, owner.ID, b.ID)
	require.NoError(t, err)

	history, err := env.reads.WatchHistory(ctx, viewer.ID)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(history))
	for _, v := range history {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []uuid.UUID{a.ID, a.ID}, ids)

	_, err = env.reads.WatchHistory(ctx, uuid.New())
	assertKind(t, err, apperr.KindNotFound)
}

func TestChannelProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel := env.createUser(t, "star")
	fan := env.createUser(t, "fan")
	_, err := env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	_, err = env.subscriptions.Toggle(ctx, channel.ID, fan.ID)
	require.NoError(t, err)

	profile, err := env.reads.ChannelProfile(ctx, " STAR ", fan.ID)
	require.NoError(t, err)
	assert.Equal(t, channel.ID, profile.ID)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	anonymous, err := env.reads.ChannelProfile(ctx, "star", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)

	_, err = env.reads.ChannelProfile(ctx, "", fan.ID)
	assertKind(t, err, apperr.KindInvalidInput)

	_, err = env.reads.ChannelProfile(ctx, "nobody", fan.ID)
	assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Channel does not exist", apperr.Message(err))
}
