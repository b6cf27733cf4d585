package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "maker")
	fan := env.createUser(t, "fan")
	video := env.publish(t, owner.ID, "clip", true)
	draft := env.publish(t, owner.ID, "draft", false)

	_, err := env.comments.Add(ctx, fan.ID, video.ID, "   ")
	assertKind(t, err, apperr.KindInvalidInput)
	_, err = env.comments.Add(ctx, fan.ID, draft.ID, "sneaky")
	assertKind(t, err, apperr.KindNotFound)

	comment, err := env.comments.Add(ctx, fan.ID, video.ID, " great ")
	require.NoError(t, err)
	assert.Equal(t, "great", comment.Content)

	_, err = env.comments.Update(ctx, owner.ID, comment.ID, "edited")
	assertKind(t, err, apperr.KindForbidden)

	edited, err := env.comments.Update(ctx, fan.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	assertKind(t, env.comments.Delete(ctx, owner.ID, comment.ID), apperr.KindForbidden)
	require.NoError(t, env.comments.Delete(ctx, fan.ID, comment.ID))
	assertKind(t, env.comments.Delete(ctx, fan.ID, comment.ID), apperr.KindNotFound)
}

func TestTweetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "author")
	other := env.createUser(t, "other")

	first, err := env.tweets.Create(ctx, author.ID, "first")
	require.NoError(t, err)
	second, err := env.tweets.Create(ctx, author.ID, "second")
	require.NoError(t, err)

	tweets, err := env.tweets.UserTweets(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, second.ID, tweets[0].ID)
	assert.Equal(t, first.ID, tweets[1].ID)

	_, err = env.tweets.Update(ctx, other.ID, first.ID, "")
	assertKind(t, err, apperr.KindForbidden)
	_, err = env.tweets.Update(ctx, author.ID, first.ID, "")
	assertKind(t, err, apperr.KindInvalidInput)

	require.NoError(t, env.tweets.Delete(ctx, author.ID, first.ID))
	tweets, err = env.tweets.UserTweets(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, tweets, 1)

	_, err = env.tweets.UserTweets(ctx, uuid.New())
	assertKind(t, err, apperr.KindNotFound)
}

func TestLikeToggleAlternates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "maker")
	fan := env.createUser(t, "fan")
	video := env.publish(t, owner.ID, "clip", true)
	target := models.LikeTarget{Type: models.LikeTargetVideo, ID: video.ID}

	for i, want := range []bool{true, false, true} {
		liked, err := env.likes.Toggle(ctx, fan.ID, target)
		require.NoError(t, err)
		assert.Equal(t, want, liked, "toggle %d", i)
	}

	liked, err := env.likes.LikedVideos(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, video.ID, liked[0].ID)

	_, err = env.likes.Toggle(ctx, fan.ID, models.LikeTarget{Type: models.LikeTargetTweet, ID: uuid.New()})
	assertKind(t, err, apperr.KindNotFound)
	_, err = env.likes.Toggle(ctx, fan.ID, models.LikeTarget{Type: "playlist", ID: video.ID})
	assertKind(t, err, apperr.KindInvalidInput)
}

func TestLikeCommentAndTweet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "maker")
	video := env.publish(t, owner.ID, "clip", true)
	comment, err := env.comments.Add(ctx, owner.ID, video.ID, "pinned")
	require.NoError(t, err)
	tweet, err := env.tweets.Create(ctx, owner.ID, "hello")
	require.NoError(t, err)

	liked, err := env.likes.Toggle(ctx, owner.ID, models.LikeTarget{Type: models.LikeTargetComment, ID: comment.ID})
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = env.likes.Toggle(ctx, owner.ID, models.LikeTarget{Type: models.LikeTargetTweet, ID: tweet.ID})
	require.NoError(t, err)
	assert.True(t, liked)

	// Only video likes count toward the channel.
	stats, err := env.reads.ChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLikes)
}

func TestSubscriptionToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel := env.createUser(t, "channel")
	fan := env.createUser(t, "fan")

	for i, want := range []bool{true, false, true} {
		subscribed, err := env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
		require.NoError(t, err)
		assert.Equal(t, want, subscribed, "toggle %d", i)
	}

	subscribers, err := env.subscriptions.Subscribers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, fan.ID, subscribers[0].ID)

	channels, err := env.subscriptions.SubscribedChannels(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel.ID, channels[0].ID)

	_, err = env.subscriptions.Toggle(ctx, fan.ID, fan.ID)
	assertKind(t, err, apperr.KindInvalidInput)

	_, err = env.subscriptions.Toggle(ctx, fan.ID, uuid.New())
	assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Channel not found", apperr.Message(err))
}

func TestConcurrentSubscriptionTogglesStayConsistent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel := env.createUser(t, "channel")
	fan := env.createUser(t, "fan")

	const toggles = 20
	var wg sync.WaitGroup
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := env.reads.ChannelStats(ctx, channel.ID)
	require.NoError(t, err)
	// An even number of toggles ends unsubscribed.
	assert.Zero(t, stats.TotalSubscribers)
}
