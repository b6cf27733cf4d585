package postgres

import "github.com/lalith-99/vidora/internal/repository"

var (
	_ repository.UserRepository         = (*UserStore)(nil)
	_ repository.VideoRepository        = (*VideoStore)(nil)
	_ repository.CommentRepository      = (*CommentStore)(nil)
	_ repository.TweetRepository        = (*TweetStore)(nil)
	_ repository.LikeRepository         = (*LikeStore)(nil)
	_ repository.PlaylistRepository     = (*PlaylistStore)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionStore)(nil)
	_ repository.ReadModelRepository    = (*ReadModelStore)(nil)
)
