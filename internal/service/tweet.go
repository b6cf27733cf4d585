package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
)

type TweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	logger *zap.Logger
}

func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, logger *zap.Logger) *TweetService {
	return &TweetService{tweets: tweets, users: users, logger: logger}
}

func (s *TweetService) Create(ctx context.Context, actorID uuid.UUID, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("Tweet content is required")
	}

	tweet, err := s.tweets.Create(ctx, actorID, content)
	if err != nil {
		return nil, apperr.Internal("failed to create tweet", err)
	}
	return tweet, nil
}

func (s *TweetService) UserTweets(ctx context.Context, userID uuid.UUID) ([]models.Tweet, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	tweets, err := s.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list tweets", err)
	}
	return tweets, nil
}

func (s *TweetService) CheckOwner(ctx context.Context, actorID, tweetID uuid.UUID) error {
	_, err := loadOwned(ctx, s.tweets.GetByID, tweetID, actorID, "tweet")
	return err
}

func (s *TweetService) Update(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	if _, err := loadOwned(ctx, s.tweets.GetByID, tweetID, actorID, "tweet"); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("Tweet content is required")
	}

	tweet, err := s.tweets.UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, apperr.Internal("failed to update tweet", err)
	}
	if tweet == nil {
		return nil, notFound("tweet")
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, actorID, tweetID uuid.UUID) error {
	if _, err := loadOwned(ctx, s.tweets.GetByID, tweetID, actorID, "tweet"); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return apperr.Internal("failed to delete tweet", err)
	}
	return nil
}
