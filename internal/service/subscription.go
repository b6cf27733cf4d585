package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
)

type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	logger        *zap.Logger
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users, logger: logger}
}

// Toggle subscribes actorID to channelID or cancels the subscription.
// It reports whether actorID is subscribed afterwards.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID uuid.UUID) (bool, error) {
	if actorID == channelID {
		return false, apperr.InvalidInput("You cannot subscribe to your own channel")
	}
	if err := s.ensureChannel(ctx, channelID); err != nil {
		return false, err
	}

	subscribed, err := s.subscriptions.Toggle(ctx, actorID, channelID)
	if err != nil {
		return false, apperr.Internal("failed to toggle subscription", err)
	}
	return subscribed, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelSummary, error) {
	if err := s.ensureChannel(ctx, channelID); err != nil {
		return nil, err
	}

	subscribers, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to list subscribers", err)
	}
	return subscribers, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelSummary, error) {
	user, err := s.users.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	channels, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, apperr.Internal("failed to list subscribed channels", err)
	}
	return channels, nil
}

func (s *SubscriptionService) ensureChannel(ctx context.Context, channelID uuid.UUID) error {
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return apperr.Internal("failed to load channel", err)
	}
	if channel == nil {
		return notFound("channel")
	}
	return nil
}
