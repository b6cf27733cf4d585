package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
)

type SubscriptionStore struct {
	db *DB
}

func (s *SubscriptionStore) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for id, sub := range s.db.subscriptions {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			delete(s.db.subscriptions, id)
			return false, nil
		}
	}

	sub := &models.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    s.db.now(),
	}
	s.db.subscriptions[sub.ID] = sub
	return true, nil
}

func (s *SubscriptionStore) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.subscribed(subscriberID, channelID), nil
}

func (s *SubscriptionStore) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelSummary, error) {
	return s.list(func(sub *models.Subscription) (uuid.UUID, bool) {
		return sub.SubscriberID, sub.ChannelID == channelID
	}), nil
}

func (s *SubscriptionStore) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelSummary, error) {
	return s.list(func(sub *models.Subscription) (uuid.UUID, bool) {
		return sub.ChannelID, sub.SubscriberID == subscriberID
	}), nil
}

// list collects the users that pick selects, newest subscription first.
func (s *SubscriptionStore) list(pick func(*models.Subscription) (uuid.UUID, bool)) []models.ChannelSummary {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	subs := make([]*models.Subscription, 0)
	for _, sub := range s.db.subscriptions {
		if _, ok := pick(sub); ok {
			subs = append(subs, sub)
		}
	}
	slices.SortFunc(subs, func(a, b *models.Subscription) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	out := make([]models.ChannelSummary, 0, len(subs))
	for _, sub := range subs {
		userID, _ := pick(sub)
		out = append(out, models.ChannelSummary{
			OwnerSummary: s.db.ownerSummary(userID),
			SubscribedAt: sub.CreatedAt,
		})
	}
	return out
}

// subscribed must be called with mu held.
func (db *DB) subscribed(subscriberID, channelID uuid.UUID) bool {
	for _, sub := range db.subscriptions {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			return true
		}
	}
	return false
}
