package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/vidora/internal/models"
)

type SubscriptionStore struct {
	pool *pgxpool.Pool
}

func NewSubscriptionStore(pool *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{pool: pool}
}

// Toggle follows the same delete-then-insert scheme as LikeStore.Toggle.
func (s *SubscriptionStore) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`
	if _, err := s.pool.Exec(ctx, query, subscriberID, channelID); err != nil {
		return false, wrap("insert subscription", err)
	}
	return true, nil
}

func (s *SubscriptionStore) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, subscriberID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return exists, nil
}

func (s *SubscriptionStore) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelSummary, error) {
	query := `
		SELECT u.id, u.full_name, u.username, u.avatar, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := s.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return collectChannelSummaries(rows, "subscribers")
}

func (s *SubscriptionStore) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelSummary, error) {
	query := `
		SELECT u.id, u.full_name, u.username, u.avatar, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := s.pool.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed channels: %w", err)
	}
	return collectChannelSummaries(rows, "subscribed channels")
}

func collectChannelSummaries(rows pgx.Rows, op string) ([]models.ChannelSummary, error) {
	defer rows.Close()

	channels := make([]models.ChannelSummary, 0)
	for rows.Next() {
		var c models.ChannelSummary
		if err := rows.Scan(&c.ID, &c.FullName, &c.Username, &c.Avatar, &c.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return channels, nil
}
