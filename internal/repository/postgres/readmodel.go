package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/vidora/internal/models"
)

// ReadModelStore serves the joined and aggregated reads.
type ReadModelStore struct {
	pool *pgxpool.Pool
}

func NewReadModelStore(pool *pgxpool.Pool) *ReadModelStore {
	return &ReadModelStore{pool: pool}
}

func (s *ReadModelStore) ChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error) {
	query := `
		SELECT u.id, u.full_name, u.username, u.email, u.avatar, u.cover_image,
		       (SELECT count(*) FROM subscriptions WHERE channel_id = u.id),
		       (SELECT count(*) FROM subscriptions WHERE subscriber_id = u.id),
		       EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = u.id AND subscriber_id = $2)
		FROM users u
		WHERE u.username = $1`

	var p models.ChannelProfile
	err := s.pool.QueryRow(ctx, query, username, requesterID).Scan(
		&p.ID,
		&p.FullName,
		&p.Username,
		&p.Email,
		&p.Avatar,
		&p.CoverImage,
		&p.SubscribersCount,
		&p.ChannelsSubscribedToCount,
		&p.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("channel profile: %w", err)
	}
	return &p, nil
}

func (s *ReadModelStore) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *ReadModelStore) CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.count(ctx, "count videos", `SELECT count(*) FROM videos WHERE owner_id = $1`, ownerID)
}

func (s *ReadModelStore) SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.count(ctx, "sum views", `SELECT COALESCE(sum(views), 0)::bigint FROM videos WHERE owner_id = $1`, ownerID)
}

func (s *ReadModelStore) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	return s.count(ctx, "count subscribers", `SELECT count(*) FROM subscriptions WHERE channel_id = $1`, channelID)
}

func (s *ReadModelStore) CountVideoLikes(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `
		SELECT count(*)
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE v.owner_id = $1`
	return s.count(ctx, "count video likes", query, ownerID)
}

func (s *ReadModelStore) VideoComments(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]models.CommentView, int64, error) {
	total, err := s.count(ctx, "count comments", `SELECT count(*) FROM comments WHERE video_id = $1`, videoID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT c.id, c.content, c.video_id, c.created_at, c.updated_at,
		       u.id, u.username, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, videoID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.CommentView, 0)
	for rows.Next() {
		var c models.CommentView
		err := rows.Scan(
			&c.ID,
			&c.Content,
			&c.VideoID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.Owner.ID,
			&c.Owner.Username,
			&c.Owner.Avatar,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, total, nil
}

// WatchHistory reads the id sequence and then resolves it in one
// round trip. Ids of deleted videos simply do not come back.
func (s *ReadModelStore) WatchHistory(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []models.VideoView, bool, error) {
	var ids []uuid.UUID
	err := s.pool.QueryRow(ctx, `SELECT watch_history FROM users WHERE id = $1`, userID).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("get watch history: %w", err)
	}
	if len(ids) == 0 {
		return make([]uuid.UUID, 0), make([]models.VideoView, 0), true, nil
	}

	rows, err := s.pool.Query(ctx, videoViewSelect+` WHERE v.id = ANY($1)`, ids)
	if err != nil {
		return nil, nil, false, fmt.Errorf("resolve watch history: %w", err)
	}
	videos, err := collectVideoViews(rows, "watch history")
	if err != nil {
		return nil, nil, false, err
	}
	return ids, videos, true, nil
}
