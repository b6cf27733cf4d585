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

const tweetColumns = `id, content, owner_id, created_at, updated_at`

type TweetStore struct {
	pool *pgxpool.Pool
}

func NewTweetStore(pool *pgxpool.Pool) *TweetStore {
	return &TweetStore{pool: pool}
}

func scanTweet(row pgx.Row) (*models.Tweet, error) {
	var t models.Tweet
	if err := row.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TweetStore) Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error) {
	query := `
		INSERT INTO tweets (content, owner_id)
		VALUES ($1, $2)
		RETURNING ` + tweetColumns

	t, err := scanTweet(s.pool.QueryRow(ctx, query, content, ownerID))
	if err != nil {
		return nil, wrap("insert tweet", err)
	}
	return t, nil
}

func (s *TweetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE id = $1`

	t, err := scanTweet(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tweet: %w", err)
	}
	return t, nil
}

func (s *TweetStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error) {
	query := `
		SELECT ` + tweetColumns + `
		FROM tweets
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer rows.Close()

	tweets := make([]models.Tweet, 0)
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return tweets, nil
}

func (s *TweetStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error) {
	query := `
		UPDATE tweets SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + tweetColumns

	t, err := scanTweet(s.pool.QueryRow(ctx, query, id, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return t, nil
}

func (s *TweetStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return nil
}
