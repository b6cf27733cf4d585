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

const commentColumns = `id, content, video_id, owner_id, created_at, updated_at`

type CommentStore struct {
	pool *pgxpool.Pool
}

func NewCommentStore(pool *pgxpool.Pool) *CommentStore {
	return &CommentStore{pool: pool}
}

func (s *CommentStore) queryComment(ctx context.Context, op, query string, args ...any) (*models.Comment, error) {
	var c models.Comment
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Content,
		&c.VideoID,
		&c.OwnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return &c, nil
}

func (s *CommentStore) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (content, video_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	c, err := s.queryComment(ctx, "insert comment", query, content, videoID, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("insert comment: no row returned")
	}
	return c, nil
}

func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return s.queryComment(ctx, "get comment", query, id)
}

func (s *CommentStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	query := `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + commentColumns
	return s.queryComment(ctx, "update comment", query, id, content)
}

func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
