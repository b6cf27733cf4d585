package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/vidora/internal/models"
)

// likeColumns maps a target type to its column in likes. The column name
// is interpolated into SQL, so only values from this map are ever used.
var likeColumns = map[models.LikeTargetType]string{
	models.LikeTargetVideo:   "video_id",
	models.LikeTargetComment: "comment_id",
	models.LikeTargetTweet:   "tweet_id",
}

type LikeStore struct {
	pool *pgxpool.Pool
}

func NewLikeStore(pool *pgxpool.Pool) *LikeStore {
	return &LikeStore{pool: pool}
}

// Toggle deletes first and inserts only if nothing was deleted. Two
// concurrent toggles can both miss the delete; ON CONFLICT DO NOTHING
// then makes the second insert a no-op, so at most one row survives.
func (s *LikeStore) Toggle(ctx context.Context, ownerID uuid.UUID, target models.LikeTarget) (bool, error) {
	column, ok := likeColumns[target.Type]
	if !ok {
		return false, fmt.Errorf("toggle like: unknown target type %q", target.Type)
	}

	del := fmt.Sprintf(`DELETE FROM likes WHERE owner_id = $1 AND %s = $2`, column)
	tag, err := s.pool.Exec(ctx, del, ownerID, target.ID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	ins := fmt.Sprintf(`
		INSERT INTO likes (owner_id, %[1]s)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, %[1]s) DO NOTHING`, column)
	if _, err := s.pool.Exec(ctx, ins, ownerID, target.ID); err != nil {
		return false, wrap("insert like", err)
	}
	return true, nil
}

func (s *LikeStore) ListLikedVideos(ctx context.Context, ownerID uuid.UUID) ([]models.VideoView, error) {
	query := videoViewSelect + `
		JOIN likes l ON l.video_id = v.id
		WHERE l.owner_id = $1 AND (v.is_published OR v.owner_id = $1)
		ORDER BY l.created_at DESC, l.id DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	return collectVideoViews(rows, "liked videos")
}
