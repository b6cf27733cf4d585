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

// playlistSelect aggregates member ids in insertion order. FILTER drops
// the NULL that the LEFT JOIN yields for an empty playlist.
const playlistSelect = `
	SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
	       COALESCE(array_agg(pv.video_id ORDER BY pv.position)
	                FILTER (WHERE pv.video_id IS NOT NULL), '{}')
	FROM playlists p
	LEFT JOIN playlist_videos pv ON pv.playlist_id = p.id`

const playlistGroupBy = ` GROUP BY p.id`

type PlaylistStore struct {
	pool *pgxpool.Pool
}

func NewPlaylistStore(pool *pgxpool.Pool) *PlaylistStore {
	return &PlaylistStore{pool: pool}
}

func scanPlaylist(row pgx.Row) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Videos,
	)
	if err != nil {
		return nil, err
	}
	if p.Videos == nil {
		p.Videos = make([]uuid.UUID, 0)
	}
	return &p, nil
}

func (s *PlaylistStore) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error) {
	query := `
		INSERT INTO playlists (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_id, created_at, updated_at`

	p := models.Playlist{Videos: make([]uuid.UUID, 0)}
	err := s.pool.QueryRow(ctx, query, name, description, ownerID).Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, wrap("insert playlist", err)
	}
	return &p, nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	query := playlistSelect + ` WHERE p.id = $1` + playlistGroupBy

	p, err := scanPlaylist(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return p, nil
}

func (s *PlaylistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	query := playlistSelect + ` WHERE p.owner_id = $1` + playlistGroupBy +
		` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]models.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistStore) Update(ctx context.Context, id uuid.UUID, name, description *string) (*models.Playlist, error) {
	query := `
		UPDATE playlists SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			updated_at  = now()
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, name, description)
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

func (s *PlaylistStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

// AddVideo relies on the (playlist_id, video_id) primary key to reject a
// second copy of the same video.
func (s *PlaylistStore) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)`

	if _, err := s.pool.Exec(ctx, query, playlistID, videoID); err != nil {
		return wrap("add playlist video", err)
	}
	_, err := s.pool.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

func (s *PlaylistStore) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	tag, err := s.pool.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	_, err = s.pool.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}
