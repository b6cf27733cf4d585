package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
)

const videoColumns = `id, title, description, video_file, thumbnail, duration, views, is_published, owner_id, created_at, updated_at`

// videoViewSelect joins each video with the public fields of its owner.
const videoViewSelect = `
	SELECT v.id, v.title, v.description, v.video_file, v.thumbnail, v.duration,
	       v.views, v.is_published, v.created_at, v.updated_at,
	       u.id, u.full_name, u.username, u.avatar
	FROM videos v
	JOIN users u ON u.id = v.owner_id`

// sortColumns is the allow-list that turns a sort field into SQL. Sort
// input never reaches the query text any other way.
var sortColumns = map[repository.VideoSortField]string{
	repository.SortByCreatedAt: "v.created_at",
	repository.SortByViews:     "v.views",
	repository.SortByDuration:  "v.duration",
	repository.SortByTitle:     "v.title",
}

type VideoStore struct {
	pool *pgxpool.Pool
}

func NewVideoStore(pool *pgxpool.Pool) *VideoStore {
	return &VideoStore{pool: pool}
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.VideoFile,
		&v.Thumbnail,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVideoView(row pgx.Row, v *models.VideoView) error {
	return row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.VideoFile,
		&v.Thumbnail,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Owner.ID,
		&v.Owner.FullName,
		&v.Owner.Username,
		&v.Owner.Avatar,
	)
}

// collectVideoViews drains rows into a slice.
func collectVideoViews(rows pgx.Rows, op string) ([]models.VideoView, error) {
	defer rows.Close()

	videos := make([]models.VideoView, 0)
	for rows.Next() {
		var v models.VideoView
		if err := scanVideoView(rows, &v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return videos, nil
}

func (s *VideoStore) queryVideo(ctx context.Context, op, query string, args ...any) (*models.Video, error) {
	v, err := scanVideo(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return v, nil
}

func (s *VideoStore) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	query := `
		INSERT INTO videos (title, description, video_file, thumbnail, duration, is_published, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + videoColumns

	created, err := scanVideo(s.pool.QueryRow(ctx, query,
		v.Title, v.Description, v.VideoFile, v.Thumbnail, v.Duration, v.IsPublished, v.OwnerID))
	if err != nil {
		return nil, wrap("insert video", err)
	}
	return created, nil
}

func (s *VideoStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	return s.queryVideo(ctx, "get video", query, id)
}

func (s *VideoStore) GetView(ctx context.Context, id uuid.UUID) (*models.VideoView, error) {
	query := videoViewSelect + ` WHERE v.id = $1`

	var v models.VideoView
	if err := scanVideoView(s.pool.QueryRow(ctx, query, id), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video view: %w", err)
	}
	return &v, nil
}

// List builds the WHERE clause from the query's optional filters. The
// count and the page run as two statements over the same filter; under
// concurrent writes they may disagree by a row, which is acceptable for
// a listing.
func (s *VideoStore) List(ctx context.Context, q repository.VideoQuery) ([]models.VideoView, int64, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", n, n))
	}
	if q.OwnerID != nil {
		args = append(args, *q.OwnerID)
		conds = append(conds, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	if !q.IncludeUnpublished {
		conds = append(conds, "v.is_published")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := `SELECT count(*) FROM videos v` + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	column, ok := sortColumns[q.SortField]
	if !ok {
		column = sortColumns[repository.SortByCreatedAt]
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}

	args = append(args, q.Limit, q.Offset)
	listQuery := fmt.Sprintf(`%s%s ORDER BY %s %s, v.id %s LIMIT $%d OFFSET $%d`,
		videoViewSelect, where, column, direction, direction, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	videos, err := collectVideoViews(rows, "videos")
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (s *VideoStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.VideoView, error) {
	if len(ids) == 0 {
		return make([]models.VideoView, 0), nil
	}

	rows, err := s.pool.Query(ctx, videoViewSelect+` WHERE v.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list videos by id: %w", err)
	}
	return collectVideoViews(rows, "videos by id")
}

func (s *VideoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}
	return videos, nil
}

// Update uses COALESCE so nil fields keep their stored value.
func (s *VideoStore) Update(ctx context.Context, id uuid.UUID, upd repository.VideoUpdate) (*models.Video, error) {
	query := `
		UPDATE videos SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			duration    = COALESCE($4, duration),
			thumbnail   = COALESCE($5, thumbnail),
			video_file  = COALESCE($6, video_file),
			updated_at  = now()
		WHERE id = $1
		RETURNING ` + videoColumns

	return s.queryVideo(ctx, "update video", query,
		id, upd.Title, upd.Description, upd.Duration, upd.Thumbnail, upd.VideoFile)
}

func (s *VideoStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Video, error) {
	query := `
		UPDATE videos SET is_published = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + videoColumns
	return s.queryVideo(ctx, "set published", query, id, published)
}

func (s *VideoStore) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	query := `
		UPDATE videos SET views = views + 1
		WHERE id = $1
		RETURNING ` + videoColumns
	return s.queryVideo(ctx, "increment views", query, id)
}

// Delete relies on ON DELETE CASCADE for comments, likes (including
// likes on the cascaded comments) and playlist entries.
func (s *VideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}
