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

const userColumns = `id, username, email, full_name, avatar, cover_image, password_hash, watch_history, created_at, updated_at`

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.Avatar,
		&u.CoverImage,
		&u.PasswordHash,
		&u.WatchHistory,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.WatchHistory == nil {
		u.WatchHistory = make([]uuid.UUID, 0)
	}
	return &u, nil
}

// queryUser runs a single-row user query and maps "no rows" to nil, nil.
func (s *UserStore) queryUser(ctx context.Context, op, query string, args ...any) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return u, nil
}

// Create inserts a new user. Unique indexes on username and email turn
// a concurrent duplicate registration into repository.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, full_name, avatar, cover_image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created, err := scanUser(s.pool.QueryRow(ctx, query,
		u.Username, u.Email, u.FullName, u.Avatar, u.CoverImage, u.PasswordHash))
	if err != nil {
		return nil, wrap("insert user", err)
	}
	return created, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.queryUser(ctx, "get user", query, id)
}

func (s *UserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	// NULLIF keeps an empty argument from matching anything.
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = NULLIF($1, '') OR username = NULLIF($2, '')
		LIMIT 1`
	return s.queryUser(ctx, "find user", query, email, username)
}

func (s *UserStore) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.User, error) {
	query := `
		UPDATE users SET full_name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return s.queryUser(ctx, "update account", query, id, fullName, email)
}

func (s *UserStore) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*models.User, error) {
	query := `
		UPDATE users SET avatar = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return s.queryUser(ctx, "update avatar", query, id, url)
}

func (s *UserStore) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*models.User, error) {
	query := `
		UPDATE users SET cover_image = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return s.queryUser(ctx, "update cover image", query, id, url)
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *UserStore) AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	query := `UPDATE users SET watch_history = array_append(watch_history, $2) WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("append watch history: %w", err)
	}
	return nil
}
