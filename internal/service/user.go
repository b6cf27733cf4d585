package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"github.com/lalith-99/vidora/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tokens   *auth.TokenIssuer
	assets   assets
	logger   *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *auth.TokenIssuer,
	store storage.AssetStore,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		assets:   assets{store: store, logger: logger},
		logger:   logger,
	}
}

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *storage.File
	CoverImage *storage.File
}

// Register creates an account. The avatar is mandatory, the cover image
// optional. Uploads happen only after every cheap check has passed, and
// are removed again if the user row cannot be written.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperr.InvalidInput("All fields (fullName, email, username, password) are required")
	}
	if err := checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, apperr.Internal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User with given username or email already exists")
	}

	if in.Avatar == nil {
		return nil, apperr.InvalidInput("Avatar image is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	avatarURL, err := s.assets.upload(ctx, storage.FolderAvatars, in.Avatar)
	if err != nil {
		return nil, apperr.Internal("Failed to upload avatar", err)
	}
	var coverURL string
	if in.CoverImage != nil {
		coverURL, err = s.assets.upload(ctx, storage.FolderCovers, in.CoverImage)
		if err != nil {
			s.assets.discard(ctx, avatarURL)
			return nil, apperr.Internal("Failed to upload cover image", err)
		}
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: string(hash),
	})
	if err != nil {
		s.assets.discard(ctx, avatarURL, coverURL)
		// Lost a race with a concurrent registration.
		if isDuplicate(err) {
			return nil, apperr.Conflict("User with given username or email already exists")
		}
		return nil, apperr.Internal("Something went wrong while registering the user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

// Login checks credentials and starts a session. The refresh token it
// issues becomes the only one accepted for this user.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, auth.Pair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if email == "" && username == "" {
		return nil, auth.Pair{}, apperr.InvalidInput("Username or Email is required")
	}
	if in.Password == "" {
		return nil, auth.Pair{}, apperr.InvalidInput("Password is required")
	}

	user, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, auth.Pair{}, apperr.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, auth.Pair{}, apperr.NotFound("User does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, auth.Pair{}, apperr.Unauthenticated("Invalid user credentials")
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, auth.Pair{}, err
	}
	return user, pair, nil
}

func (s *UserService) startSession(ctx context.Context, user *models.User) (auth.Pair, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Username, user.Email)
	if err != nil {
		return auth.Pair{}, apperr.Internal("failed to issue tokens", err)
	}
	if err := s.sessions.SaveRefreshToken(ctx, user.ID, pair.RefreshToken, s.tokens.RefreshTTL()); err != nil {
		return auth.Pair{}, apperr.Internal("failed to store session", err)
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		return apperr.Internal("failed to end session", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair. The presented token
// must be the one stored for the user; afterwards it no longer is.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.Pair, error) {
	if refreshToken == "" {
		return auth.Pair{}, apperr.Unauthenticated("Unauthorized request")
	}

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return auth.Pair{}, apperr.Unauthenticated("Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.Pair{}, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return auth.Pair{}, apperr.Unauthenticated("Invalid refresh token")
	}

	consumed, err := s.sessions.ConsumeRefreshToken(ctx, user.ID, refreshToken)
	if err != nil {
		return auth.Pair{}, apperr.Internal("failed to load session", err)
	}
	if !consumed {
		return auth.Pair{}, apperr.Unauthenticated("Refresh token is expired or used")
	}

	return s.startSession(ctx, user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || strings.TrimSpace(newPassword) == "" {
		return apperr.InvalidInput("Old and new password are required")
	}
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.InvalidInput("Invalid old Password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, apperr.InvalidInput("All fields are required")
	}

	user, err := s.users.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("Email is already in use")
		}
		return nil, apperr.Internal("failed to update account", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *storage.File) (*models.User, error) {
	if file == nil {
		return nil, apperr.InvalidInput("Avatar file is missing")
	}
	return s.replaceImage(ctx, userID, file, storage.FolderAvatars,
		func(u *models.User) string { return u.Avatar },
		s.users.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *storage.File) (*models.User, error) {
	if file == nil {
		return nil, apperr.InvalidInput("Cover image file is missing")
	}
	return s.replaceImage(ctx, userID, file, storage.FolderCovers,
		func(u *models.User) string { return u.CoverImage },
		s.users.UpdateCoverImage)
}

// replaceImage uploads file, points the user at it and drops the old
// object. The old object is kept if the update fails.
func (s *UserService) replaceImage(
	ctx context.Context,
	userID uuid.UUID,
	file *storage.File,
	folder string,
	current func(*models.User) string,
	save func(context.Context, uuid.UUID, string) (*models.User, error),
) (*models.User, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	old := current(user)

	url, err := s.assets.upload(ctx, folder, file)
	if err != nil {
		return nil, apperr.Internal("Error while uploading image", err)
	}

	updated, err := save(ctx, userID, url)
	if err == nil && updated == nil {
		err = errors.New("user disappeared during update")
	}
	if err != nil {
		s.assets.discard(ctx, url)
		return nil, apperr.Internal("failed to update image", err)
	}

	s.assets.discard(ctx, old)
	return updated, nil
}

// bcrypt only hashes the first 72 bytes and refuses anything longer.
const maxPasswordBytes = 72

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return apperr.InvalidInput("Password must be at most 72 bytes")
	}
	return nil
}
