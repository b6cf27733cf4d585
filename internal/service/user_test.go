package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(username string) RegisterInput {
	return RegisterInput{
		FullName: "Test " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: "secret-password",
		Avatar:   testFile("avatar.png"),
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := registerInput("Alice")
	in.Email = "  ALICE@Example.com "
	in.CoverImage = testFile("cover.jpg")

	user, err := env.users.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, env.assets.Has(user.Avatar))
	assert.True(t, env.assets.Has(user.CoverImage))
	assert.NotEqual(t, "secret-password", user.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, registerInput("bob"))
	require.NoError(t, err)

	_, err = env.users.Register(ctx, registerInput("bob"))
	assertKind(t, err, apperr.KindConflict)

	sameEmail := registerInput("robert")
	sameEmail.Email = "bob@example.com"
	_, err = env.users.Register(ctx, sameEmail)
	assertKind(t, err, apperr.KindConflict)

	assert.Equal(t, 1, env.assets.Len())
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	blank := registerInput("carol")
	blank.FullName = "   "
	_, err := env.users.Register(ctx, blank)
	assertKind(t, err, apperr.KindInvalidInput)

	noAvatar := registerInput("carol")
	noAvatar.Avatar = nil
	_, err = env.users.Register(ctx, noAvatar)
	assertKind(t, err, apperr.KindInvalidInput)

	assert.Zero(t, env.assets.Len())
}

func TestRegisterUploadFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.assets.Fail(errors.New("bucket unavailable"))

	_, err := env.users.Register(ctx, registerInput("dave"))
	assertKind(t, err, apperr.KindInternal)

	found, err := env.db.Users().FindByEmailOrUsername(ctx, "dave@example.com", "dave")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered, err := env.users.Register(ctx, registerInput("erin"))
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, pair, err := env.users.Login(ctx, LoginInput{Username: "ERIN", Password: "secret-password"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})
	t.Run("by email", func(t *testing.T) {
		_, _, err := env.users.Login(ctx, LoginInput{Email: "erin@example.com", Password: "secret-password"})
		assert.NoError(t, err)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, _, err := env.users.Login(ctx, LoginInput{Username: "nobody", Password: "x"})
		assertKind(t, err, apperr.KindNotFound)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, _, err := env.users.Login(ctx, LoginInput{Username: "erin", Password: "wrong"})
		assertKind(t, err, apperr.KindUnauthenticated)
	})
	t.Run("no identifier", func(t *testing.T) {
		_, _, err := env.users.Login(ctx, LoginInput{Password: "secret-password"})
		assertKind(t, err, apperr.KindInvalidInput)
	})
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, registerInput("frank"))
	require.NoError(t, err)

	_, first, err := env.users.Login(ctx, LoginInput{Username: "frank", Password: "secret-password"})
	require.NoError(t, err)

	second, err := env.users.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = env.users.Refresh(ctx, first.RefreshToken)
	assertKind(t, err, apperr.KindUnauthenticated)

	_, err = env.users.Refresh(ctx, "not-a-token")
	assertKind(t, err, apperr.KindUnauthenticated)

	_, err = env.users.Refresh(ctx, "")
	assertKind(t, err, apperr.KindUnauthenticated)
}

func TestConcurrentRefreshAcceptsTokenOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, registerInput("fiona"))
	require.NoError(t, err)
	_, pair, err := env.users.Login(ctx, LoginInput{Username: "fiona", Password: "secret-password"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.users.Refresh(ctx, pair.RefreshToken); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), succeeded.Load())
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.users.Register(ctx, registerInput("gina"))
	require.NoError(t, err)
	_, pair, err := env.users.Login(ctx, LoginInput{Username: "gina", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, user.ID))

	_, err = env.users.Refresh(ctx, pair.RefreshToken)
	assertKind(t, err, apperr.KindUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.users.Register(ctx, registerInput("hank"))
	require.NoError(t, err)

	err = env.users.ChangePassword(ctx, user.ID, "wrong", "new-password")
	assertKind(t, err, apperr.KindInvalidInput)

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "secret-password", "new-password"))

	_, _, err = env.users.Login(ctx, LoginInput{Username: "hank", Password: "new-password"})
	assert.NoError(t, err)
	_, _, err = env.users.Login(ctx, LoginInput{Username: "hank", Password: "secret-password"})
	assertKind(t, err, apperr.KindUnauthenticated)
}

func TestPasswordLengthLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tooLong := registerInput("ivan")
	tooLong.Password = strings.Repeat("p", 73)
	_, err := env.users.Register(ctx, tooLong)
	assertKind(t, err, apperr.KindInvalidInput)
	assert.Zero(t, env.assets.Len())

	longest := registerInput("ivan")
	longest.Password = strings.Repeat("p", 72)
	user, err := env.users.Register(ctx, longest)
	require.NoError(t, err)

	err = env.users.ChangePassword(ctx, user.ID, longest.Password, strings.Repeat("n", 100))
	assertKind(t, err, apperr.KindInvalidInput)

	_, _, err = env.users.Login(ctx, LoginInput{Username: "ivan", Password: longest.Password})
	assert.NoError(t, err)
}

func TestUpdateAccountEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ivy := env.createUser(t, "ivy")
	env.createUser(t, "jack")

	_, err := env.users.UpdateAccount(ctx, ivy.ID, "Ivy", "jack@example.com")
	assertKind(t, err, apperr.KindConflict)

	updated, err := env.users.UpdateAccount(ctx, ivy.ID, " Ivy Two ", "IVY2@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ivy Two", updated.FullName)
	assert.Equal(t, "ivy2@example.com", updated.Email)

	_, err = env.users.UpdateAccount(ctx, uuid.New(), "Ghost", "ghost@example.com")
	assertKind(t, err, apperr.KindNotFound)
}

func TestUpdateAvatarReplacesObject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.users.Register(ctx, registerInput("kate"))
	require.NoError(t, err)
	old := user.Avatar

	updated, err := env.users.UpdateAvatar(ctx, user.ID, testFile("new.png"))
	require.NoError(t, err)
	assert.NotEqual(t, old, updated.Avatar)
	assert.True(t, env.assets.Has(updated.Avatar))
	assert.False(t, env.assets.Has(old))

	_, err = env.users.UpdateAvatar(ctx, user.ID, nil)
	assertKind(t, err, apperr.KindInvalidInput)
}
