package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()

	pair, err := issuer.IssuePair(userID, "alice", "alice@example.com")
	require.NoError(t, err)

	access, err := issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, "alice@example.com", access.Email)

	refresh, err := issuer.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refresh.UserID)
	assert.NotEmpty(t, refresh.ID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.IssuePair(uuid.New(), "bob", "bob@example.com")
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = issuer.ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()

	first, err := issuer.IssuePair(userID, "carol", "carol@example.com")
	require.NoError(t, err)
	second, err := issuer.IssuePair(userID, "carol", "carol@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	issuer := newTestIssuer()
	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	pair, err := issuer.IssuePair(uuid.New(), "dave", "dave@example.com")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = issuer.ParseAccess(pair.AccessToken)
	assert.Error(t, err)

	_, err = issuer.ParseRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	pair, err := newTestIssuer().IssuePair(uuid.New(), "erin", "erin@example.com")
	require.NoError(t, err)

	other := NewTokenIssuer("another-access", "another-refresh", time.Minute, time.Hour)
	_, err = other.ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}
