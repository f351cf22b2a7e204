package users

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/devserver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	var cfg config.Config
	cfg.LoadDefaults()
	s := NewService(&cfg)
	s.AddUser(auth.Identity{UserID: "1", Username: "demo", Locale: "es"})
	return s
}

func TestLogin(t *testing.T) {
	s := newService()

	pair, err := s.Login("demo")
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)

	id, err := s.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: "1", Username: "demo", Locale: "es"}, id)

	_, err = s.Login("nobody")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshToken_Rotates(t *testing.T) {
	s := newService()
	pair, err := s.Login("demo")
	require.NoError(t, err)

	next, err := s.RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = s.RefreshToken(pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidToken, "refresh tokens are single use")
}

func TestRefreshToken_Expired(t *testing.T) {
	s := newService()
	pair, err := s.Login("demo")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = s.RefreshToken(pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestGuest(t *testing.T) {
	s := newService()
	tok, err := s.Guest("en")
	require.NoError(t, err)

	id, err := s.Authenticate(tok)
	require.NoError(t, err)
	assert.True(t, id.IsGuest)
	assert.Contains(t, id.UserID, "guest-")
}

func TestAuthenticate_Expired(t *testing.T) {
	s := newService()
	tok, err := auth.GenerateToken(auth.Identity{UserID: "1"}, s.jwtSecret, -time.Minute)
	require.NoError(t, err)

	_, err = s.Authenticate(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}
