// Package users holds the dev backend accounts and their JWT token pairs.
package users

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/devserver/config"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type refreshToken struct {
	identity auth.Identity
	expires  time.Time
}

// Service knows the seeded accounts and issues and rotates their
// tokens. Refresh tokens live in memory and are single use.
type Service struct {
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time

	mu      sync.Mutex
	users   map[string]auth.Identity // by username
	refresh map[string]refreshToken
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
		users:                        map[string]auth.Identity{},
		refresh:                      map[string]refreshToken{},
	}
}

// AddUser registers an account. Later calls with the same username replace it.
func (s *Service) AddUser(id auth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id.Username] = id
}

// Login mints a token pair for a known username.
func (s *Service) Login(username string) (*TokenPair, error) {
	s.mu.Lock()
	id, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(id)
}

// Guest mints an access token for an anonymous visitor. Guests get no
// refresh token.
func (s *Service) Guest(locale string) (string, error) {
	guestID, err := common.MakeRandHexString(8)
	if err != nil {
		return "", common.ErrorInternal
	}
	return auth.GenerateToken(auth.Identity{UserID: "guest-" + guestID, IsGuest: true, Locale: locale},
		s.jwtSecret, s.accessTokenValidityDuration)
}

// RefreshToken validates a refresh token, rotates it and returns a fresh
// TokenPair. Expired tokens yield common.ErrRefreshTokenExpired.
func (s *Service) RefreshToken(token string) (*TokenPair, error) {
	s.mu.Lock()
	rt, ok := s.refresh[token]
	delete(s.refresh, token)
	s.mu.Unlock()

	if !ok {
		return nil, common.ErrInvalidToken
	}
	if rt.expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}
	return s.generateTokenPair(rt.identity)
}

// Authenticate parses an access token.
func (s *Service) Authenticate(accessToken string) (auth.Identity, error) {
	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		IsGuest:  claims.IsGuest,
		Locale:   claims.Locale,
	}, nil
}

func (s *Service) generateTokenPair(id auth.Identity) (*TokenPair, error) {
	access, err := auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", common.ErrorInternal)
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", common.ErrorInternal)
	}

	s.mu.Lock()
	s.refresh[refresh] = refreshToken{identity: id, expires: s.now().Add(s.refreshTokenValidityDuration)}
	s.mu.Unlock()

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
