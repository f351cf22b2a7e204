// Package services contains application services of the bidsync client.
// This file keeps the session tokens: it restores them at start-up, seals
// them into the local metadata table and forgets them on logout.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bidsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bidsync/internal/client/session"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/cryptox"
	"github.com/dmitrijs2005/bidsync/internal/dbx"
)

// TokenHolder is the part of the transport that carries the token pair.
type TokenHolder interface {
	SetTokens(accessToken, refreshToken string)
	Tokens() (accessToken, refreshToken string)
}

// SessionService defines the session lifecycle of the CLI.
//
//   - Restore: pick the token pair (configured first, then the sealed copy)
//     and build the Session from it.
//   - Save: seal and persist a new token pair, e.g. after a refresh.
//   - Logout: drop the tokens locally and become a guest.
type SessionService interface {
	Restore(ctx context.Context, accessToken, refreshToken string) (session.Session, error)
	Save(ctx context.Context, accessToken, refreshToken string) error
	Logout(ctx context.Context) (session.Session, error)
}

type sealedTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type sessionService struct {
	tokens TokenHolder
	db     *sql.DB
	secret []byte
	locale string

	mu  sync.Mutex
	key []byte
}

// NewSessionService binds the token holder to the local database. secret
// is the device secret the sealing key is derived from.
func NewSessionService(tokens TokenHolder, db *sql.DB, secret []byte, locale string) SessionService {
	return &sessionService{tokens: tokens, db: db, secret: secret, locale: locale}
}

// Restore prefers explicitly configured tokens and persists them; otherwise
// it loads the sealed pair. With neither the session is a guest.
func (s *sessionService) Restore(ctx context.Context, accessToken, refreshToken string) (session.Session, error) {
	if accessToken != "" {
		if err := s.Save(ctx, accessToken, refreshToken); err != nil {
			return session.Session{}, err
		}
	} else {
		stored, err := s.load(ctx)
		if err != nil {
			return session.Session{}, err
		}
		accessToken, refreshToken = stored.Access, stored.Refresh
	}

	s.tokens.SetTokens(accessToken, refreshToken)
	return session.FromAccessToken(accessToken, s.locale)
}

func (s *sessionService) Save(ctx context.Context, accessToken, refreshToken string) error {
	key, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]byte, error) {
		repo := metadata.NewSQLiteRepository(tx)

		key, err := s.sealingKey(ctx, repo)
		if err != nil {
			return nil, err
		}

		sealed, err := cryptox.SealJSON(key, sealedTokens{Access: accessToken, Refresh: refreshToken}, []byte(metadata.KeySession))
		if err != nil {
			return nil, fmt.Errorf("seal session: %w", err)
		}
		return key, repo.Set(ctx, metadata.KeySession, sealed)
	})
	if err != nil {
		return err
	}

	s.remember(key)
	return nil
}

func (s *sessionService) Logout(ctx context.Context) (session.Session, error) {
	s.tokens.SetTokens("", "")

	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, metadata.KeySession); err != nil {
		return session.Session{}, err
	}
	return session.Guest(s.locale), nil
}

func (s *sessionService) load(ctx context.Context) (sealedTokens, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	sealed, err := repo.Get(ctx, metadata.KeySession)
	if err != nil {
		return sealedTokens{}, err
	}
	if sealed == nil {
		return sealedTokens{}, nil
	}

	key, err := s.sealingKey(ctx, repo)
	if err != nil {
		return sealedTokens{}, err
	}
	s.remember(key)

	var t sealedTokens
	if err := cryptox.OpenJSON(key, sealed, &t, []byte(metadata.KeySession)); err != nil {
		return sealedTokens{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return t, nil
}

// sealingKey returns the derived key, creating and storing the salt on
// first use. The key is cached by remember once the salt is known to be
// stored.
func (s *sessionService) sealingKey(ctx context.Context, repo metadata.Repository) ([]byte, error) {
	s.mu.Lock()
	key := s.key
	s.mu.Unlock()
	if key != nil {
		return key, nil
	}

	salt, err := repo.Get(ctx, metadata.KeySessionSalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := repo.Set(ctx, metadata.KeySessionSalt, salt); err != nil {
			return nil, err
		}
	}

	return cryptox.DeriveKey(s.secret, salt), nil
}

func (s *sessionService) remember(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}
