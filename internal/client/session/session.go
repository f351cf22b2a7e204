// Package session describes who is using the client. A Session is built
// once from the access token and passed to every component that needs to
// know the current user.
package session

import (
	"github.com/dmitrijs2005/bidsync/internal/auth"
)

const DefaultLocale = "en"

type Session struct {
	UserID   string
	Username string
	IsGuest  bool
	Locale   string
}

// Guest is the session of a user without an account.
func Guest(locale string) Session {
	if locale == "" {
		locale = DefaultLocale
	}
	return Session{IsGuest: true, Locale: locale}
}

// FromAccessToken reads the identity claims of token. An empty token is a
// guest. fallbackLocale applies when the token carries none.
func FromAccessToken(token, fallbackLocale string) (Session, error) {
	if token == "" {
		return Guest(fallbackLocale), nil
	}

	claims, err := auth.ParseUnverified(token)
	if err != nil {
		return Session{}, err
	}

	s := Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		IsGuest:  claims.IsGuest || claims.UserID == "",
		Locale:   claims.Locale,
	}
	if s.Locale == "" {
		s.Locale = fallbackLocale
	}
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
	return s, nil
}

// DisplayName is the username, or "guest".
func (s Session) DisplayName() string {
	if s.IsGuest || s.Username == "" {
		return "guest"
	}
	return s.Username
}
