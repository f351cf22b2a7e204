// Package netx holds small URL helpers shared by the payment flow and the
// push subscriber.
package netx

import (
	"fmt"
	"net/url"
)

// WithQuery returns rawURL with key=value added to its query, keeping any
// parameters already present.
func WithQuery(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WebsocketURL turns an http(s) base into ws(s) and appends the path
// segments.
func WebsocketURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	return u.JoinPath(segments...).String(), nil
}
