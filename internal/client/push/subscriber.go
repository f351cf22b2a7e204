// Package push listens to the per-post websocket channel and hands decoded
// events to the caller in receipt order.
package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/dmitrijs2005/bidsync/internal/netx"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"github.com/gorilla/websocket"
)

// TokenSource returns the current access token, empty for guests.
type TokenSource func() string

// Handler receives events of the subscribed post.
type Handler func(models.PushEvent)

type Subscriber struct {
	baseURL    string
	token      TokenSource
	dialer     *websocket.Dialer
	logger     logging.Logger
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewSubscriber(baseURL string, token TokenSource, logger logging.Logger) *Subscriber {
	if logger == nil {
		logger = logging.Nop{}
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Subscriber{
		baseURL: baseURL,
		token:   token,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
		logger:     logger.With("module", "push"),
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

// Run listens to postID until ctx ends, reconnecting with capped
// exponential backoff. It always returns ctx.Err().
func (s *Subscriber) Run(ctx context.Context, postID string, handle Handler) error {
	backoff := s.minBackoff
	for {
		connected, err := s.listen(ctx, postID, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			backoff = s.minBackoff
		}
		s.logger.Warn(ctx, "push channel dropped", "post_id", postID, "err", err, "retry_in", backoff.String())

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		backoff = min(backoff*2, s.maxBackoff)
	}
}

// listen runs one connection. connected reports whether the handshake
// succeeded.
func (s *Subscriber) listen(ctx context.Context, postID string, handle Handler) (connected bool, err error) {
	u, err := netx.WebsocketURL(s.baseURL, "posts", postID, "events")
	if err != nil {
		return false, err
	}

	header := http.Header{}
	if tok := s.token(); tok != "" {
		header.Set(common.AccessTokenHeaderName, tok)
	}

	conn, resp, err := s.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("failed to dial: %s: %w", resp.Status, err)
		}
		return false, fmt.Errorf("failed to dial: %w", err)
	}
	defer conn.Close()

	s.logger.Info(ctx, "push channel connected", "post_id", postID)

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true, errors.New("closed by server")
			}
			return true, fmt.Errorf("failed to read message: %w", err)
		}
		if mt != websocket.BinaryMessage {
			continue
		}

		ev, err := Decode(data)
		if err != nil {
			s.logger.Warn(ctx, "push frame dropped", "post_id", postID, "err", err)
			continue
		}
		if ev.Post() != postID {
			continue
		}
		handle(ev)
	}
}

// Decode parses one binary frame.
func Decode(frame []byte) (models.PushEvent, error) {
	var msg wire.PushEvent
	if err := wire.Unmarshal(frame, &msg); err != nil {
		return nil, fmt.Errorf("decode push frame: %w", err)
	}
	return client.PushEventFromWire(&msg)
}
