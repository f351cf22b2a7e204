// Package push serves the per-post websocket channel of the dev backend.
package push

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/devserver/users"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const (
	writeWait   = 10 * time.Second
	frameBuffer = 16
)

// Broker fans push events out to websocket listeners of each post. Slow
// listeners lose frames instead of blocking the publisher.
type Broker struct {
	users    *users.Service
	logger   logging.Logger
	upgrader websocket.Upgrader

	mu        sync.Mutex
	listeners map[string]map[chan []byte]struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewBroker(us *users.Service, logger logging.Logger) *Broker {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Broker{
		users:  us,
		logger: logger.With("module", "push_broker"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		listeners: map[string]map[chan []byte]struct{}{},
		done:      make(chan struct{}),
	}
}

// Close disconnects every listener. http.Server.Shutdown does not reach
// hijacked websocket connections.
func (b *Broker) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// Routes returns the HTTP surface of the dev backend.
func (b *Broker) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/posts/{postID}/events", b.serveEvents)
	r.Get("/signup", serveSignUp)
	return r
}

// Publish implements Publisher.
func (b *Broker) Publish(ev *wire.PushEvent) {
	frame := wire.Marshal(ev)

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.listeners[ev.PostId] {
		select {
		case ch <- frame:
		default:
			b.logger.Warn(context.Background(), "push frame dropped for slow listener", "post_id", ev.PostId)
		}
	}
}

// Listeners returns the number of open channels for postID.
func (b *Broker) Listeners(postID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[postID])
}

func (b *Broker) add(postID string) chan []byte {
	ch := make(chan []byte, frameBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners[postID] == nil {
		b.listeners[postID] = map[chan []byte]struct{}{}
	}
	b.listeners[postID][ch] = struct{}{}
	return ch
}

func (b *Broker) remove(postID string, ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners[postID], ch)
	if len(b.listeners[postID]) == 0 {
		delete(b.listeners, postID)
	}
}

func (b *Broker) serveEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := chi.URLParam(r, "postID")

	// guests connect without a token; a token that is present must be valid
	if tok := r.Header.Get(common.AccessTokenHeaderName); tok != "" {
		if _, err := b.users.Authenticate(tok); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn(ctx, "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	frames := b.add(postID)
	defer b.remove(postID, frames)
	b.logger.Debug(ctx, "push listener connected", "post_id", postID)

	// the client never sends data; reading detects when it goes away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-b.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case <-gone:
			b.logger.Debug(ctx, "push listener left", "post_id", postID)
			return
		case frame := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				b.logger.Warn(ctx, "push write failed", "post_id", postID, "err", err)
				return
			}
		}
	}
}

// serveSignUp stands in for the hosted sign-up page guests are sent to.
func serveSignUp(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get(common.SetupIntentSecretParam)
	if secret == "" {
		http.Error(w, "missing "+common.SetupIntentSecretParam, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "Sign up to finish your contribution.\nSetup intent: %s\n", secret)
}
