package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}

func frame(ev *wire.PushEvent) []byte {
	return wire.Marshal(ev)
}

// eventServer upgrades every request and writes the frames returned by
// frames for that connection number. Connections for which hold reports
// true stay open until the client leaves; the rest are closed right away.
func eventServer(t *testing.T, frames func(conn int) [][]byte, hold func(conn int) bool) (*httptest.Server, *atomic.Int32, chan http.Header) {
	t.Helper()
	var conns atomic.Int32
	headers := make(chan http.Header, 10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/p1/events", r.URL.Path)
		headers <- r.Header.Clone()

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()

		n := int(conns.Add(1))
		for _, f := range frames(n) {
			if f == nil {
				_ = c.WriteMessage(websocket.TextMessage, []byte("hello"))
				continue
			}
			if err := c.WriteMessage(websocket.BinaryMessage, f); err != nil {
				return
			}
		}
		if hold(n) {
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &conns, headers
}

func alwaysHold(int) bool { return true }

type collector struct {
	mu     sync.Mutex
	events []models.PushEvent
	signal chan struct{}
}

func newCollector() *collector {
	return &collector{signal: make(chan struct{}, 100)}
}

func (c *collector) handle(ev models.PushEvent) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
	c.signal <- struct{}{}
}

func (c *collector) wait(t *testing.T, n int) []models.PushEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		c.mu.Lock()
		got := len(c.events)
		c.mu.Unlock()
		if got >= n {
			break
		}
		select {
		case <-c.signal:
		case <-deadline:
			t.Fatalf("got %d events, want %d", got, n)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.PushEvent(nil), c.events...)
}

func TestSubscriber_DeliversEventsInOrder(t *testing.T) {
	srv, _, headers := eventServer(t, func(int) [][]byte {
		return [][]byte{
			nil, // text frame, ignored
			{0xff, 0xff, 0xff},
			frame(&wire.PushEvent{PostId: "p2", Kind: wire.PushEventKindPostUpdated, Version: 9}),
			frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindOptionUpserted}),
			frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindOptionUpserted, Option: &wire.Option{Id: "o1", Title: "Red", Amount: 500, Version: 1}}),
			frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindPostUpdated, TotalAmount: 500, OptionCount: 1, Version: 2}),
		}
	}, alwaysHold)

	s := NewSubscriber(srv.URL, func() string { return "tok" }, nil)
	c := newCollector()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "p1", c.handle) }()

	events := c.wait(t, 2)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	require.Len(t, events, 2)
	up, ok := events[0].(models.OptionUpserted)
	require.True(t, ok)
	require.Equal(t, "o1", up.Option.ID)
	require.Equal(t, int64(500), up.Option.Amount)
	require.Equal(t, models.PostUpdated{PostID: "p1", TotalAmount: 500, OptionCount: 1, Version: 2}, events[1])

	h := <-headers
	require.Equal(t, "tok", h.Get(common.AccessTokenHeaderName))
}

func TestSubscriber_Reconnects(t *testing.T) {
	srv, conns, _ := eventServer(t, func(n int) [][]byte {
		if n == 2 {
			return [][]byte{frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindPostUpdated, Version: 2})}
		}
		if n == 1 {
			return [][]byte{frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindPostUpdated, Version: 1})}
		}
		return nil
	}, func(n int) bool { return n > 1 })

	s := NewSubscriber(srv.URL, nil, nil)
	s.minBackoff = time.Millisecond
	s.maxBackoff = 5 * time.Millisecond
	c := newCollector()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = s.Run(ctx, "p1", c.handle) }()

	events := c.wait(t, 2)
	require.GreaterOrEqual(t, conns.Load(), int32(2))
	require.Equal(t, int64(1), events[0].(models.PostUpdated).Version)
	require.Equal(t, int64(2), events[1].(models.PostUpdated).Version)
}

func TestSubscriber_GuestSendsNoToken(t *testing.T) {
	srv, _, headers := eventServer(t, func(int) [][]byte {
		return [][]byte{frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindPostUpdated})}
	}, alwaysHold)

	s := NewSubscriber(srv.URL, func() string { return "" }, nil)
	c := newCollector()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx, "p1", c.handle) }()

	c.wait(t, 1)
	h := <-headers
	require.Empty(t, h.Get(common.AccessTokenHeaderName))
}

func TestSubscriber_BadBaseURL(t *testing.T) {
	s := NewSubscriber("ftp://example.com", nil, nil)
	_, err := s.listen(context.Background(), "p1", func(models.PushEvent) {})
	require.ErrorContains(t, err, "unsupported scheme")
}

func TestDecode(t *testing.T) {
	ev, err := Decode(frame(&wire.PushEvent{PostId: "p1", Kind: wire.PushEventKindPostUpdated, Version: 3}))
	require.NoError(t, err)
	require.Equal(t, models.PostUpdated{PostID: "p1", Version: 3}, ev)

	_, err = Decode([]byte{0xff})
	require.Error(t, err)
}
