package push

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
)

// Runner listens to one post until ctx ends. *Subscriber implements it.
type Runner interface {
	Run(ctx context.Context, postID string, handle Handler) error
}

type channel struct {
	cancel   context.CancelFunc
	done     chan struct{}
	handlers map[uint64]Handler
}

// Hub shares one push connection per post between all screens showing it.
// The connection is opened by the first Subscribe and closed when the last
// subscriber leaves.
type Hub struct {
	runner Runner

	mu       sync.Mutex
	nextID   uint64
	channels map[string]*channel
	closed   bool
}

func NewHub(runner Runner) *Hub {
	return &Hub{runner: runner, channels: map[string]*channel{}}
}

// Subscribe registers fn for events of postID and returns the function that
// removes it. The returned function is safe to call more than once.
func (h *Hub) Subscribe(postID string, fn Handler) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return func() {}
	}

	ch, ok := h.channels[postID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		ch = &channel{cancel: cancel, done: make(chan struct{}), handlers: map[uint64]Handler{}}
		h.channels[postID] = ch
		go func() {
			defer close(ch.done)
			_ = h.runner.Run(ctx, postID, func(ev models.PushEvent) { h.dispatch(ch, ev) })
		}()
	}

	h.nextID++
	id := h.nextID
	ch.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(postID, ch, id) })
	}
}

// Subscribers returns the number of handlers registered for postID.
func (h *Hub) Subscribers(postID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.channels[postID]; ok {
		return len(ch.handlers)
	}
	return 0
}

// Close stops every channel and waits for the listeners to return.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	channels := h.channels
	h.channels = map[string]*channel{}
	h.mu.Unlock()

	for _, ch := range channels {
		ch.cancel()
		<-ch.done
	}
}

func (h *Hub) unsubscribe(postID string, ch *channel, id uint64) {
	h.mu.Lock()
	delete(ch.handlers, id)
	last := len(ch.handlers) == 0 && h.channels[postID] == ch
	if last {
		delete(h.channels, postID)
	}
	h.mu.Unlock()

	if last {
		ch.cancel()
	}
}

func (h *Hub) dispatch(ch *channel, ev models.PushEvent) {
	h.mu.Lock()
	handlers := make([]Handler, 0, len(ch.handlers))
	for _, fn := range ch.handlers {
		handlers = append(handlers, fn)
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
