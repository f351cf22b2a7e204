package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/config"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/push"
	"github.com/dmitrijs2005/bidsync/internal/client/services"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements backend in memory and records what was sent.
type fakeBackend struct {
	mu sync.Mutex

	access, refresh string
	pingErr         error
	post            models.Post
	postErr         error
	options         []models.Option
	nextToken       string
	constants       models.AppConstants
	textValid       bool
	blocked         map[string]bool
	validated       []string
	intents         []models.SetupIntentRequest
	updates         []models.Purpose
	contributions   []models.Contribution
	result          models.ContributionResult
	deleted         []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		post: models.Post{ID: "7", Kind: models.PostKindAuction, Title: "Where to next?", TotalAmount: 800, OptionCount: 2, Version: 1},
		options: []models.Option{
			{ID: "1", Title: "Rome", Amount: 500, SupporterCount: 2, Version: 1},
			{ID: "2", Title: "Oslo", Amount: 300, SupporterCount: 1, Version: 1},
		},
		constants: models.AppConstants{CustomerFeeRate: 0.05, MinBid: 100, MinPledge: 500, VotePrice: 100},
		textValid: true,
	}
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeBackend) GetAppConstants(ctx context.Context) (models.AppConstants, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constants, nil
}

func (f *fakeBackend) GetPost(ctx context.Context, postID string) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return models.Post{}, f.postErr
	}
	return f.post, nil
}

func (f *fakeBackend) GetOptions(ctx context.Context, postID, pagingToken string, limit int) (models.OptionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return models.OptionPage{}, f.postErr
	}
	if pagingToken != "" {
		return models.OptionPage{}, nil
	}
	return models.OptionPage{Options: f.options, NextPagingToken: f.nextToken}, nil
}

func (f *fakeBackend) Contribute(ctx context.Context, c models.Contribution) (models.ContributionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contributions = append(f.contributions, c)
	return f.result, nil
}

func (f *fakeBackend) ValidateText(ctx context.Context, text string, kind models.TextKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validated = append(f.validated, text)
	return f.textValid && !f.blocked[text], nil
}

func (f *fakeBackend) CreateSetupIntent(ctx context.Context, req models.SetupIntentRequest) (*models.SetupIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents = append(f.intents, req)
	return &models.SetupIntent{ClientSecret: "seti_1", Purpose: req.Purpose, IsGuest: req.IsGuest}, nil
}

func (f *fakeBackend) UpdateSetupIntent(ctx context.Context, intent *models.SetupIntent, p models.Purpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, p)
	return nil
}

func (f *fakeBackend) DeleteOption(ctx context.Context, postID, optionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, postID+"/"+optionID)
	return nil
}

func (f *fakeBackend) SetTokens(a, r string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = a, r
}

func (f *fakeBackend) Tokens() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, f.refresh
}

// fakeHub keeps the handlers so tests can deliver events by hand.
type fakeHub struct {
	mu           sync.Mutex
	handlers     map[string]push.Handler
	unsubscribed int
}

func (h *fakeHub) Subscribe(postID string, fn push.Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handlers == nil {
		h.handlers = map[string]push.Handler{}
	}
	h.handlers[postID] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.unsubscribed++
	}
}

func (h *fakeHub) deliver(ev models.PushEvent) {
	h.mu.Lock()
	fn := h.handlers[ev.Post()]
	h.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		SignUpURL:          "http://localhost:8080/signup",
		SuccessURL:         "http://localhost:8080/ok",
		CancelURL:          "http://localhost:8080/cancel",
		Locale:             "en",
		ValidationDebounce: time.Millisecond,
		ConstantsTTL:       time.Minute,
	}
}

// newTestApp builds an App over fb with a real cache. input feeds the
// prompts; everything printed lands in the returned buffer.
func newTestApp(t *testing.T, fb *fakeBackend, input string) (*App, *fakeHub, *bytes.Buffer) {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hub := &fakeHub{}
	out := &bytes.Buffer{}
	sessions := services.NewSessionService(fb, db, []byte("test-device"), "en")
	a := newApp(testConfig(), logging.Nop{}, fb, sessions, hub, db, strings.NewReader(input), out)
	return a, hub, out
}

// stubSecrets makes readPassword return values in order.
func stubSecrets(t *testing.T, values ...string) {
	t.Helper()
	orig := readPassword
	var mu sync.Mutex
	readPassword = func(int) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(values) == 0 {
			return []byte{}, nil
		}
		v := values[0]
		values = values[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() { readPassword = orig })
}
