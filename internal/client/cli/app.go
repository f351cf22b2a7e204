package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/config"
	"github.com/dmitrijs2005/bidsync/internal/client/payment"
	"github.com/dmitrijs2005/bidsync/internal/client/push"
	"github.com/dmitrijs2005/bidsync/internal/client/reconcile"
	"github.com/dmitrijs2005/bidsync/internal/client/services"
	"github.com/dmitrijs2005/bidsync/internal/client/session"
	"github.com/dmitrijs2005/bidsync/internal/client/validation"
	"github.com/dmitrijs2005/bidsync/internal/i18n"
	"github.com/dmitrijs2005/bidsync/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// backend is the connection the App talks through: the RPC surface plus
// the token pair it carries.
type backend interface {
	client.Client
	services.TokenHolder
}

type optionService interface {
	Open(ctx context.Context, postID string, onCached func(reconcile.Snapshot)) (*services.Feed, error)
	LoadMore(ctx context.Context, feed *services.Feed) (int, error)
	Delete(ctx context.Context, feed *services.Feed, optionID string) error
	Persist(ctx context.Context, feed *services.Feed) error
}

type subscriber interface {
	Subscribe(postID string, fn push.Handler) (unsubscribe func())
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	api       backend
	sessions  services.SessionService
	constants *services.ConstantsCache
	hub       subscriber
	// optionsFor builds the option service of a session.
	optionsFor func(session.Session) optionService
	closers    []func() error

	reader *bufio.Reader
	out    *syncWriter

	mu          sync.Mutex
	Mode        Mode
	session     session.Session
	tr          *i18n.Translator
	options     optionService
	feed        *services.Feed
	flow        *payment.Flow
	unsubscribe func()
	// titles checks new option titles of the open post.
	titles *validation.Validator
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.New(c.LogFormat, c.LogLevel, os.Stderr).With("app", "bidsync")

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, "", "")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions := services.NewSessionService(apiClient, db, []byte(c.DeviceSecret), c.Locale)
	apiClient.OnTokensRefreshed(func(access, refresh string) {
		if err := sessions.Save(context.Background(), access, refresh); err != nil {
			logger.Warn(ctx, "saving refreshed tokens failed", "err", err)
		}
	})

	hub := push.NewHub(push.NewSubscriber(c.PushURL, apiClient.AccessToken, logger))

	a := newApp(c, logger, apiClient, sessions, hub, db, os.Stdin, os.Stdout)
	a.closers = []func() error{
		func() error { hub.Close(); return nil },
		apiClient.Close,
		db.Close,
	}

	sess, err := sessions.Restore(ctx, c.AccessToken, c.RefreshToken)
	if err != nil {
		logger.Warn(ctx, "stored session unusable, continuing as guest", "err", err)
		if sess, err = sessions.Logout(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}
	a.setSession(sess)

	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, api backend, sessions services.SessionService, hub subscriber, db *sql.DB, in io.Reader, out io.Writer) *App {
	a := &App{
		config:    c,
		logger:    logger,
		api:       api,
		sessions:  sessions,
		constants: services.NewConstantsCache(api, c.ConstantsTTL),
		hub:       hub,
		reader:    bufio.NewReader(in),
		out:       &syncWriter{w: out},
	}
	a.optionsFor = func(s session.Session) optionService {
		return services.NewOptionService(api, db, a.constants, s, logger)
	}
	a.setSession(session.Guest(c.Locale))
	return a
}

// setSession switches the user. The open post is closed because its view
// carries per-user flags.
func (a *App) setSession(s session.Session) {
	a.closeFeed()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	a.tr = i18n.New(s.Locale)
	a.options = a.optionsFor(s)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "mode switched", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) translator() *i18n.Translator {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tr
}

func (a *App) currentSession() session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// syncWriter serializes writes. Push handlers print from their own
// goroutines while a prompt may be waiting for input.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// say prints one line for the user.
func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the open post, the push hub, the connection and the cache.
func (a *App) Close() {
	a.closeFeed()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "err", err)
		}
	}
	a.closers = nil
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.api.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
