// Package devserver runs the in-memory development backend: the gRPC
// decision service plus the websocket push channel.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/devserver/config"
	"github.com/dmitrijs2005/bidsync/internal/devserver/push"
	"github.com/dmitrijs2005/bidsync/internal/devserver/store"
	"github.com/dmitrijs2005/bidsync/internal/devserver/users"
	"github.com/dmitrijs2005/bidsync/internal/logging"

	gs "github.com/dmitrijs2005/bidsync/internal/devserver/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	users  *users.Service
	store  *store.Store
	broker *push.Broker
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stdout)

	us := users.NewService(c)
	broker := push.NewBroker(us, logger)
	st := store.NewStore(DefaultConstants, broker)
	Seed(st, us, c.DemoUsername, time.Now())

	return &App{config: c, logger: logger, users: us, store: st, broker: broker}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// announceTokens logs a token pair for the demo account so a client can
// be started against this backend right away.
func (app *App) announceTokens(ctx context.Context) {
	pair, err := app.users.Login(app.config.DemoUsername)
	if err != nil {
		app.logger.Error(ctx, "demo login failed", "err", err)
		return
	}
	app.logger.Info(ctx, "demo account ready",
		"username", app.config.DemoUsername,
		"access_token", pair.AccessToken,
		"refresh_token", pair.RefreshToken)
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.store)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.broker.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		app.broker.Close()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.announceTokens(ctx)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
