package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := a.currentSession().DisplayName()
	if m := a.mode(); m != "" {
		s = s + " " + string(m)
	}
	a.mu.Lock()
	if a.feed != nil {
		s = s + " #" + a.feed.View.PostID()
	}
	a.mu.Unlock()
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	a.say("Welcome to bidsync (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)
}
