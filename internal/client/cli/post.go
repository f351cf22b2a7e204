package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/payment"
	"github.com/dmitrijs2005/bidsync/internal/client/reconcile"
	"github.com/dmitrijs2005/bidsync/internal/client/services"
	"github.com/dmitrijs2005/bidsync/internal/client/validation"
	"github.com/dmitrijs2005/bidsync/internal/i18n"
)

var errNoPost = errors.New("no post is open")

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: open <post id>")
		return nil
	}

	a.closeFeed()

	a.mu.Lock()
	opts := a.options
	a.mu.Unlock()

	feed, err := opts.Open(ctx, args[0], func(s reconcile.Snapshot) {
		a.say("(cached)")
		a.render(s)
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if feed.Stale {
		a.setMode(ModeOffline)
		a.say(a.translator().Text(i18n.KeyOffline))
	}

	sess := a.currentSession()
	flow := payment.NewFlow(a.api, a.constants, feed.View, payment.Settings{
		IsGuest:    sess.IsGuest,
		SignUpURL:  a.config.SignUpURL,
		SuccessURL: a.config.SuccessURL,
		CancelURL:  a.config.CancelURL,
	}, a.logger)
	unsubscribe := a.hub.Subscribe(feed.View.PostID(), a.pushHandler(feed))
	titles := validation.New(a.api, models.TextKindFor(feed.View.Snapshot().Post.Kind), a.config.ValidationDebounce, a.logger)

	a.mu.Lock()
	a.feed, a.flow, a.unsubscribe, a.titles = feed, flow, unsubscribe, titles
	a.mu.Unlock()

	a.render(feed.View.Snapshot())
	return nil
}

func (a *App) Show(ctx context.Context) error {
	feed, _ := a.current()
	if feed == nil {
		a.say("Open a post first: open <post id>")
		return errNoPost
	}
	a.render(feed.View.Snapshot())
	return nil
}

func (a *App) More(ctx context.Context) error {
	feed, _ := a.current()
	if feed == nil {
		a.say("Open a post first: open <post id>")
		return errNoPost
	}

	a.mu.Lock()
	opts := a.options
	a.mu.Unlock()

	n, err := opts.LoadMore(ctx, feed)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if n == 0 {
		a.say(a.translator().Text(i18n.KeyListExhausted))
		return nil
	}
	a.render(feed.View.Snapshot())
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: delete <option id>")
		return nil
	}
	feed, _ := a.current()
	if feed == nil {
		a.say("Open a post first: open <post id>")
		return errNoPost
	}

	a.mu.Lock()
	opts := a.options
	a.mu.Unlock()

	if err := opts.Delete(ctx, feed, args[0]); err != nil {
		a.report(ctx, err)
		return err
	}
	a.say("Deleted option", args[0])
	return nil
}

func (a *App) current() (*services.Feed, *payment.Flow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.feed, a.flow
}

// closeFeed leaves the open post: its push subscription ends, any
// unconfirmed payment is dropped and pending title checks stop.
func (a *App) closeFeed() {
	a.mu.Lock()
	unsubscribe, flow, titles := a.unsubscribe, a.flow, a.titles
	a.feed, a.flow, a.unsubscribe, a.titles = nil, nil, nil, nil
	a.mu.Unlock()

	if titles != nil {
		titles.Close()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	if flow != nil {
		flow.Cancel()
	}
}

func (a *App) pushHandler(feed *services.Feed) func(models.PushEvent) {
	return func(ev models.PushEvent) {
		ctx := context.Background()
		if !feed.View.Apply(ctx, ev) {
			return
		}

		tr := a.translator()
		switch e := ev.(type) {
		case models.OptionUpserted:
			a.say(tr.Text(i18n.KeyOptionUpdated, e.Option.Title, tr.Money(e.Option.Amount)))
		case models.PostUpdated:
			a.say(tr.Text(i18n.KeyPostUpdated, tr.Money(e.TotalAmount), e.OptionCount))
		}
	}
}

// report prints the user-facing message of err. Unreachable backends turn
// the client offline.
func (a *App) report(ctx context.Context, err error) {
	tr := a.translator()

	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		a.say(tr.Text(i18n.KeyOffline))
	case payment.IsUserFacing(err):
		a.say(tr.Text(payment.KeyOf(err)))
	case errors.Is(err, client.ErrNoData):
		a.say("Post not found.")
	case errors.Is(err, client.ErrUnauthorized):
		a.say("Not allowed. Log in with an account to do this.")
	default:
		a.say(tr.Text(payment.KeyRequestFailed))
	}
	a.logger.Warn(ctx, "command failed", "err", err)
}

func (a *App) render(s reconcile.Snapshot) {
	tr := a.translator()

	var b strings.Builder
	fmt.Fprintf(&b, "#%s %s [%s]\n", s.Post.ID, s.Post.Title, s.Post.Kind)
	fmt.Fprintf(&b, "Total %s", tr.Money(s.Post.TotalAmount))
	if s.Post.TargetAmount > 0 {
		fmt.Fprintf(&b, " of %s", tr.Money(s.Post.TargetAmount))
	}
	fmt.Fprintf(&b, ", %d options\n", s.Post.OptionCount)

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAMOUNT\tSUPPORTERS\t")
	for _, o := range s.Options {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.Title, tr.Money(o.Amount), o.SupporterCount, marks(o))
	}
	_ = tw.Flush()

	a.say(strings.TrimRight(b.String(), "\n"))
}

func marks(o models.Option) string {
	var m []string
	if o.IsHighest {
		m = append(m, "highest")
	}
	if o.IsSupportedByMe {
		m = append(m, "supported")
	}
	if o.IsCreatedByMe {
		m = append(m, "mine")
	}
	return strings.Join(m, ",")
}
