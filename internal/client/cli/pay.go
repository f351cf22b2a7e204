package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/payment"
	"github.com/dmitrijs2005/bidsync/internal/client/services"
	"github.com/dmitrijs2005/bidsync/internal/client/validation"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/i18n"
)

var errCancelled = errors.New("cancelled by user")

func (a *App) Bid(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.say("Usage: bid <amount> <option id | new title>")
		return nil
	}
	feed, flow, ok := a.openPost(models.PostKindAuction)
	if !ok {
		return errNoPost
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		a.say(err.Error())
		return err
	}

	bid := models.PlaceBid{PostID: feed.View.PostID(), BidAmount: amount}
	if _, known := feed.View.Option(args[1]); known && len(args) == 2 {
		bid.OptionID = args[1]
	} else {
		title := strings.Join(args[1:], " ")
		if !a.validTitle(ctx, title) {
			return nil
		}
		bid.OptionTitle = title
	}

	return a.pay(ctx, feed, flow, bid)
}

func (a *App) Pledge(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.say("Usage: pledge <amount> <option id>")
		return nil
	}
	feed, flow, ok := a.openPost(models.PostKindCrowdfunding)
	if !ok {
		return errNoPost
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		a.say(err.Error())
		return err
	}
	if _, known := feed.View.Option(args[1]); !known {
		a.say("Unknown option", args[1])
		return nil
	}

	return a.pay(ctx, feed, flow, models.Pledge{PostID: feed.View.PostID(), PledgeAmount: amount, OptionID: args[1]})
}

func (a *App) Vote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.say("Usage: vote <option id> <votes>")
		return nil
	}
	feed, flow, ok := a.openPost(models.PostKindMultipleChoice)
	if !ok {
		return errNoPost
	}

	votes, err := parseCount(args[1])
	if err != nil {
		a.say(err.Error())
		return err
	}
	if _, known := feed.View.Option(args[0]); !known {
		a.say("Unknown option", args[0])
		return nil
	}

	return a.pay(ctx, feed, flow, models.Vote{PostID: feed.View.PostID(), OptionID: args[0], Votes: votes})
}

// Suggest proposes a new option. The title is checked while the first
// contribution to it is asked for; typing a different title instead of a
// number replaces the pending check.
func (a *App) Suggest(ctx context.Context, args []string) error {
	feed, flow := a.current()
	if feed == nil {
		a.say("Open a post first: open <post id>")
		return errNoPost
	}
	post := feed.View.Snapshot().Post
	if !feed.View.Capabilities().FreeTextEntry {
		a.say("This post only accepts its listed options.")
		return nil
	}
	titles := a.titleValidator()

	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = GetSimpleText(a.reader, "Title of the new option", a.out); err != nil {
			return err
		}
	}
	pending := titles.Input(ctx, title)

	votes := post.Kind == models.PostKindMultipleChoice
	prompt, parse := "Bid amount, or a different title", parseAmount
	if votes {
		prompt, parse = "Votes, or a different title", parseCount
	}

	var n int64
	for {
		answer, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if answer == "" {
			a.say("Cancelled.")
			return nil
		}
		if !numeric(answer) {
			title = answer
			pending = titles.Input(ctx, title)
			continue
		}
		if n, err = parse(answer); err != nil {
			a.say(err.Error())
			continue
		}
		break
	}

	if !a.accepted(ctx, <-pending) {
		return nil
	}
	if votes {
		return a.pay(ctx, feed, flow, models.Vote{PostID: post.ID, OptionTitle: title, Votes: n})
	}
	return a.pay(ctx, feed, flow, models.PlaceBid{PostID: post.ID, BidAmount: n, OptionTitle: title})
}

// openPost returns the open post when it is of the given kind.
func (a *App) openPost(kind models.PostKind) (*services.Feed, *payment.Flow, bool) {
	feed, flow := a.current()
	if feed == nil {
		a.say("Open a post first: open <post id>")
		return nil, nil, false
	}
	if k := feed.View.Snapshot().Post.Kind; k != kind {
		a.say("This command does not apply to a", string(k), "post.")
		return nil, nil, false
	}
	return feed, flow, true
}

func (a *App) titleValidator() *validation.Validator {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.titles
}

func (a *App) validTitle(ctx context.Context, title string) bool {
	return a.accepted(ctx, <-a.titleValidator().Input(ctx, title))
}

// accepted prints why a title check did not pass.
func (a *App) accepted(ctx context.Context, res validation.Result) bool {
	if res.Err != nil {
		a.report(ctx, res.Err)
		return false
	}
	if !res.Valid {
		a.say(a.translator().Text(i18n.KeyTextRejected))
		return false
	}
	return true
}

// pay walks purpose through the payment flow: quote, optional amount
// changes, payment method, confirmation.
func (a *App) pay(ctx context.Context, feed *services.Feed, flow *payment.Flow, purpose models.Purpose) error {
	tr := a.translator()

	q, err := flow.Begin(ctx, purpose)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	_, votes := purpose.(models.Vote)
	for {
		a.say(tr.Text(i18n.KeyQuote, tr.Money(q.Amount), tr.Money(q.Fee), tr.Money(q.Total)))

		prompt := "New amount, Enter to continue, c to cancel"
		if votes {
			prompt = "New number of votes, Enter to continue, c to cancel"
		}
		answer, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			flow.Cancel()
			return err
		}
		if answer == "" {
			break
		}
		if answer == "c" {
			flow.Cancel()
			a.say("Cancelled.")
			return errCancelled
		}

		parse := parseAmount
		if votes {
			parse = parseCount
		}
		n, err := parse(answer)
		if err != nil {
			a.say(err.Error())
			continue
		}
		next, err := flow.UpdateAmount(ctx, n)
		if err != nil {
			a.report(ctx, err)
			if flow.State() != payment.StateAwaitingConfirmation {
				return err
			}
			continue
		}
		q = next
	}

	var method models.PaymentMethod
	if !a.currentSession().IsGuest {
		if method, err = a.askPaymentMethod(); err != nil {
			flow.Cancel()
			return err
		}
	}

	out, err := flow.Confirm(ctx, method)
	if errors.Is(err, payment.ErrNoPaymentMethod) {
		flow.Cancel()
		a.say("No card given, payment cancelled.")
		return err
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if out.RedirectURL != "" {
		a.say(tr.Text(i18n.KeyGuestSignUp, out.RedirectURL))
		return nil
	}
	if out.ShowSuccess && out.Option != nil {
		a.say(tr.Text(i18n.KeyContributionDone, out.Option.Title, tr.Money(out.Option.Amount)))
		a.persist(ctx, feed)
	}
	return nil
}

func (a *App) askPaymentMethod() (models.PaymentMethod, error) {
	card, err := GetSimpleText(a.reader, "Saved card id (Enter to use a new card)", a.out)
	if err != nil {
		return models.PaymentMethod{}, err
	}
	if card != "" {
		return models.PaymentMethod{CardID: card}, nil
	}

	token, err := GetSecret("Card token", a.out)
	if err != nil {
		return models.PaymentMethod{}, err
	}
	defer common.WipeByteArray(token)

	method := models.PaymentMethod{Token: strings.TrimSpace(string(token))}
	if method.Token == "" {
		return models.PaymentMethod{}, nil
	}

	save, err := GetConfirmation(a.reader, "Save this card for later?", a.out)
	if err != nil {
		return models.PaymentMethod{}, err
	}
	method.SaveCard = save
	return method, nil
}

func (a *App) persist(ctx context.Context, feed *services.Feed) {
	a.mu.Lock()
	opts := a.options
	a.mu.Unlock()

	if err := opts.Persist(ctx, feed); err != nil {
		a.logger.Warn(ctx, "cache write failed", "post_id", feed.View.PostID(), "err", err)
	}
}
