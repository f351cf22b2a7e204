// Package payment drives one contribution from setup intent to result.
//
// A Flow moves through
//
//	idle → awaitingSetupIntent → awaitingConfirmation → submitting → success | failure
//
// and never retries on its own: after a failure the caller starts again
// with Begin. On success the returned option is merged into the view; on
// failure the view is left untouched and the setup intent is destroyed.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/dmitrijs2005/bidsync/internal/netx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingSetupIntent
	StateAwaitingConfirmation
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSetupIntent:
		return "awaitingSetupIntent"
	case StateAwaitingConfirmation:
		return "awaitingConfirmation"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Client is the part of the backend contract the flow needs.
type Client interface {
	CreateSetupIntent(ctx context.Context, req models.SetupIntentRequest) (*models.SetupIntent, error)
	UpdateSetupIntent(ctx context.Context, intent *models.SetupIntent, purpose models.Purpose) error
	Contribute(ctx context.Context, c models.Contribution) (models.ContributionResult, error)
}

type ConstantsProvider interface {
	Constants(ctx context.Context) (models.AppConstants, error)
}

// OptionMerger receives the option returned by a successful contribution.
type OptionMerger interface {
	MergeOptions(opts ...models.Option) []models.Option
}

// Settings are the per-session inputs of a flow.
type Settings struct {
	IsGuest    bool
	SignUpURL  string
	SuccessURL string
	CancelURL  string
}

// Quote is what the confirmation step shows.
type Quote struct {
	Amount int64
	Fee    int64
	Total  int64
}

// Outcome of a confirmed payment. For guests only RedirectURL is set.
type Outcome struct {
	Option      *models.Option
	ShowSuccess bool
	RedirectURL string
}

type Flow struct {
	client    Client
	constants ConstantsProvider
	merger    OptionMerger
	settings  Settings
	logger    logging.Logger
	newKey    func() string

	mu         sync.Mutex
	state      State
	purpose    models.Purpose
	intent     *models.SetupIntent
	quote      Quote
	supporting string
}

func NewFlow(client Client, constants ConstantsProvider, merger OptionMerger, settings Settings, logger logging.Logger) *Flow {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Flow{
		client:    client,
		constants: constants,
		merger:    merger,
		settings:  settings,
		logger:    logger.With("module", "payment"),
		newKey:    uuid.NewString,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Supporting returns the id of the option being supported by the pending
// payment, empty when none.
func (f *Flow) Supporting() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supporting
}

// Begin opens the payment for purpose: it checks the amount against the
// published minimum, creates a setup intent and returns the quote to confirm.
func (f *Flow) Begin(ctx context.Context, purpose models.Purpose) (Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateIdle, StateSuccess, StateFailure:
	default:
		return Quote{}, fmt.Errorf("begin in state %s: %w", f.state, ErrBusy)
	}
	f.reset()
	f.state = StateAwaitingSetupIntent

	consts, err := f.constants.Constants(ctx)
	if err != nil {
		return Quote{}, f.fail(ctx, "", err)
	}

	purpose = normalize(purpose, consts)
	if err := checkMinimum(purpose, consts); err != nil {
		f.state = StateIdle
		return Quote{}, &Error{Key: KeyAmountTooLow, Err: err}
	}

	intent, err := f.client.CreateSetupIntent(ctx, models.SetupIntentRequest{
		Purpose:    purpose,
		IsGuest:    f.settings.IsGuest,
		SuccessURL: f.settings.SuccessURL,
		CancelURL:  f.settings.CancelURL,
	})
	if err != nil {
		return Quote{}, f.fail(ctx, "", err)
	}

	f.intent = intent
	f.purpose = purpose
	f.quote = quote(purpose.Amount(), consts.CustomerFeeRate)
	f.supporting, _ = models.TargetOption(purpose)
	f.state = StateAwaitingConfirmation

	f.logger.Debug(ctx, "setup intent ready", "purpose", purpose.Kind(), "amount", f.quote.Amount, "fee", f.quote.Fee)
	return f.quote, nil
}

// UpdateAmount changes the amount while awaiting confirmation and updates
// the setup intent accordingly. For votes the argument is the vote count.
func (f *Flow) UpdateAmount(ctx context.Context, amount int64) (Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAwaitingConfirmation {
		return Quote{}, fmt.Errorf("update amount in state %s: %w", f.state, ErrBusy)
	}

	consts, err := f.constants.Constants(ctx)
	if err != nil {
		return Quote{}, f.fail(ctx, "", err)
	}

	next := f.purpose.WithAmount(amount)
	if v, ok := f.purpose.(models.Vote); ok {
		v.Votes, v.VoteAmount = amount, 0
		next = normalize(v, consts)
	}
	if err := checkMinimum(next, consts); err != nil {
		return f.quote, &Error{Key: KeyAmountTooLow, Err: err}
	}

	if err := f.client.UpdateSetupIntent(ctx, f.intent, next); err != nil {
		return Quote{}, f.fail(ctx, "", err)
	}

	f.purpose = next
	f.quote = quote(next.Amount(), consts.CustomerFeeRate)
	return f.quote, nil
}

// Confirm submits the contribution with the chosen payment method. Guests
// get a sign-up redirect carrying the setup intent secret instead.
func (f *Flow) Confirm(ctx context.Context, method models.PaymentMethod) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAwaitingConfirmation {
		return Outcome{}, fmt.Errorf("confirm in state %s: %w", f.state, ErrBusy)
	}

	if f.intent.IsGuest {
		redirect, err := netx.WithQuery(f.settings.SignUpURL, common.SetupIntentSecretParam, f.intent.ClientSecret)
		if err != nil {
			return Outcome{}, f.fail(ctx, "", err)
		}
		f.intent.Destroy()
		f.supporting = ""
		f.state = StateSuccess
		f.logger.Info(ctx, "guest redirected to sign up", "purpose", f.purpose.Kind())
		return Outcome{RedirectURL: redirect}, nil
	}

	if method.Empty() {
		return Outcome{}, ErrNoPaymentMethod
	}

	f.state = StateSubmitting

	res, err := f.client.Contribute(ctx, models.Contribution{
		Purpose:           f.purpose,
		CustomerFee:       f.quote.Fee,
		SetupIntentSecret: f.intent.ClientSecret,
		Method:            method,
		IdempotencyKey:    f.newKey(),
	})
	if err != nil {
		return Outcome{}, f.fail(ctx, "", err)
	}
	if res.Status != models.StatusSuccess {
		return Outcome{}, f.fail(ctx, res.Status, ErrRejected)
	}
	if res.Option == nil {
		return Outcome{}, f.fail(ctx, "", errors.New("accepted contribution without option"))
	}

	opt := *res.Option
	opt.IsSupportedByMe = true
	if f.merger != nil {
		f.merger.MergeOptions(opt)
	}

	f.intent.Destroy()
	f.supporting = ""
	f.state = StateSuccess

	f.logger.Info(ctx, "contribution accepted", "purpose", f.purpose.Kind(), "option_id", opt.ID, "amount", f.quote.Amount)
	return Outcome{Option: &opt, ShowSuccess: true}, nil
}

// Cancel abandons the pending payment and returns to idle.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Flow) reset() {
	f.intent.Destroy()
	f.intent = nil
	f.purpose = nil
	f.quote = Quote{}
	f.supporting = ""
	f.state = StateIdle
}

func (f *Flow) fail(ctx context.Context, status models.ContributionStatus, err error) error {
	f.intent.Destroy()
	f.supporting = ""
	f.state = StateFailure

	key := KeyRequestFailed
	if status != "" {
		key = MessageKey(status)
	}
	f.logger.Warn(ctx, "payment failed", "status", string(status), "key", key, "err", err)
	return &Error{Status: status, Key: key, Err: err}
}

// Fee is ceil(amount × rate) in minor units, computed in decimal.
func Fee(amount int64, rate float64) int64 {
	if amount <= 0 || rate <= 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(rate)).Ceil().IntPart()
}

func quote(amount int64, rate float64) Quote {
	fee := Fee(amount, rate)
	return Quote{Amount: amount, Fee: fee, Total: amount + fee}
}

// normalize prices votes at the published vote price.
func normalize(p models.Purpose, c models.AppConstants) models.Purpose {
	if v, ok := p.(models.Vote); ok && v.VoteAmount == 0 {
		v.VoteAmount = v.Votes * c.VotePrice
		return v
	}
	return p
}

func checkMinimum(p models.Purpose, c models.AppConstants) error {
	var minimum int64
	switch v := p.(type) {
	case models.PlaceBid:
		minimum = c.MinBid
	case models.Pledge:
		minimum = c.MinPledge
	case models.Vote:
		if v.Votes <= 0 {
			return fmt.Errorf("%w: %d votes", ErrAmountTooLow, v.Votes)
		}
		return nil
	default:
		return nil
	}
	if p.Amount() < minimum || p.Amount() <= 0 {
		return fmt.Errorf("%w: %d < %d", ErrAmountTooLow, p.Amount(), minimum)
	}
	return nil
}

// IsUserFacing reports whether err carries a message key worth a toast.
func IsUserFacing(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
