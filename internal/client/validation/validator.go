// Package validation checks free-text option titles against the backend
// moderation rules while the user types.
//
// Each input restarts a debounce timer. When a new input arrives, the pending
// timer is stopped and any in-flight request is cancelled through its
// context, so a slow response for an older text can never overwrite the
// verdict for a newer one. A sequence number backs this up for responses
// that race with the cancellation.
package validation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/logging"
)

// DefaultDebounce is the delay between the last keystroke and the request.
const DefaultDebounce = 250 * time.Millisecond

var (
	ErrSuperseded = errors.New("validation superseded by newer input")
	ErrClosed     = errors.New("validator closed")
)

// Checker is the backend call behind the validator.
type Checker interface {
	ValidateText(ctx context.Context, text string, kind models.TextKind) (bool, error)
}

// Result is the verdict for one input. Err is set when the request failed
// or was superseded; Valid is false then.
type Result struct {
	Text  string
	Valid bool
	Err   error
}

type request struct {
	seq    uint64
	ch     chan Result
	cancel context.CancelFunc
	timer  *time.Timer
	done   bool
}

// Validator debounces and validates one text field.
type Validator struct {
	checker Checker
	kind    models.TextKind
	delay   time.Duration
	logger  logging.Logger

	mu      sync.Mutex
	seq     uint64
	current *request
	valid   bool
	closed  bool
}

func New(checker Checker, kind models.TextKind, delay time.Duration, logger logging.Logger) *Validator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Validator{
		checker: checker,
		kind:    kind,
		delay:   delay,
		logger:  logger.With("module", "validation", "kind", string(kind)),
	}
}

// Input records a new value of the field. The returned channel receives
// exactly one Result. Blank text is rejected at once without a request.
func (v *Validator) Input(ctx context.Context, text string) <-chan Result {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan Result, 1)
	if v.closed {
		ch <- Result{Text: text, Err: ErrClosed}
		return ch
	}

	v.supersedeLocked()
	v.seq++
	v.valid = false

	if strings.TrimSpace(text) == "" {
		ch <- Result{Text: text}
		return ch
	}

	rctx, cancel := context.WithCancel(ctx)
	req := &request{seq: v.seq, ch: ch, cancel: cancel}
	req.timer = time.AfterFunc(v.delay, func() { v.run(rctx, req, text) })
	v.current = req
	return ch
}

// IsTextValid reports the verdict for the latest input. It is false while a
// check is pending.
func (v *Validator) IsTextValid() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.valid
}

// Pending reports whether a check is waiting or in flight.
func (v *Validator) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current != nil && !v.current.done
}

// Close cancels any pending check. Later inputs fail with ErrClosed.
func (v *Validator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current != nil {
		v.finishLocked(v.current, Result{Err: ErrClosed})
	}
	v.closed = true
	v.valid = false
}

func (v *Validator) run(ctx context.Context, req *request, text string) {
	ok, err := v.checker.ValidateText(ctx, text, v.kind)

	v.mu.Lock()
	defer v.mu.Unlock()

	if req.done || req.seq != v.seq {
		return
	}

	if err != nil {
		v.logger.Warn(ctx, "text validation failed", "err", err)
		v.finishLocked(req, Result{Text: text, Err: err})
		return
	}

	v.valid = ok
	v.finishLocked(req, Result{Text: text, Valid: ok})
}

func (v *Validator) supersedeLocked() {
	if v.current == nil || v.current.done {
		return
	}
	v.finishLocked(v.current, Result{Err: ErrSuperseded})
}

func (v *Validator) finishLocked(req *request, res Result) {
	if req.done {
		return
	}
	req.done = true
	req.timer.Stop()
	req.cancel()
	req.ch <- res
}
