package payment

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
)

// Message keys surfaced to the user on failure.
const (
	KeyNotEnoughMoney    = "errors.notEnoughMoney"
	KeyCardNotFound      = "errors.cardNotFound"
	KeyCardCannotBeUsed  = "errors.cardCannotBeUsed"
	KeyBiddingNotStarted = "errors.biddingNotStarted"
	KeyBiddingEnded      = "errors.biddingIsEnded"
	KeyOptionNotUnique   = "errors.optionNotUnique"
	KeyAmountTooLow      = "errors.amountTooLow"
	KeyRequestFailed     = "errors.requestFailed"
)

var (
	// ErrBusy is returned when an operation does not fit the current state.
	ErrBusy            = errors.New("payment flow is in another state")
	ErrNoPaymentMethod = errors.New("no card selected")
	ErrAmountTooLow    = errors.New("amount below minimum")
	ErrRejected        = errors.New("contribution rejected")
)

var statusKeys = map[models.ContributionStatus]string{
	models.StatusNotEnoughFunds:    KeyNotEnoughMoney,
	models.StatusCardNotFound:      KeyCardNotFound,
	models.StatusCardCannotBeUsed:  KeyCardCannotBeUsed,
	models.StatusBiddingNotStarted: KeyBiddingNotStarted,
	models.StatusBiddingEnded:      KeyBiddingEnded,
	models.StatusOptionNotUnique:   KeyOptionNotUnique,
}

// MessageKey maps a contribution status to its message key. Unrecognized
// statuses get the generic key.
func MessageKey(status models.ContributionStatus) string {
	if k, ok := statusKeys[status]; ok {
		return k
	}
	return KeyRequestFailed
}

// Error is a failed payment attempt. Key is the message key to show.
type Error struct {
	Status models.ContributionStatus
	Key    string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("payment failed (%s): %s: %v", e.Status, e.Key, e.Err)
	}
	return fmt.Sprintf("payment failed: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KeyOf returns the message key carried by err, or the generic key.
func KeyOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Key
	}
	return KeyRequestFailed
}
