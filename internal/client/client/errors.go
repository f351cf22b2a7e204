package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoData is returned when a call succeeds but the response lacks the
	// payload the caller needs.
	ErrNoData = errors.New("response carries no data")

	ErrUnsupportedPurpose = errors.New("purpose cannot be contributed")
	ErrSetupIntentFailed  = errors.New("setup intent rejected")
	ErrUnknownEvent       = errors.New("unknown push event")
)
