// Package models defines client-side data models for decision posts,
// their options, payments and push events.
package models

import (
	"strconv"
	"strings"
	"time"
)

// User is a reference to an option or post creator.
type User struct {
	ID        string
	Username  string
	AvatarURL string
}

// Option is a single bid, pledge or choice under a decision post.
type Option struct {
	// ID is server-assigned and unique within a post.
	ID    string
	Title string

	// Amount is the total contributed amount in minor currency units.
	Amount         int64
	SupporterCount int64
	Creator        User

	// Version is the server sequence of the last change, 0 when unknown.
	Version   int64
	CreatedAt time.Time

	// Client-side flags.
	IsHighest       bool
	IsSupportedByMe bool
	IsCreatedByMe   bool
}

// OptionPage is one page of a post's options.
type OptionPage struct {
	Options         []Option
	NextPagingToken string
}

// CompareIDs orders option identifiers. Numeric identifiers compare
// numerically, anything else lexically.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
