package models

import "time"

// PostKind classifies a decision post.
type PostKind string

const (
	PostKindAuction        PostKind = "auction"
	PostKindCrowdfunding   PostKind = "crowdfunding"
	PostKindMultipleChoice PostKind = "multiple_choice"
)

// Post is the parent decision entity.
type Post struct {
	ID           string
	Kind         PostKind
	Title        string
	TotalAmount  int64
	OptionCount  int64
	TargetAmount int64
	StartsAt     time.Time
	ExpiresAt    time.Time
	Creator      User
	Version      int64
}

// Capabilities describes what an option list of a given post kind allows.
type Capabilities struct {
	// AmountInput means contributions carry a user-chosen amount.
	AmountInput bool
	// FreeTextEntry means a contribution may create a new option by title.
	FreeTextEntry bool
	// WhitelistOnly means only existing options can be supported.
	WhitelistOnly bool
	// Votes means contributions are counted in votes rather than amounts.
	Votes bool
}

// CapabilitiesFor returns the option list capabilities of a post kind.
func CapabilitiesFor(kind PostKind) Capabilities {
	switch kind {
	case PostKindAuction:
		return Capabilities{AmountInput: true, FreeTextEntry: true}
	case PostKindCrowdfunding:
		return Capabilities{AmountInput: true, WhitelistOnly: true}
	case PostKindMultipleChoice:
		return Capabilities{FreeTextEntry: true, Votes: true}
	default:
		return Capabilities{WhitelistOnly: true}
	}
}

// TextKind selects the moderation rules used by text validation.
type TextKind string

const (
	TextKindAuctionOption TextKind = "auction_option"
	TextKindPollOption    TextKind = "poll_option"
	TextKindComment       TextKind = "comment"
)

// TextKindFor returns the validation kind for new option titles of a post kind.
func TextKindFor(kind PostKind) TextKind {
	if kind == PostKindMultipleChoice {
		return TextKindPollOption
	}
	return TextKindAuctionOption
}
