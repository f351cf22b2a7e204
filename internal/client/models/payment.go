package models

// PurposeKind names the variant of a setup intent purpose.
type PurposeKind string

const (
	PurposeSaveCard  PurposeKind = "save_card"
	PurposePlaceBid  PurposeKind = "place_bid"
	PurposeVote      PurposeKind = "vote"
	PurposePledge    PurposeKind = "pledge"
	PurposeSubscribe PurposeKind = "subscribe"
)

// Purpose is what a setup intent is created for. The concrete type is chosen
// when the purpose is built and never inferred from its payload.
type Purpose interface {
	Kind() PurposeKind
	// Amount is the contribution amount before fees, in minor units.
	Amount() int64
	// WithAmount returns a copy carrying a different amount. Purposes without
	// an amount return themselves.
	WithAmount(amount int64) Purpose
	isPurpose()
}

type SaveCard struct{}

func (SaveCard) Kind() PurposeKind          { return PurposeSaveCard }
func (SaveCard) Amount() int64              { return 0 }
func (p SaveCard) WithAmount(int64) Purpose { return p }
func (SaveCard) isPurpose()                 {}

// PlaceBid supports an existing auction option, or creates one when
// OptionID is empty and OptionTitle is set.
type PlaceBid struct {
	PostID      string
	BidAmount   int64
	OptionID    string
	OptionTitle string
}

func (PlaceBid) Kind() PurposeKind { return PurposePlaceBid }
func (p PlaceBid) Amount() int64   { return p.BidAmount }
func (p PlaceBid) WithAmount(amount int64) Purpose {
	p.BidAmount = amount
	return p
}
func (PlaceBid) isPurpose() {}

// Vote buys votes for a multiple-choice option. VoteAmount is Votes times
// the published vote price.
type Vote struct {
	PostID      string
	OptionID    string
	OptionTitle string
	Votes       int64
	VoteAmount  int64
}

func (Vote) Kind() PurposeKind { return PurposeVote }
func (p Vote) Amount() int64   { return p.VoteAmount }
func (p Vote) WithAmount(amount int64) Purpose {
	p.VoteAmount = amount
	return p
}
func (Vote) isPurpose() {}

type Pledge struct {
	PostID       string
	PledgeAmount int64
	OptionID     string
}

func (Pledge) Kind() PurposeKind { return PurposePledge }
func (p Pledge) Amount() int64   { return p.PledgeAmount }
func (p Pledge) WithAmount(amount int64) Purpose {
	p.PledgeAmount = amount
	return p
}
func (Pledge) isPurpose() {}

type Subscribe struct {
	CreatorID string
}

func (Subscribe) Kind() PurposeKind          { return PurposeSubscribe }
func (Subscribe) Amount() int64              { return 0 }
func (p Subscribe) WithAmount(int64) Purpose { return p }
func (Subscribe) isPurpose()                 {}

// TargetOption returns the option a purpose supports, if any.
func TargetOption(p Purpose) (id, title string) {
	switch v := p.(type) {
	case PlaceBid:
		return v.OptionID, v.OptionTitle
	case Vote:
		return v.OptionID, v.OptionTitle
	case Pledge:
		return v.OptionID, ""
	}
	return "", ""
}

// SetupIntentRequest is sent to initialize a setup intent.
type SetupIntentRequest struct {
	Purpose    Purpose
	IsGuest    bool
	SuccessURL string
	CancelURL  string
}

// SetupIntent wraps a server-issued client secret. It lives for one
// payment attempt and is never persisted.
type SetupIntent struct {
	ClientSecret string
	Purpose      Purpose
	IsGuest      bool
}

// Destroy clears the secret.
func (s *SetupIntent) Destroy() {
	if s == nil {
		return
	}
	s.ClientSecret = ""
}

// Active reports whether the intent still holds a secret.
func (s *SetupIntent) Active() bool {
	return s != nil && s.ClientSecret != ""
}

// PaymentMethod is either a saved card or a freshly confirmed card token.
type PaymentMethod struct {
	CardID   string
	Token    string
	SaveCard bool
}

func (m PaymentMethod) Empty() bool {
	return m.CardID == "" && m.Token == ""
}

// Contribution is the payload of PlaceBid, Pledge and Vote requests.
type Contribution struct {
	Purpose           Purpose
	CustomerFee       int64
	SetupIntentSecret string
	Method            PaymentMethod
	IdempotencyKey    string
}

// ContributionStatus is the server verdict on a contribution.
type ContributionStatus string

const (
	StatusSuccess           ContributionStatus = "SUCCESS"
	StatusNotEnoughFunds    ContributionStatus = "NOT_ENOUGH_FUNDS"
	StatusCardNotFound      ContributionStatus = "CARD_NOT_FOUND"
	StatusCardCannotBeUsed  ContributionStatus = "CARD_CANNOT_BE_USED"
	StatusBiddingNotStarted ContributionStatus = "BIDDING_NOT_STARTED"
	StatusBiddingEnded      ContributionStatus = "BIDDING_ENDED"
	StatusOptionNotUnique   ContributionStatus = "OPTION_NOT_UNIQUE"
	StatusInternalError     ContributionStatus = "INTERNAL_ERROR"
	StatusUnknown           ContributionStatus = "UNKNOWN"
)

// ContributionResult is the decoded contribution response.
type ContributionResult struct {
	Status ContributionStatus
	Option *Option
}

// AppConstants are the platform-wide payment parameters.
type AppConstants struct {
	CustomerFeeRate float64
	MinBid          int64
	MinPledge       int64
	MinHold         int64
	VotePrice       int64
}
