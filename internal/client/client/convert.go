package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/wire"
)

func userFromWire(u *wire.User) models.User {
	if u == nil {
		return models.User{}
	}
	return models.User{ID: u.Id, Username: u.Username, AvatarURL: u.AvatarUrl}
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// OptionFromWire converts a decoded option. Client-derived flags other than
// IsSupportedByMe are left for the sorter.
func OptionFromWire(o *wire.Option) models.Option {
	return models.Option{
		ID:              o.Id,
		Title:           o.Title,
		Amount:          o.Amount,
		SupporterCount:  o.SupporterCount,
		Creator:         userFromWire(o.Creator),
		Version:         o.Version,
		CreatedAt:       unixTime(o.CreatedAtUnix),
		IsSupportedByMe: o.IsSupportedByMe,
	}
}

var postKinds = map[wire.PostKind]models.PostKind{
	wire.PostKindAuction:        models.PostKindAuction,
	wire.PostKindCrowdfunding:   models.PostKindCrowdfunding,
	wire.PostKindMultipleChoice: models.PostKindMultipleChoice,
}

func postFromWire(p *wire.Post) models.Post {
	return models.Post{
		ID:           p.Id,
		Kind:         postKinds[p.Kind],
		Title:        p.Title,
		TotalAmount:  p.TotalAmount,
		OptionCount:  p.OptionCount,
		TargetAmount: p.TargetAmount,
		StartsAt:     unixTime(p.StartsAtUnix),
		ExpiresAt:    unixTime(p.ExpiresAtUnix),
		Creator:      userFromWire(p.Creator),
		Version:      p.Version,
	}
}

var contributionStatuses = map[wire.ContributionStatus]models.ContributionStatus{
	wire.ContributionStatusSuccess:           models.StatusSuccess,
	wire.ContributionStatusNotEnoughFunds:    models.StatusNotEnoughFunds,
	wire.ContributionStatusCardNotFound:      models.StatusCardNotFound,
	wire.ContributionStatusCardCannotBeUsed:  models.StatusCardCannotBeUsed,
	wire.ContributionStatusBiddingNotStarted: models.StatusBiddingNotStarted,
	wire.ContributionStatusBiddingEnded:      models.StatusBiddingEnded,
	wire.ContributionStatusOptionNotUnique:   models.StatusOptionNotUnique,
	wire.ContributionStatusInternalError:     models.StatusInternalError,
}

func contributionStatusFromWire(s wire.ContributionStatus) models.ContributionStatus {
	if st, ok := contributionStatuses[s]; ok {
		return st
	}
	return models.StatusUnknown
}

var textKinds = map[models.TextKind]wire.TextKind{
	models.TextKindAuctionOption: wire.TextKindAuctionOption,
	models.TextKindPollOption:    wire.TextKindPollOption,
	models.TextKindComment:       wire.TextKindComment,
}

// PurposeToWire flattens a purpose into its wire message.
func PurposeToWire(p models.Purpose) (*wire.Purpose, error) {
	switch v := p.(type) {
	case models.SaveCard:
		return &wire.Purpose{Kind: wire.PurposeKindSaveCard}, nil
	case models.PlaceBid:
		return &wire.Purpose{Kind: wire.PurposeKindPlaceBid, PostId: v.PostID, Amount: v.BidAmount, OptionId: v.OptionID, OptionTitle: v.OptionTitle}, nil
	case models.Vote:
		return &wire.Purpose{Kind: wire.PurposeKindVote, PostId: v.PostID, Amount: v.VoteAmount, OptionId: v.OptionID, OptionTitle: v.OptionTitle, Votes: v.Votes}, nil
	case models.Pledge:
		return &wire.Purpose{Kind: wire.PurposeKindPledge, PostId: v.PostID, Amount: v.PledgeAmount, OptionId: v.OptionID}, nil
	case models.Subscribe:
		return &wire.Purpose{Kind: wire.PurposeKindSubscribe, CreatorId: v.CreatorID}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPurpose, p)
	}
}

func contributionToWire(c models.Contribution) *wire.ContributionRequest {
	req := &wire.ContributionRequest{
		Amount:                  c.Purpose.Amount(),
		CustomerFee:             c.CustomerFee,
		SetupIntentClientSecret: c.SetupIntentSecret,
		CardId:                  c.Method.CardID,
		PaymentMethodToken:      c.Method.Token,
		SaveCard:                c.Method.SaveCard,
		IdempotencyKey:          c.IdempotencyKey,
	}
	switch v := c.Purpose.(type) {
	case models.PlaceBid:
		req.PostId, req.OptionId, req.OptionTitle = v.PostID, v.OptionID, v.OptionTitle
	case models.Pledge:
		req.PostId, req.OptionId = v.PostID, v.OptionID
	case models.Vote:
		req.PostId, req.OptionId, req.OptionTitle, req.Votes = v.PostID, v.OptionID, v.OptionTitle, v.Votes
	}
	return req
}

// PushEventFromWire decodes a push frame into its typed event.
func PushEventFromWire(e *wire.PushEvent) (models.PushEvent, error) {
	switch e.Kind {
	case wire.PushEventKindOptionUpserted:
		if e.Option == nil {
			return nil, fmt.Errorf("option event for post %s: %w", e.PostId, ErrNoData)
		}
		return models.OptionUpserted{PostID: e.PostId, Option: OptionFromWire(e.Option)}, nil
	case wire.PushEventKindPostUpdated:
		return models.PostUpdated{
			PostID:      e.PostId,
			TotalAmount: e.TotalAmount,
			OptionCount: e.OptionCount,
			Version:     e.Version,
		}, nil
	default:
		return nil, fmt.Errorf("%w: push event kind %d", ErrUnknownEvent, e.Kind)
	}
}
