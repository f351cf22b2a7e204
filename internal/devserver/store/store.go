// Package store keeps the posts, options and setup intents of the dev
// backend in memory and applies contributions to them.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"github.com/google/uuid"
)

// Payment method values the store treats as declined by the provider.
const (
	DeclinedCardID = "card_declined"
	DeclinedToken  = "tok_insufficient"
)

var (
	ErrWrongPostKind = errors.New("contribution does not match post kind")
	ErrBelowMinimum  = errors.New("amount below minimum")
	ErrNoOption      = errors.New("option id or title required")
)

// Publisher receives every change the store makes.
type Publisher interface {
	Publish(ev *wire.PushEvent)
}

type option struct {
	wire.Option
	supporters map[string]bool
}

type post struct {
	wire.Post
	options []*option
}

type intent struct {
	purpose *wire.Purpose
	ownerID string
	used    bool
}

// Store is the in-memory state of the dev backend. All methods are safe for
// concurrent use.
type Store struct {
	publisher Publisher
	now       func() time.Time

	mu          sync.Mutex
	constants   wire.GetAppConstantsResponse
	posts       map[string]*post
	intents     map[string]*intent
	idempotency map[string]*wire.ContributionResponse
	nextOption  int
}

func NewStore(constants wire.GetAppConstantsResponse, publisher Publisher) *Store {
	return &Store{
		publisher:   publisher,
		now:         time.Now,
		constants:   constants,
		posts:       map[string]*post{},
		intents:     map[string]*intent{},
		idempotency: map[string]*wire.ContributionResponse{},
	}
}

func (s *Store) Constants() *wire.GetAppConstantsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.constants
	return &c
}

// AddPost stores p and its options. Option ids are assigned by the store.
func (s *Store) AddPost(p wire.Post, options ...wire.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &post{Post: p}
	for _, o := range options {
		s.nextOption++
		o.Id = strconv.Itoa(s.nextOption)
		if o.Version == 0 {
			o.Version = 1
		}
		stored.options = append(stored.options, &option{Option: o, supporters: map[string]bool{}})
		stored.TotalAmount += o.Amount
	}
	stored.OptionCount = int64(len(stored.options))
	if stored.Version == 0 {
		stored.Version = 1
	}
	s.posts[p.Id] = stored
}

// Post returns a copy of the post, or nil when it does not exist.
func (s *Store) Post(postID string) *wire.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil
	}
	cp := p.Post
	return &cp
}

// Options returns one page of options in creation order. The paging token
// is the offset of the next page.
func (s *Store) Options(userID, postID, pagingToken string, limit int) ([]*wire.Option, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, "", common.ErrorNotFound
	}

	offset := 0
	if pagingToken != "" {
		n, err := strconv.Atoi(pagingToken)
		if err != nil || n < 0 {
			return nil, "", fmt.Errorf("bad paging token %q", pagingToken)
		}
		offset = n
	}
	if limit <= 0 {
		limit = common.DefaultPageSize
	}
	if offset > len(p.options) {
		offset = len(p.options)
	}
	end := min(offset+limit, len(p.options))

	page := make([]*wire.Option, 0, end-offset)
	for _, o := range p.options[offset:end] {
		page = append(page, o.view(userID))
	}

	next := ""
	if end < len(p.options) {
		next = strconv.Itoa(end)
	}
	return page, next, nil
}

func (o *option) view(userID string) *wire.Option {
	cp := o.Option
	cp.IsSupportedByMe = userID != "" && o.supporters[userID]
	return &cp
}

// Contribute applies a bid, pledge or vote for user. The status reports
// business outcomes; err is reserved for malformed requests.
func (s *Store) Contribute(user auth.Identity, kind wire.PurposeKind, req *wire.ContributionRequest) (*wire.ContributionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IdempotencyKey != "" {
		if prev, ok := s.idempotency[user.UserID+"/"+req.IdempotencyKey]; ok {
			return prev, nil
		}
	}

	resp, events, err := s.contribute(user, kind, req)
	if err != nil {
		return nil, err
	}
	if req.IdempotencyKey != "" {
		s.idempotency[user.UserID+"/"+req.IdempotencyKey] = resp
	}
	for _, ev := range events {
		s.publish(ev)
	}
	return resp, nil
}

func outcome(st wire.ContributionStatus) *wire.ContributionResponse {
	return &wire.ContributionResponse{Status: st}
}

func (s *Store) contribute(user auth.Identity, kind wire.PurposeKind, req *wire.ContributionRequest) (*wire.ContributionResponse, []*wire.PushEvent, error) {
	p, ok := s.posts[req.PostId]
	if !ok {
		return nil, nil, common.ErrorNotFound
	}
	if !kindMatches(p.Kind, kind) {
		return nil, nil, fmt.Errorf("%w: %d on post kind %d", ErrWrongPostKind, kind, p.Kind)
	}

	amount := req.Amount
	switch kind {
	case wire.PurposeKindVote:
		if req.Votes <= 0 {
			return nil, nil, fmt.Errorf("%w: votes must be positive", ErrBelowMinimum)
		}
		amount = req.Votes * s.constants.VotePrice
	case wire.PurposeKindPlaceBid:
		if amount < s.constants.MinBid {
			return nil, nil, fmt.Errorf("%w: bid %d", ErrBelowMinimum, amount)
		}
	case wire.PurposeKindPledge:
		if amount < s.constants.MinPledge {
			return nil, nil, fmt.Errorf("%w: pledge %d", ErrBelowMinimum, amount)
		}
		if req.OptionId == "" {
			return nil, nil, ErrNoOption
		}
	}
	if req.OptionId == "" && strings.TrimSpace(req.OptionTitle) == "" {
		return nil, nil, ErrNoOption
	}

	now := s.now().Unix()
	if p.StartsAtUnix != 0 && now < p.StartsAtUnix {
		return outcome(wire.ContributionStatusBiddingNotStarted), nil, nil
	}
	if p.ExpiresAtUnix != 0 && now >= p.ExpiresAtUnix {
		return outcome(wire.ContributionStatusBiddingEnded), nil, nil
	}

	target := p.option(req.OptionId)
	title := strings.TrimSpace(req.OptionTitle)
	switch {
	case req.OptionId != "" && target == nil:
		return nil, nil, fmt.Errorf("option %s: %w", req.OptionId, common.ErrorNotFound)
	case target == nil && p.hasTitle(title):
		return outcome(wire.ContributionStatusOptionNotUnique), nil, nil
	}

	if st := s.charge(user, req); st != wire.ContributionStatusSuccess {
		return outcome(st), nil, nil
	}

	if target == nil {
		s.nextOption++
		target = &option{
			Option: wire.Option{
				Id:            strconv.Itoa(s.nextOption),
				Title:         title,
				Creator:       &wire.User{Id: user.UserID, Username: user.Username},
				CreatedAtUnix: now,
			},
			supporters: map[string]bool{},
		}
		p.options = append(p.options, target)
		p.OptionCount = int64(len(p.options))
	}

	target.Amount += amount
	if !target.supporters[user.UserID] {
		target.supporters[user.UserID] = true
		target.SupporterCount++
	}
	target.Version++

	p.TotalAmount += amount
	p.Version++

	events := []*wire.PushEvent{
		{PostId: p.Id, Kind: wire.PushEventKindOptionUpserted, Option: target.view("")},
		{PostId: p.Id, Kind: wire.PushEventKindPostUpdated, TotalAmount: p.TotalAmount, OptionCount: p.OptionCount, Version: p.Version},
	}
	return &wire.ContributionResponse{Status: wire.ContributionStatusSuccess, Option: target.view(user.UserID)}, events, nil
}

// charge checks the payment method. A setup intent is consumed on success.
func (s *Store) charge(user auth.Identity, req *wire.ContributionRequest) wire.ContributionStatus {
	if req.SetupIntentClientSecret != "" {
		in, ok := s.intents[req.SetupIntentClientSecret]
		if !ok || in.used || (in.ownerID != "" && in.ownerID != user.UserID) {
			return wire.ContributionStatusCardCannotBeUsed
		}
		if in.purpose != nil && in.purpose.PostId != "" && in.purpose.PostId != req.PostId {
			return wire.ContributionStatusCardCannotBeUsed
		}
		if req.PaymentMethodToken == DeclinedToken {
			return wire.ContributionStatusNotEnoughFunds
		}
		in.used = true
		return wire.ContributionStatusSuccess
	}

	switch {
	case req.CardId == "" && req.PaymentMethodToken == "":
		return wire.ContributionStatusCardNotFound
	case req.CardId == DeclinedCardID, req.PaymentMethodToken == DeclinedToken:
		return wire.ContributionStatusNotEnoughFunds
	}
	return wire.ContributionStatusSuccess
}

func kindMatches(post wire.PostKind, purpose wire.PurposeKind) bool {
	switch purpose {
	case wire.PurposeKindPlaceBid:
		return post == wire.PostKindAuction
	case wire.PurposeKindPledge:
		return post == wire.PostKindCrowdfunding
	case wire.PurposeKindVote:
		return post == wire.PostKindMultipleChoice
	}
	return false
}

func (p *post) option(id string) *option {
	for _, o := range p.options {
		if o.Id == id {
			return o
		}
	}
	return nil
}

func (p *post) hasTitle(title string) bool {
	return slices.ContainsFunc(p.options, func(o *option) bool {
		return strings.EqualFold(o.Title, title)
	})
}

// DeleteOption removes an option. Only its creator or the post creator may
// do that.
func (s *Store) DeleteOption(user auth.Identity, postID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	idx := slices.IndexFunc(p.options, func(o *option) bool { return o.Id == optionID })
	if idx < 0 {
		return common.ErrorNotFound
	}

	o := p.options[idx]
	isOwner := o.Creator != nil && o.Creator.Id == user.UserID
	isPostOwner := p.Creator != nil && p.Creator.Id == user.UserID
	if !isOwner && !isPostOwner {
		return common.ErrorForbidden
	}

	p.options = slices.Delete(p.options, idx, idx+1)
	p.OptionCount = int64(len(p.options))
	p.TotalAmount -= o.Amount
	p.Version++

	s.publish(&wire.PushEvent{PostId: p.Id, Kind: wire.PushEventKindPostUpdated, TotalAmount: p.TotalAmount, OptionCount: p.OptionCount, Version: p.Version})
	return nil
}

// CreateSetupIntent registers a new intent and returns its client secret.
// An empty secret means the purpose was rejected.
func (s *Store) CreateSetupIntent(user auth.Identity, purpose *wire.Purpose) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validPurpose(purpose) {
		return ""
	}
	secret := "seti_" + uuid.NewString()
	s.intents[secret] = &intent{purpose: purpose, ownerID: user.UserID}
	return secret
}

// UpdateSetupIntent replaces the purpose of an unused intent.
func (s *Store) UpdateSetupIntent(secret string, purpose *wire.Purpose) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.intents[secret]
	if !ok || in.used || !s.validPurpose(purpose) {
		return false
	}
	in.purpose = purpose
	return true
}

func (s *Store) validPurpose(p *wire.Purpose) bool {
	if p == nil {
		return false
	}
	switch p.Kind {
	case wire.PurposeKindSaveCard, wire.PurposeKindSubscribe:
		return true
	case wire.PurposeKindPlaceBid, wire.PurposeKindPledge, wire.PurposeKindVote:
		post, ok := s.posts[p.PostId]
		return ok && kindMatches(post.Kind, p.Kind)
	}
	return false
}

func (s *Store) publish(ev *wire.PushEvent) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}
