package wire

import "google.golang.org/protobuf/encoding/protowire"

type PostKind int32

const (
	PostKindUnspecified PostKind = iota
	PostKindAuction
	PostKindCrowdfunding
	PostKindMultipleChoice
)

type ContributionStatus int32

const (
	ContributionStatusUnknown ContributionStatus = iota
	ContributionStatusSuccess
	ContributionStatusNotEnoughFunds
	ContributionStatusCardNotFound
	ContributionStatusCardCannotBeUsed
	ContributionStatusBiddingNotStarted
	ContributionStatusBiddingEnded
	ContributionStatusOptionNotUnique
	ContributionStatusInternalError
)

type TextKind int32

const (
	TextKindUnspecified TextKind = iota
	TextKindAuctionOption
	TextKindPollOption
	TextKindComment
)

type ValidateTextStatus int32

const (
	ValidateTextStatusUnknown ValidateTextStatus = iota
	ValidateTextStatusOK
	ValidateTextStatusRejected
)

type SetupIntentStatus int32

const (
	SetupIntentStatusUnknown SetupIntentStatus = iota
	SetupIntentStatusOK
	SetupIntentStatusInvalidPurpose
)

type PurposeKind int32

const (
	PurposeKindUnspecified PurposeKind = iota
	PurposeKindSaveCard
	PurposeKindPlaceBid
	PurposeKindVote
	PurposeKindPledge
	PurposeKindSubscribe
)

type PushEventKind int32

const (
	PushEventKindUnspecified PushEventKind = iota
	PushEventKindOptionUpserted
	PushEventKindPostUpdated
)

type User struct {
	Id        string
	Username  string
	AvatarUrl string
}

func (m *User) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Username)
	b = appendString(b, 3, m.AvatarUrl)
	return b
}

func (m *User) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.Id)
	case 2:
		return consumeString(typ, b, &m.Username)
	case 3:
		return consumeString(typ, b, &m.AvatarUrl)
	}
	return skipField(num, typ, b)
}

type Option struct {
	Id              string
	Title           string
	Amount          int64
	SupporterCount  int64
	Creator         *User
	IsSupportedByMe bool
	Version         int64
	CreatedAtUnix   int64
}

func (m *Option) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Title)
	b = appendInt64(b, 3, m.Amount)
	b = appendInt64(b, 4, m.SupporterCount)
	if m.Creator != nil {
		b = appendMessage(b, 5, m.Creator)
	}
	b = appendBool(b, 6, m.IsSupportedByMe)
	b = appendInt64(b, 7, m.Version)
	b = appendInt64(b, 8, m.CreatedAtUnix)
	return b
}

func (m *Option) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.Id)
	case 2:
		return consumeString(typ, b, &m.Title)
	case 3:
		return consumeInt64(typ, b, &m.Amount)
	case 4:
		return consumeInt64(typ, b, &m.SupporterCount)
	case 5:
		m.Creator = &User{}
		return consumeMessage(typ, b, m.Creator)
	case 6:
		return consumeBool(typ, b, &m.IsSupportedByMe)
	case 7:
		return consumeInt64(typ, b, &m.Version)
	case 8:
		return consumeInt64(typ, b, &m.CreatedAtUnix)
	}
	return skipField(num, typ, b)
}

type Post struct {
	Id            string
	Kind          PostKind
	Title         string
	TotalAmount   int64
	OptionCount   int64
	ExpiresAtUnix int64
	Creator       *User
	TargetAmount  int64
	Version       int64
	StartsAtUnix  int64
}

func (m *Post) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendInt32(b, 2, int32(m.Kind))
	b = appendString(b, 3, m.Title)
	b = appendInt64(b, 4, m.TotalAmount)
	b = appendInt64(b, 5, m.OptionCount)
	b = appendInt64(b, 6, m.ExpiresAtUnix)
	if m.Creator != nil {
		b = appendMessage(b, 7, m.Creator)
	}
	b = appendInt64(b, 8, m.TargetAmount)
	b = appendInt64(b, 9, m.Version)
	b = appendInt64(b, 10, m.StartsAtUnix)
	return b
}

func (m *Post) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.Id)
	case 2:
		return consumeInt32(typ, b, (*int32)(&m.Kind))
	case 3:
		return consumeString(typ, b, &m.Title)
	case 4:
		return consumeInt64(typ, b, &m.TotalAmount)
	case 5:
		return consumeInt64(typ, b, &m.OptionCount)
	case 6:
		return consumeInt64(typ, b, &m.ExpiresAtUnix)
	case 7:
		m.Creator = &User{}
		return consumeMessage(typ, b, m.Creator)
	case 8:
		return consumeInt64(typ, b, &m.TargetAmount)
	case 9:
		return consumeInt64(typ, b, &m.Version)
	case 10:
		return consumeInt64(typ, b, &m.StartsAtUnix)
	}
	return skipField(num, typ, b)
}

type PingRequest struct{}

func (m *PingRequest) appendWire(b []byte) []byte { return b }
func (m *PingRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}

type PingResponse struct {
	Status string
}

func (m *PingResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *PingResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return consumeString(typ, b, &m.Status)
	}
	return skipField(num, typ, b)
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (m *RefreshTokenRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.RefreshToken)
}

func (m *RefreshTokenRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return consumeString(typ, b, &m.RefreshToken)
	}
	return skipField(num, typ, b)
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *RefreshTokenResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.AccessToken)
	b = appendString(b, 2, m.RefreshToken)
	return b
}

func (m *RefreshTokenResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.AccessToken)
	case 2:
		return consumeString(typ, b, &m.RefreshToken)
	}
	return skipField(num, typ, b)
}

type GetAppConstantsRequest struct{}

func (m *GetAppConstantsRequest) appendWire(b []byte) []byte { return b }
func (m *GetAppConstantsRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}

type GetAppConstantsResponse struct {
	CustomerFeeRate float64
	MinBid          int64
	MinPledge       int64
	MinHold         int64
	VotePrice       int64
}

func (m *GetAppConstantsResponse) appendWire(b []byte) []byte {
	b = appendDouble(b, 1, m.CustomerFeeRate)
	b = appendInt64(b, 2, m.MinBid)
	b = appendInt64(b, 3, m.MinPledge)
	b = appendInt64(b, 4, m.MinHold)
	b = appendInt64(b, 5, m.VotePrice)
	return b
}

func (m *GetAppConstantsResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeDouble(typ, b, &m.CustomerFeeRate)
	case 2:
		return consumeInt64(typ, b, &m.MinBid)
	case 3:
		return consumeInt64(typ, b, &m.MinPledge)
	case 4:
		return consumeInt64(typ, b, &m.MinHold)
	case 5:
		return consumeInt64(typ, b, &m.VotePrice)
	}
	return skipField(num, typ, b)
}

type GetPostRequest struct {
	PostId string
}

func (m *GetPostRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.PostId)
}

func (m *GetPostRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return consumeString(typ, b, &m.PostId)
	}
	return skipField(num, typ, b)
}

type GetPostResponse struct {
	Post *Post
}

func (m *GetPostResponse) appendWire(b []byte) []byte {
	if m.Post != nil {
		b = appendMessage(b, 1, m.Post)
	}
	return b
}

func (m *GetPostResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		m.Post = &Post{}
		return consumeMessage(typ, b, m.Post)
	}
	return skipField(num, typ, b)
}

type GetOptionsRequest struct {
	PostId      string
	PagingToken string
	Limit       int32
}

func (m *GetOptionsRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.PostId)
	b = appendString(b, 2, m.PagingToken)
	b = appendInt32(b, 3, m.Limit)
	return b
}

func (m *GetOptionsRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.PostId)
	case 2:
		return consumeString(typ, b, &m.PagingToken)
	case 3:
		return consumeInt32(typ, b, &m.Limit)
	}
	return skipField(num, typ, b)
}

type GetOptionsResponse struct {
	Options         []*Option
	NextPagingToken string
}

func (m *GetOptionsResponse) appendWire(b []byte) []byte {
	for _, o := range m.Options {
		b = appendMessage(b, 1, o)
	}
	b = appendString(b, 2, m.NextPagingToken)
	return b
}

func (m *GetOptionsResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		o := &Option{}
		n, err := consumeMessage(typ, b, o)
		if err != nil {
			return 0, err
		}
		m.Options = append(m.Options, o)
		return n, nil
	case 2:
		return consumeString(typ, b, &m.NextPagingToken)
	}
	return skipField(num, typ, b)
}

// ContributionRequest is shared by PlaceBid, Pledge and Vote.
type ContributionRequest struct {
	PostId                  string
	Amount                  int64
	CustomerFee             int64
	OptionId                string
	OptionTitle             string
	Votes                   int64
	SetupIntentClientSecret string
	CardId                  string
	SaveCard                bool
	PaymentMethodToken      string
	IdempotencyKey          string
}

func (m *ContributionRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.PostId)
	b = appendInt64(b, 2, m.Amount)
	b = appendInt64(b, 3, m.CustomerFee)
	b = appendString(b, 4, m.OptionId)
	b = appendString(b, 5, m.OptionTitle)
	b = appendInt64(b, 6, m.Votes)
	b = appendString(b, 7, m.SetupIntentClientSecret)
	b = appendString(b, 8, m.CardId)
	b = appendBool(b, 9, m.SaveCard)
	b = appendString(b, 10, m.PaymentMethodToken)
	b = appendString(b, 11, m.IdempotencyKey)
	return b
}

func (m *ContributionRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.PostId)
	case 2:
		return consumeInt64(typ, b, &m.Amount)
	case 3:
		return consumeInt64(typ, b, &m.CustomerFee)
	case 4:
		return consumeString(typ, b, &m.OptionId)
	case 5:
		return consumeString(typ, b, &m.OptionTitle)
	case 6:
		return consumeInt64(typ, b, &m.Votes)
	case 7:
		return consumeString(typ, b, &m.SetupIntentClientSecret)
	case 8:
		return consumeString(typ, b, &m.CardId)
	case 9:
		return consumeBool(typ, b, &m.SaveCard)
	case 10:
		return consumeString(typ, b, &m.PaymentMethodToken)
	case 11:
		return consumeString(typ, b, &m.IdempotencyKey)
	}
	return skipField(num, typ, b)
}

type ContributionResponse struct {
	Status ContributionStatus
	Option *Option
}

func (m *ContributionResponse) appendWire(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Status))
	if m.Option != nil {
		b = appendMessage(b, 2, m.Option)
	}
	return b
}

func (m *ContributionResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeInt32(typ, b, (*int32)(&m.Status))
	case 2:
		m.Option = &Option{}
		return consumeMessage(typ, b, m.Option)
	}
	return skipField(num, typ, b)
}

type ValidateTextRequest struct {
	Text string
	Kind TextKind
}

func (m *ValidateTextRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Text)
	b = appendInt32(b, 2, int32(m.Kind))
	return b
}

func (m *ValidateTextRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.Text)
	case 2:
		return consumeInt32(typ, b, (*int32)(&m.Kind))
	}
	return skipField(num, typ, b)
}

type ValidateTextResponse struct {
	Status ValidateTextStatus
}

func (m *ValidateTextResponse) appendWire(b []byte) []byte {
	return appendInt32(b, 1, int32(m.Status))
}

func (m *ValidateTextResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return consumeInt32(typ, b, (*int32)(&m.Status))
	}
	return skipField(num, typ, b)
}

type Purpose struct {
	Kind        PurposeKind
	PostId      string
	Amount      int64
	OptionId    string
	OptionTitle string
	Votes       int64
	CreatorId   string
}

func (m *Purpose) appendWire(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Kind))
	b = appendString(b, 2, m.PostId)
	b = appendInt64(b, 3, m.Amount)
	b = appendString(b, 4, m.OptionId)
	b = appendString(b, 5, m.OptionTitle)
	b = appendInt64(b, 6, m.Votes)
	b = appendString(b, 7, m.CreatorId)
	return b
}

func (m *Purpose) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeInt32(typ, b, (*int32)(&m.Kind))
	case 2:
		return consumeString(typ, b, &m.PostId)
	case 3:
		return consumeInt64(typ, b, &m.Amount)
	case 4:
		return consumeString(typ, b, &m.OptionId)
	case 5:
		return consumeString(typ, b, &m.OptionTitle)
	case 6:
		return consumeInt64(typ, b, &m.Votes)
	case 7:
		return consumeString(typ, b, &m.CreatorId)
	}
	return skipField(num, typ, b)
}

type CreateSetupIntentRequest struct {
	Purpose    *Purpose
	IsGuest    bool
	SuccessUrl string
	CancelUrl  string
}

func (m *CreateSetupIntentRequest) appendWire(b []byte) []byte {
	if m.Purpose != nil {
		b = appendMessage(b, 1, m.Purpose)
	}
	b = appendBool(b, 2, m.IsGuest)
	b = appendString(b, 3, m.SuccessUrl)
	b = appendString(b, 4, m.CancelUrl)
	return b
}

func (m *CreateSetupIntentRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		m.Purpose = &Purpose{}
		return consumeMessage(typ, b, m.Purpose)
	case 2:
		return consumeBool(typ, b, &m.IsGuest)
	case 3:
		return consumeString(typ, b, &m.SuccessUrl)
	case 4:
		return consumeString(typ, b, &m.CancelUrl)
	}
	return skipField(num, typ, b)
}

type UpdateSetupIntentRequest struct {
	SetupIntentClientSecret string
	Purpose                 *Purpose
}

func (m *UpdateSetupIntentRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.SetupIntentClientSecret)
	if m.Purpose != nil {
		b = appendMessage(b, 2, m.Purpose)
	}
	return b
}

func (m *UpdateSetupIntentRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.SetupIntentClientSecret)
	case 2:
		m.Purpose = &Purpose{}
		return consumeMessage(typ, b, m.Purpose)
	}
	return skipField(num, typ, b)
}

type SetupIntentResponse struct {
	SetupIntentClientSecret string
	Status                  SetupIntentStatus
}

func (m *SetupIntentResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.SetupIntentClientSecret)
	b = appendInt32(b, 2, int32(m.Status))
	return b
}

func (m *SetupIntentResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.SetupIntentClientSecret)
	case 2:
		return consumeInt32(typ, b, (*int32)(&m.Status))
	}
	return skipField(num, typ, b)
}

type DeleteOptionRequest struct {
	PostId   string
	OptionId string
}

func (m *DeleteOptionRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.PostId)
	b = appendString(b, 2, m.OptionId)
	return b
}

func (m *DeleteOptionRequest) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.PostId)
	case 2:
		return consumeString(typ, b, &m.OptionId)
	}
	return skipField(num, typ, b)
}

type DeleteOptionResponse struct{}

func (m *DeleteOptionResponse) appendWire(b []byte) []byte { return b }
func (m *DeleteOptionResponse) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}

type PushEvent struct {
	PostId      string
	Kind        PushEventKind
	Option      *Option
	TotalAmount int64
	OptionCount int64
	Version     int64
}

func (m *PushEvent) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.PostId)
	b = appendInt32(b, 2, int32(m.Kind))
	if m.Option != nil {
		b = appendMessage(b, 3, m.Option)
	}
	b = appendInt64(b, 4, m.TotalAmount)
	b = appendInt64(b, 5, m.OptionCount)
	b = appendInt64(b, 6, m.Version)
	return b
}

func (m *PushEvent) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeString(typ, b, &m.PostId)
	case 2:
		return consumeInt32(typ, b, (*int32)(&m.Kind))
	case 3:
		m.Option = &Option{}
		return consumeMessage(typ, b, m.Option)
	case 4:
		return consumeInt64(typ, b, &m.TotalAmount)
	case 5:
		return consumeInt64(typ, b, &m.OptionCount)
	case 6:
		return consumeInt64(typ, b, &m.Version)
	}
	return skipField(num, typ, b)
}
