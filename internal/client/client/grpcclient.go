package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenListener is notified after the interceptor refreshed the token pair.
type TokenListener func(accessToken, refreshToken string)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      wire.DecisionServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRefresh    TokenListener
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.Tokens()
	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refreshToken == "" || method == wire.MethodRefreshToken {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &wire.RefreshTokenRequest{RefreshToken: refreshToken})
		if err != nil {
			return err
		}

		s.SetTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		s.mu.RLock()
		listener := s.onRefresh
		s.mu.RUnlock()
		if listener != nil {
			listener(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)
		}

		// tokens refreshed, retry once with the new access token
		return invoker(withAccessToken(ctx, refreshTokenResponse.AccessToken), method, req, reply, cc, opts...)
	}

	return nil
}

// NewGRPCClient dials the decision backend. Tokens may be empty for guests.
func NewGRPCClient(endpointURL, accessToken, refreshToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken, refreshToken: refreshToken}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = wire.NewDecisionServiceClient(conn)
	return nil
}

// OnTokensRefreshed registers the listener called after a token refresh.
func (s *GRPCClient) OnTokensRefreshed(fn TokenListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

func (s *GRPCClient) Tokens() (accessToken, refreshToken string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

// AccessToken returns the current access token. The push subscriber uses it
// for the websocket handshake.
func (s *GRPCClient) AccessToken() string {
	a, _ := s.Tokens()
	return a
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := s.client.Ping(ctx, &wire.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) GetAppConstants(ctx context.Context) (models.AppConstants, error) {
	resp, err := s.client.GetAppConstants(ctx, &wire.GetAppConstantsRequest{})
	if err != nil {
		return models.AppConstants{}, s.mapError(err)
	}
	return models.AppConstants{
		CustomerFeeRate: resp.CustomerFeeRate,
		MinBid:          resp.MinBid,
		MinPledge:       resp.MinPledge,
		MinHold:         resp.MinHold,
		VotePrice:       resp.VotePrice,
	}, nil
}

func (s *GRPCClient) GetPost(ctx context.Context, postID string) (models.Post, error) {
	resp, err := s.client.GetPost(ctx, &wire.GetPostRequest{PostId: postID})
	if err != nil {
		return models.Post{}, s.mapError(err)
	}
	if resp.Post == nil {
		return models.Post{}, fmt.Errorf("get post %s: %w", postID, ErrNoData)
	}
	return postFromWire(resp.Post), nil
}

func (s *GRPCClient) GetOptions(ctx context.Context, postID, pagingToken string, limit int) (models.OptionPage, error) {
	req := &wire.GetOptionsRequest{PostId: postID, PagingToken: pagingToken, Limit: int32(limit)}

	resp, err := s.client.GetOptions(ctx, req)
	if err != nil {
		return models.OptionPage{}, s.mapError(err)
	}

	page := models.OptionPage{
		Options:         make([]models.Option, 0, len(resp.Options)),
		NextPagingToken: resp.NextPagingToken,
	}
	for _, o := range resp.Options {
		if o == nil {
			continue
		}
		page.Options = append(page.Options, OptionFromWire(o))
	}
	return page, nil
}

func (s *GRPCClient) Contribute(ctx context.Context, c models.Contribution) (models.ContributionResult, error) {
	if c.Purpose == nil {
		return models.ContributionResult{}, ErrUnsupportedPurpose
	}

	req := contributionToWire(c)

	var (
		resp *wire.ContributionResponse
		err  error
	)
	switch c.Purpose.Kind() {
	case models.PurposePlaceBid:
		resp, err = s.client.PlaceBid(ctx, req)
	case models.PurposePledge:
		resp, err = s.client.Pledge(ctx, req)
	case models.PurposeVote:
		resp, err = s.client.Vote(ctx, req)
	default:
		return models.ContributionResult{}, fmt.Errorf("%w: %s", ErrUnsupportedPurpose, c.Purpose.Kind())
	}
	if err != nil {
		return models.ContributionResult{}, s.mapError(err)
	}

	res := models.ContributionResult{Status: contributionStatusFromWire(resp.Status)}
	if resp.Option != nil {
		o := OptionFromWire(resp.Option)
		res.Option = &o
	}
	if res.Status == models.StatusSuccess && res.Option == nil {
		return res, fmt.Errorf("contribution: %w", ErrNoData)
	}
	return res, nil
}

func (s *GRPCClient) ValidateText(ctx context.Context, text string, kind models.TextKind) (bool, error) {
	resp, err := s.client.ValidateText(ctx, &wire.ValidateTextRequest{Text: text, Kind: textKinds[kind]})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Status == wire.ValidateTextStatusOK, nil
}

func (s *GRPCClient) CreateSetupIntent(ctx context.Context, r models.SetupIntentRequest) (*models.SetupIntent, error) {
	purpose, err := PurposeToWire(r.Purpose)
	if err != nil {
		return nil, err
	}

	req := &wire.CreateSetupIntentRequest{
		Purpose:    purpose,
		IsGuest:    r.IsGuest,
		SuccessUrl: r.SuccessURL,
		CancelUrl:  r.CancelURL,
	}

	resp, err := s.client.CreateSetupIntent(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := checkSetupIntent(resp); err != nil {
		return nil, err
	}

	return &models.SetupIntent{ClientSecret: resp.SetupIntentClientSecret, Purpose: r.Purpose, IsGuest: r.IsGuest}, nil
}

func (s *GRPCClient) UpdateSetupIntent(ctx context.Context, intent *models.SetupIntent, p models.Purpose) error {
	if !intent.Active() {
		return fmt.Errorf("update setup intent: %w", ErrNoData)
	}
	purpose, err := PurposeToWire(p)
	if err != nil {
		return err
	}

	resp, err := s.client.UpdateSetupIntent(ctx, &wire.UpdateSetupIntentRequest{
		SetupIntentClientSecret: intent.ClientSecret,
		Purpose:                 purpose,
	})
	if err != nil {
		return s.mapError(err)
	}
	if err := checkSetupIntent(resp); err != nil {
		return err
	}

	intent.ClientSecret = resp.SetupIntentClientSecret
	intent.Purpose = p
	return nil
}

func checkSetupIntent(resp *wire.SetupIntentResponse) error {
	if resp.Status != wire.SetupIntentStatusOK {
		return fmt.Errorf("%w: status %d", ErrSetupIntentFailed, resp.Status)
	}
	if resp.SetupIntentClientSecret == "" {
		return fmt.Errorf("setup intent: %w", ErrNoData)
	}
	return nil
}

func (s *GRPCClient) DeleteOption(ctx context.Context, postID, optionID string) error {
	_, err := s.client.DeleteOption(ctx, &wire.DeleteOptionRequest{PostId: postID, OptionId: optionID})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
