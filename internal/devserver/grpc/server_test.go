package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/devserver/config"
	"github.com/dmitrijs2005/bidsync/internal/devserver/store"
	"github.com/dmitrijs2005/bidsync/internal/devserver/users"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, nil, nil)
	require.Error(t, srv.Run(context.Background()))
}

type fixture struct {
	users *users.Service
	store *store.Store
	dial  func(access, refresh string) *client.GRPCClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{SecretKey: secret, AccessTokenValidityDuration: time.Minute, RefreshTokenValidityDuration: time.Hour}
	us := users.NewService(cfg)
	us.AddUser(auth.Identity{UserID: "1", Username: "ann"})
	us.AddUser(auth.Identity{UserID: "2", Username: "ben"})

	st := store.NewStore(wire.GetAppConstantsResponse{MinBid: 100, MinPledge: 100, VotePrice: 25, CustomerFeeRate: 0.05}, nil)
	now := time.Now()
	st.AddPost(wire.Post{
		Id: "7", Kind: wire.PostKindAuction, Title: "Trip",
		StartsAtUnix: now.Add(-time.Hour).Unix(), ExpiresAtUnix: now.Add(time.Hour).Unix(),
		Creator: &wire.User{Id: "1", Username: "ann"},
	},
		wire.Option{Title: "Rome", Amount: 100},
		wire.Option{Title: "Oslo", Amount: 300},
		wire.Option{Title: "Nice", Amount: 200},
	)

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer("", logging.Nop{}, us, st).NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	dial := func(access, refresh string) *client.GRPCClient {
		c, err := client.NewGRPCClient("passthrough:///bufnet", access, refresh,
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}))
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	}
	return &fixture{users: us, store: st, dial: dial}
}

func TestRoundTrip_ReadsAsGuest(t *testing.T) {
	f := newFixture(t)
	c := f.dial("", "")
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	consts, err := c.GetAppConstants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), consts.VotePrice)

	post, err := c.GetPost(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, models.PostKindAuction, post.Kind)
	assert.Equal(t, int64(600), post.TotalAmount)

	_, err = c.GetPost(ctx, "missing")
	require.ErrorIs(t, err, client.ErrNoData)

	page, err := c.GetOptions(ctx, "7", "", 2)
	require.NoError(t, err)
	require.Len(t, page.Options, 2)
	require.Equal(t, "2", page.NextPagingToken)

	page, err = c.GetOptions(ctx, "7", page.NextPagingToken, 2)
	require.NoError(t, err)
	require.Len(t, page.Options, 1)
	assert.Equal(t, "Nice", page.Options[0].Title)
	assert.Empty(t, page.NextPagingToken)

	ok, err := c.ValidateText(ctx, "Lisbon", models.TextKindAuctionOption)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.ValidateText(ctx, "FREE MONEY here", models.TextKindAuctionOption)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Contribute(ctx, models.Contribution{Purpose: models.PlaceBid{PostID: "7", OptionID: "1", BidAmount: 100}, Method: models.PaymentMethod{CardID: "c"}})
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestRoundTrip_ContributeAndDelete(t *testing.T) {
	f := newFixture(t)
	ben, err := f.users.Login("ben")
	require.NoError(t, err)
	c := f.dial(ben.AccessToken, ben.RefreshToken)
	ctx := context.Background()

	res, err := c.Contribute(ctx, models.Contribution{
		Purpose: models.PlaceBid{PostID: "7", OptionTitle: "Porto", BidAmount: 500},
		Method:  models.PaymentMethod{CardID: "card_1"},
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusSuccess, res.Status)
	require.NotNil(t, res.Option)
	assert.Equal(t, "4", res.Option.ID)
	assert.True(t, res.Option.IsSupportedByMe)

	res, err = c.Contribute(ctx, models.Contribution{
		Purpose: models.PlaceBid{PostID: "7", OptionTitle: "porto", BidAmount: 500},
		Method:  models.PaymentMethod{CardID: "card_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOptionNotUnique, res.Status)

	res, err = c.Contribute(ctx, models.Contribution{
		Purpose: models.PlaceBid{PostID: "7", OptionID: "1", BidAmount: 500},
		Method:  models.PaymentMethod{CardID: store.DeclinedCardID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotEnoughFunds, res.Status)

	// ben may remove his own option but not ann's
	require.NoError(t, c.DeleteOption(ctx, "7", "4"))
	require.ErrorIs(t, c.DeleteOption(ctx, "7", "1"), client.ErrUnauthorized)
}

func TestRoundTrip_SetupIntent(t *testing.T) {
	f := newFixture(t)
	ann, err := f.users.Login("ann")
	require.NoError(t, err)
	c := f.dial(ann.AccessToken, ann.RefreshToken)
	ctx := context.Background()

	bid := models.PlaceBid{PostID: "7", OptionID: "2", BidAmount: 200}
	intent, err := c.CreateSetupIntent(ctx, models.SetupIntentRequest{Purpose: bid})
	require.NoError(t, err)
	require.True(t, intent.Active())

	require.NoError(t, c.UpdateSetupIntent(ctx, intent, bid.WithAmount(400)))
	assert.Equal(t, int64(400), intent.Purpose.Amount())

	_, err = c.CreateSetupIntent(ctx, models.SetupIntentRequest{Purpose: models.Vote{PostID: "7", OptionID: "2", Votes: 1}})
	require.ErrorIs(t, err, client.ErrSetupIntentFailed)

	res, err := c.Contribute(ctx, models.Contribution{Purpose: bid.WithAmount(400), SetupIntentSecret: intent.ClientSecret})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, res.Status)
	assert.Equal(t, int64(700), res.Option.Amount)
}

func TestRoundTrip_RefreshesExpiredToken(t *testing.T) {
	f := newFixture(t)
	pair, err := f.users.Login("ann")
	require.NoError(t, err)

	expired, err := auth.GenerateToken(auth.Identity{UserID: "1", Username: "ann"}, []byte(secret), -time.Minute)
	require.NoError(t, err)

	c := f.dial(expired, pair.RefreshToken)
	var refreshed []string
	c.OnTokensRefreshed(func(a, r string) { refreshed = append(refreshed, a, r) })

	page, err := c.GetOptions(context.Background(), "7", "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Options, 3)

	require.Len(t, refreshed, 2)
	access, refresh := c.Tokens()
	assert.Equal(t, refreshed[0], access)
	assert.Equal(t, refreshed[1], refresh)
	assert.NotEqual(t, pair.RefreshToken, refresh)
}
