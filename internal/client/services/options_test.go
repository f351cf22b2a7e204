package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/reconcile"
	"github.com/dmitrijs2005/bidsync/internal/client/repositories/posts"
	"github.com/dmitrijs2005/bidsync/internal/client/session"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/stretchr/testify/require"
)

func ids(opts []models.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

func auctionClient() *fakeClient {
	return &fakeClient{
		post: models.Post{ID: "p1", Kind: models.PostKindAuction, Title: "Fence", TotalAmount: 1400, Version: 3},
		pages: map[string]models.OptionPage{
			"": {
				Options: []models.Option{
					{ID: "1", Title: "Red", Amount: 500},
					{ID: "2", Title: "Blue", Amount: 900, Creator: models.User{ID: "me"}},
				},
				NextPagingToken: "t2",
			},
			"t2": {
				Options: []models.Option{{ID: "3", Title: "Green", Amount: 1200}},
			},
		},
		constants: models.AppConstants{MinBid: 100},
	}
}

func TestOptionService_OpenLoadMorePersist(t *testing.T) {
	db := setupDB(t)
	f := auctionClient()
	consts := NewConstantsCache(f, time.Minute)
	s := NewOptionService(f, db, consts, session.Session{UserID: "me"}, nil)
	ctx := context.Background()

	called := false
	feed, err := s.Open(ctx, "p1", func(reconcile.Snapshot) { called = true })
	require.NoError(t, err)
	require.False(t, called, "nothing cached yet")
	require.False(t, feed.Stale)
	require.True(t, feed.HasMore())
	require.Equal(t, []string{"2", "1"}, ids(feed.View.Snapshot().Options))
	require.Equal(t, 1, f.calls(), "constants are prefetched")

	n, err := s.LoadMore(ctx, feed)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.False(t, feed.HasMore())
	// highest is unrelated to the user, so it follows the user's own option
	require.Equal(t, []string{"2", "3", "1"}, ids(feed.View.Snapshot().Options))

	n, err = s.LoadMore(ctx, feed)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, []string{"", "t2"}, f.pageTokens)

	repo := posts.NewSQLiteRepository(db)
	cached, err := repo.GetPost(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Fence", cached.Post.Title)
	require.Empty(t, cached.NextPagingToken)
	stored, err := repo.ListOptions(ctx, "p1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"1", "2", "3"}, ids(stored))
}

func TestOptionService_OpenServesCacheWhenOffline(t *testing.T) {
	db := setupDB(t)
	f := auctionClient()
	s := NewOptionService(f, db, nil, session.Session{UserID: "me"}, nil)
	ctx := context.Background()

	_, err := s.Open(ctx, "p1", nil)
	require.NoError(t, err)

	f.mu.Lock()
	f.postErr = client.ErrUnavailable
	f.mu.Unlock()

	var seen reconcile.Snapshot
	feed, err := s.Open(ctx, "p1", func(snap reconcile.Snapshot) { seen = snap })
	require.NoError(t, err)
	require.True(t, feed.Stale)
	require.Equal(t, "p1", seen.Post.ID)
	require.Equal(t, []string{"2", "1"}, ids(seen.Options))
	require.True(t, feed.HasMore(), "paging token survives the cache")

	o, ok := feed.View.Option("2")
	require.True(t, ok)
	require.True(t, o.IsCreatedByMe)
	require.True(t, o.IsHighest)
}

func TestOptionService_OpenFailsWithoutCache(t *testing.T) {
	f := auctionClient()
	f.optionsErr = client.ErrUnavailable
	s := NewOptionService(f, setupDB(t), nil, session.Session{}, nil)

	_, err := s.Open(context.Background(), "p1", nil)
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestOptionService_OpenMissingPostIgnoresCache(t *testing.T) {
	db := setupDB(t)
	f := auctionClient()
	s := NewOptionService(f, db, nil, session.Session{}, nil)
	ctx := context.Background()

	_, err := s.Open(ctx, "p1", nil)
	require.NoError(t, err)

	f.mu.Lock()
	f.postErr = client.ErrNoData
	f.mu.Unlock()

	_, err = s.Open(ctx, "p1", nil)
	require.ErrorIs(t, err, client.ErrNoData)
}

func TestOptionService_Delete(t *testing.T) {
	db := setupDB(t)
	f := auctionClient()
	s := NewOptionService(f, db, nil, session.Session{UserID: "me"}, nil)
	ctx := context.Background()

	feed, err := s.Open(ctx, "p1", nil)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, feed, "1"))
	require.Equal(t, []string{"p1/1"}, f.deleted)
	require.Equal(t, []string{"2"}, ids(feed.View.Snapshot().Options))

	stored, err := posts.NewSQLiteRepository(db).ListOptions(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"2"}, ids(stored))

	f.deleteErr = errors.New("forbidden")
	err = s.Delete(ctx, feed, "2")
	require.ErrorContains(t, err, "forbidden")
	require.Len(t, feed.View.Snapshot().Options, 1, "failed delete keeps the option")
}

func TestOptionService_PersistStoresToken(t *testing.T) {
	db := setupDB(t)
	f := auctionClient()
	s := NewOptionService(f, db, nil, session.Session{}, nil)
	s.now = func() time.Time { return time.Unix(42, 0) }
	ctx := context.Background()

	_, err := s.Open(ctx, "p1", nil)
	require.NoError(t, err)

	cached, err := posts.NewSQLiteRepository(db).GetPost(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "t2", cached.NextPagingToken)
	require.Equal(t, time.Unix(42, 0), cached.CachedAt)

	_, err = posts.NewSQLiteRepository(db).GetPost(ctx, "p9")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
