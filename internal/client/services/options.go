package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/reconcile"
	"github.com/dmitrijs2005/bidsync/internal/client/repositories/posts"
	"github.com/dmitrijs2005/bidsync/internal/client/session"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/dbx"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Feed is an opened post: its live view plus the paging cursor.
type Feed struct {
	View *reconcile.PostView
	// Stale is set when the feed was served from the local cache because
	// the backend could not be reached.
	Stale bool

	mu        sync.Mutex
	nextToken string
}

// HasMore reports whether another page can be loaded.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextToken != ""
}

func (f *Feed) token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextToken
}

func (f *Feed) setToken(t string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextToken = t
}

// OptionService opens posts and keeps their option lists in sync with the
// backend and the local cache.
type OptionService struct {
	client    client.Client
	db        *sql.DB
	constants *ConstantsCache
	session   session.Session
	logger    logging.Logger
	pageSize  int
	now       func() time.Time
}

func NewOptionService(c client.Client, db *sql.DB, constants *ConstantsCache, sess session.Session, logger logging.Logger) *OptionService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &OptionService{
		client:    c,
		db:        db,
		constants: constants,
		session:   sess,
		logger:    logger.With("module", "options"),
		pageSize:  common.DefaultPageSize,
		now:       time.Now,
	}
}

// Open loads postID. When the post is cached, onCached receives the cached
// snapshot before the backend is asked. The post, its first page and the
// platform constants are then fetched concurrently. If the backend fails
// and a cached copy exists, the cached feed is returned marked Stale.
func (s *OptionService) Open(ctx context.Context, postID string, onCached func(reconcile.Snapshot)) (*Feed, error) {
	repo := posts.NewSQLiteRepository(s.db)

	cachedFeed, err := s.fromCache(ctx, repo, postID)
	if err != nil {
		s.logger.Warn(ctx, "cache read failed", "post_id", postID, "err", err)
	}
	if cachedFeed != nil && onCached != nil {
		onCached(cachedFeed.View.Snapshot())
	}

	var (
		post models.Post
		page models.OptionPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = s.client.GetPost(gctx, postID)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = s.client.GetOptions(gctx, postID, "", s.pageSize)
		return err
	})
	g.Go(func() error {
		if s.constants == nil {
			return nil
		}
		if _, err := s.constants.Constants(gctx); err != nil {
			s.logger.Warn(gctx, "constants prefetch failed", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if cachedFeed != nil && !errors.Is(err, client.ErrNoData) {
			s.logger.Warn(ctx, "serving cached post", "post_id", postID, "err", err)
			cachedFeed.Stale = true
			return cachedFeed, nil
		}
		return nil, fmt.Errorf("open post %s: %w", postID, err)
	}

	feed := &Feed{View: reconcile.NewPostView(post, s.session.UserID, s.logger), nextToken: page.NextPagingToken}
	feed.View.MergeOptions(page.Options...)

	if err := s.Persist(ctx, feed); err != nil {
		s.logger.Warn(ctx, "cache write failed", "post_id", postID, "err", err)
	}
	return feed, nil
}

// LoadMore fetches the next page. It returns the number of options
// received, 0 when the list is exhausted.
func (s *OptionService) LoadMore(ctx context.Context, feed *Feed) (int, error) {
	tok := feed.token()
	if tok == "" {
		return 0, nil
	}

	page, err := s.client.GetOptions(ctx, feed.View.PostID(), tok, s.pageSize)
	if err != nil {
		return 0, fmt.Errorf("load more options: %w", err)
	}

	feed.View.MergeOptions(page.Options...)
	feed.setToken(page.NextPagingToken)

	if err := s.Persist(ctx, feed); err != nil {
		s.logger.Warn(ctx, "cache write failed", "post_id", feed.View.PostID(), "err", err)
	}
	return len(page.Options), nil
}

// Delete removes an option on the backend, then from the view and cache.
func (s *OptionService) Delete(ctx context.Context, feed *Feed, optionID string) error {
	postID := feed.View.PostID()
	if err := s.client.DeleteOption(ctx, postID, optionID); err != nil {
		return fmt.Errorf("delete option %s: %w", optionID, err)
	}

	feed.View.Remove(optionID)

	if err := posts.NewSQLiteRepository(s.db).DeleteOption(ctx, postID, optionID); err != nil {
		s.logger.Warn(ctx, "cache delete failed", "post_id", postID, "option_id", optionID, "err", err)
	}
	return nil
}

// Persist writes the current view of feed to the local cache atomically.
func (s *OptionService) Persist(ctx context.Context, feed *Feed) error {
	snap := feed.View.Snapshot()
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := posts.NewSQLiteRepository(tx)
		if err := repo.SavePost(ctx, posts.Cached{Post: snap.Post, NextPagingToken: feed.token(), CachedAt: s.now()}); err != nil {
			return err
		}
		return repo.ReplaceOptions(ctx, snap.Post.ID, snap.Options)
	})
}

func (s *OptionService) fromCache(ctx context.Context, repo posts.Repository, postID string) (*Feed, error) {
	cached, err := repo.GetPost(ctx, postID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	opts, err := repo.ListOptions(ctx, postID)
	if err != nil {
		return nil, err
	}

	feed := &Feed{View: reconcile.NewPostView(cached.Post, s.session.UserID, s.logger), nextToken: cached.NextPagingToken}
	feed.View.MergeOptions(opts...)
	return feed, nil
}
