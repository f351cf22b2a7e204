package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultConstantsTTL = 10 * time.Minute
	constantsTimeout    = 10 * time.Second
)

type ConstantsFetcher interface {
	GetAppConstants(ctx context.Context) (models.AppConstants, error)
}

// ConstantsCache keeps the platform constants for ttl. Concurrent misses
// share one request.
type ConstantsCache struct {
	fetcher ConstantsFetcher
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group

	mu        sync.RWMutex
	value     models.AppConstants
	fetchedAt time.Time
	ok        bool
}

func NewConstantsCache(fetcher ConstantsFetcher, ttl time.Duration) *ConstantsCache {
	if ttl <= 0 {
		ttl = DefaultConstantsTTL
	}
	return &ConstantsCache{fetcher: fetcher, ttl: ttl, now: time.Now}
}

func (c *ConstantsCache) Constants(ctx context.Context) (models.AppConstants, error) {
	if v, ok := c.cached(); ok {
		return v, nil
	}

	// the shared fetch must not die with the first caller's context
	ch := c.group.DoChan("constants", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constantsTimeout)
		defer cancel()

		v, err := c.fetcher.GetAppConstants(fctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value, c.fetchedAt, c.ok = v, c.now(), true
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return models.AppConstants{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.AppConstants{}, res.Err
		}
		return res.Val.(models.AppConstants), nil
	}
}

// Invalidate forces the next call to fetch.
func (c *ConstantsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ok = false
}

func (c *ConstantsCache) cached() (models.AppConstants, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok || c.now().Sub(c.fetchedAt) >= c.ttl {
		return models.AppConstants{}, false
	}
	return c.value, true
}
