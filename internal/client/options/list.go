package options

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
)

// List is the in-memory option collection of one post view. It is safe for
// concurrent use; readers always get copies.
//
// items keeps arrival order, which breaks ties for the highest amount;
// sorted is the display order derived from it.
type List struct {
	mu     sync.RWMutex
	userID string
	items  []models.Option
	sorted []models.Option
}

// NewList returns an empty list ordered for userID (empty for guests).
func NewList(userID string) *List {
	return &List{userID: userID}
}

// Merge folds the given options in and returns the new ordered snapshot.
func (l *List) Merge(incoming ...models.Option) []models.Option {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.upsertLocked(incoming)
	return slices.Clone(l.sorted)
}

// Upsert folds the given options in and reports whether any stored option
// changed. Updates dropped by the version guard report false.
func (l *List) Upsert(incoming ...models.Option) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.upsertLocked(incoming)
}

// MergeAll folds a fetched page in.
func (l *List) MergeAll(page []models.Option) []models.Option {
	return l.Merge(page...)
}

// Reset replaces the whole collection, e.g. when a cached list is seeded.
func (l *List) Reset(opts []models.Option) []models.Option {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.upsertLocked(opts)
	return slices.Clone(l.sorted)
}

// Remove drops an option (moderation delete). It reports whether the option
// was present.
func (l *List) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.items, func(o models.Option) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	l.items = slices.Delete(slices.Clone(l.items), i, i+1)
	l.sorted = Sort(l.items, l.userID)
	return true
}

func (l *List) upsertLocked(incoming []models.Option) bool {
	items, changed := Upsert(l.items, incoming...)
	l.items = items
	l.sorted = Sort(items, l.userID)
	return changed
}

// Get returns a copy of the option with the given id.
func (l *List) Get(id string) (models.Option, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, o := range l.sorted {
		if o.ID == id {
			return o, true
		}
	}
	return models.Option{}, false
}

// Highest returns the option flagged as highest, if any.
func (l *List) Highest() (models.Option, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, o := range l.sorted {
		if o.IsHighest {
			return o, true
		}
	}
	return models.Option{}, false
}

func (l *List) Snapshot() []models.Option {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sorted)
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List) UserID() string {
	return l.userID
}
