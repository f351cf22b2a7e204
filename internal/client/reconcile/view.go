// Package reconcile folds push events and contribution results into the
// local state of one viewed post.
package reconcile

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/client/options"
	"github.com/dmitrijs2005/bidsync/internal/logging"
)

// Snapshot is a consistent copy of a post view.
type Snapshot struct {
	Post    models.Post
	Options []models.Option
	// Overviewed is the option open in a detail view, if any.
	Overviewed *models.Option
}

// PostView owns the post, its option list and the overviewed option.
type PostView struct {
	mu         sync.Mutex
	post       models.Post
	list       *options.List
	overviewed *models.Option
	listeners  []func(Snapshot)
	logger     logging.Logger
}

// NewPostView creates a view of post for userID.
func NewPostView(post models.Post, userID string, logger logging.Logger) *PostView {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &PostView{
		post:   post,
		list:   options.NewList(userID),
		logger: logger.With("module", "reconcile", "post_id", post.ID),
	}
}

func (v *PostView) PostID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post.ID
}

// Capabilities returns what the option list of this post allows.
func (v *PostView) Capabilities() models.Capabilities {
	v.mu.Lock()
	defer v.mu.Unlock()
	return models.CapabilitiesFor(v.post.Kind)
}

func (v *PostView) UserID() string {
	return v.list.UserID()
}

// OnChange registers fn to receive a snapshot after each applied change.
// Listeners run synchronously on the goroutine that applied the change.
func (v *PostView) OnChange(fn func(Snapshot)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Apply folds one push event in. Events for other posts are ignored; the
// return value reports whether the view changed.
func (v *PostView) Apply(ctx context.Context, ev models.PushEvent) bool {
	v.mu.Lock()
	if ev == nil || ev.Post() != v.post.ID {
		v.mu.Unlock()
		return false
	}

	var changed bool
	switch e := ev.(type) {
	case models.OptionUpserted:
		changed = v.mergeLocked(e.Option)
		if !changed {
			v.logger.Debug(ctx, "stale option update dropped", "option_id", e.Option.ID, "version", e.Option.Version)
		}
	case models.PostUpdated:
		changed = v.updatePostLocked(e)
		if !changed {
			v.logger.Debug(ctx, "stale post update dropped", "version", e.Version, "current", v.post.Version)
		}
	}

	snap, listeners := v.snapshotLocked(), slices.Clone(v.listeners)
	v.mu.Unlock()

	if changed {
		notify(listeners, snap)
	}
	return changed
}

// MergeOptions folds fetched or returned options in and returns the new
// ordered list.
func (v *PostView) MergeOptions(opts ...models.Option) []models.Option {
	v.mu.Lock()
	for _, o := range opts {
		v.mergeLocked(o)
	}
	snap, listeners := v.snapshotLocked(), slices.Clone(v.listeners)
	v.mu.Unlock()

	notify(listeners, snap)
	return snap.Options
}

// Remove drops a deleted option, closing its overview if open.
func (v *PostView) Remove(optionID string) bool {
	v.mu.Lock()
	removed := v.list.Remove(optionID)
	if removed && v.overviewed != nil && v.overviewed.ID == optionID {
		v.overviewed = nil
	}
	snap, listeners := v.snapshotLocked(), slices.Clone(v.listeners)
	v.mu.Unlock()

	if removed {
		notify(listeners, snap)
	}
	return removed
}

// SetPost replaces the cached post, e.g. after a refetch. The version guard
// applies here too.
func (v *PostView) SetPost(p models.Post) bool {
	v.mu.Lock()
	if p.ID != v.post.ID || (p.Version > 0 && v.post.Version > 0 && p.Version < v.post.Version) {
		v.mu.Unlock()
		return false
	}
	v.post = p
	snap, listeners := v.snapshotLocked(), slices.Clone(v.listeners)
	v.mu.Unlock()

	notify(listeners, snap)
	return true
}

// Overview opens the detail view of an option.
func (v *PostView) Overview(optionID string) (models.Option, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	o, ok := v.list.Get(optionID)
	if !ok {
		return models.Option{}, false
	}
	v.overviewed = &o
	return o, true
}

func (v *PostView) CloseOverview() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.overviewed = nil
}

func (v *PostView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *PostView) Option(id string) (models.Option, bool) {
	return v.list.Get(id)
}

// mergeLocked reports whether the merge changed the list.
func (v *PostView) mergeLocked(o models.Option) bool {
	changed := v.list.Upsert(o)
	if !changed || v.overviewed == nil {
		return changed
	}
	// the highest flag may move even when another option was merged
	if merged, ok := v.list.Get(v.overviewed.ID); ok {
		v.overviewed.Amount = merged.Amount
		v.overviewed.SupporterCount = merged.SupporterCount
		v.overviewed.IsHighest = merged.IsHighest
	}
	return true
}

func (v *PostView) updatePostLocked(e models.PostUpdated) bool {
	if e.Version > 0 && v.post.Version > 0 && e.Version <= v.post.Version {
		return false
	}
	v.post.TotalAmount = e.TotalAmount
	v.post.OptionCount = e.OptionCount
	if e.Version > v.post.Version {
		v.post.Version = e.Version
	}
	return true
}

func (v *PostView) snapshotLocked() Snapshot {
	s := Snapshot{Post: v.post, Options: v.list.Snapshot()}
	if v.overviewed != nil {
		o := *v.overviewed
		s.Overviewed = &o
	}
	return s
}

func notify(listeners []func(Snapshot), s Snapshot) {
	for _, fn := range listeners {
		fn(s)
	}
}
