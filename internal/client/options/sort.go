// Package options holds the ordered option list of a decision post and the
// pure merge/sort functions behind it.
//
// Display order for a user:
//  1. the highest option, when the user created or supports it;
//  2. options created by the user, newest identifier first;
//  3. options the user supports, newest identifier first;
//  4. the highest option, if not placed yet;
//  5. everything else, newest identifier first.
//
// Exactly one option of a non-empty list carries IsHighest: the one with the
// maximum amount, the first encountered one on ties.
package options

import (
	"slices"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
)

// Sort returns a new slice ordered for userID, with IsHighest and
// IsCreatedByMe recomputed. The input is not modified.
func Sort(opts []models.Option, userID string) []models.Option {
	if len(opts) == 0 {
		return nil
	}

	work := slices.Clone(opts)
	highest := 0
	for i := range work {
		work[i].IsHighest = false
		work[i].IsCreatedByMe = userID != "" && work[i].Creator.ID == userID
		if work[i].Amount > work[highest].Amount {
			highest = i
		}
	}
	work[highest].IsHighest = true
	top := work[highest]

	newest := slices.Clone(work)
	slices.SortStableFunc(newest, func(a, b models.Option) int {
		return models.CompareIDs(b.ID, a.ID)
	})

	result := make([]models.Option, 0, len(work))
	seen := make(map[string]struct{}, len(work))
	add := func(o models.Option) {
		if _, ok := seen[o.ID]; ok {
			return
		}
		seen[o.ID] = struct{}{}
		result = append(result, o)
	}

	if top.IsCreatedByMe || top.IsSupportedByMe {
		add(top)
	}
	for _, o := range newest {
		if o.IsCreatedByMe {
			add(o)
		}
	}
	for _, o := range newest {
		if o.IsSupportedByMe {
			add(o)
		}
	}
	add(top)
	for _, o := range newest {
		add(o)
	}

	return result
}

// Merge folds incoming into current and returns the re-sorted list.
// current is the collection in arrival order, as kept by Upsert; ties for
// the highest amount go to the earliest arrival. Neither argument is
// modified.
func Merge(current []models.Option, userID string, incoming ...models.Option) []models.Option {
	merged, _ := Upsert(current, incoming...)
	return Sort(merged, userID)
}

// Upsert folds incoming into the collection without sorting it: unknown
// options are appended, known ones keep their position. It reports whether
// any stored option changed. current is not modified.
func Upsert(current []models.Option, incoming ...models.Option) ([]models.Option, bool) {
	merged := slices.Clone(current)
	changed := false
	for _, in := range incoming {
		var c bool
		merged, c = mergeOne(merged, in)
		changed = changed || c
	}
	return merged, changed
}

// mergeOne appends an unknown option or updates the mutable fields of a
// known one. Updates that do not advance the stored state are dropped: by
// version when both sides carry one, otherwise by amount, which only grows.
func mergeOne(list []models.Option, in models.Option) ([]models.Option, bool) {
	i := slices.IndexFunc(list, func(o models.Option) bool { return o.ID == in.ID })
	if i < 0 {
		return append(list, in), true
	}

	cur := &list[i]
	before := *cur
	cur.IsSupportedByMe = cur.IsSupportedByMe || in.IsSupportedByMe

	if advances(*cur, in) {
		cur.Amount = in.Amount
		cur.SupporterCount = in.SupporterCount
		if in.Version > cur.Version {
			cur.Version = in.Version
		}
	}
	return list, *cur != before
}

func advances(cur, in models.Option) bool {
	if cur.Version > 0 && in.Version > 0 {
		return in.Version > cur.Version
	}
	return in.Amount >= cur.Amount
}
