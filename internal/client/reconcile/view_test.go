package reconcile

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T) *PostView {
	t.Helper()
	v := NewPostView(models.Post{ID: "p1", Kind: models.PostKindAuction, TotalAmount: 800, OptionCount: 2, Version: 3}, "me", nil)
	v.MergeOptions(
		models.Option{ID: "1", Title: "Red", Amount: 500},
		models.Option{ID: "2", Title: "Blue", Amount: 300},
	)
	return v
}

func TestApply_OptionUpsertReordersAndFlagsHighest(t *testing.T) {
	v := newView(t)

	changed := v.Apply(context.Background(), models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "2", Amount: 700}})
	require.True(t, changed)

	snap := v.Snapshot()
	require.Len(t, snap.Options, 2)
	assert.Equal(t, "2", snap.Options[0].ID)
	assert.True(t, snap.Options[0].IsHighest)
	assert.Equal(t, int64(700), snap.Options[0].Amount)
	assert.Equal(t, "Blue", snap.Options[0].Title)
	assert.False(t, snap.Options[1].IsHighest)
}

func TestApply_IgnoresOtherPosts(t *testing.T) {
	v := newView(t)
	calls := 0
	v.OnChange(func(Snapshot) { calls++ })

	require.False(t, v.Apply(context.Background(), models.OptionUpserted{PostID: "other", Option: models.Option{ID: "9", Amount: 1}}))
	require.False(t, v.Apply(context.Background(), nil))
	require.Len(t, v.Snapshot().Options, 2)
	require.Zero(t, calls)
}

func TestApply_PatchesOverviewedOption(t *testing.T) {
	v := newView(t)

	o, ok := v.Overview("1")
	require.True(t, ok)
	require.Equal(t, int64(500), o.Amount)

	v.Apply(context.Background(), models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "1", Amount: 650, SupporterCount: 4}})

	snap := v.Snapshot()
	require.NotNil(t, snap.Overviewed)
	assert.Equal(t, int64(650), snap.Overviewed.Amount)
	assert.Equal(t, int64(4), snap.Overviewed.SupporterCount)
	assert.Equal(t, "Red", snap.Overviewed.Title)

	// another option takes the lead
	v.Apply(context.Background(), models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "2", Amount: 900}})
	snap = v.Snapshot()
	assert.Equal(t, int64(650), snap.Overviewed.Amount)
	assert.False(t, snap.Overviewed.IsHighest)

	v.CloseOverview()
	require.Nil(t, v.Snapshot().Overviewed)

	_, ok = v.Overview("missing")
	require.False(t, ok)
}

func TestApply_StaleOptionUpdateIsNotAChange(t *testing.T) {
	v := NewPostView(models.Post{ID: "p1", Kind: models.PostKindAuction}, "me", nil)
	v.MergeOptions(models.Option{ID: "1", Title: "Red", Amount: 500, Version: 5})

	o, ok := v.Overview("1")
	require.True(t, ok)
	require.Equal(t, int64(500), o.Amount)

	calls := 0
	v.OnChange(func(Snapshot) { calls++ })

	stale := models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "1", Title: "Red", Amount: 300, Version: 4}}
	require.False(t, v.Apply(context.Background(), stale))
	require.Zero(t, calls)

	snap := v.Snapshot()
	assert.Equal(t, int64(500), snap.Options[0].Amount)
	assert.Equal(t, int64(500), snap.Overviewed.Amount)

	// replaying the applied state changes nothing either
	same := models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "1", Title: "Red", Amount: 500, Version: 5}}
	require.False(t, v.Apply(context.Background(), same))

	fresh := models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "1", Title: "Red", Amount: 800, Version: 6}}
	require.True(t, v.Apply(context.Background(), fresh))
	require.Equal(t, 1, calls)
	assert.Equal(t, int64(800), v.Snapshot().Overviewed.Amount)
}

func TestApply_PostUpdated(t *testing.T) {
	v := newView(t)

	require.True(t, v.Apply(context.Background(), models.PostUpdated{PostID: "p1", TotalAmount: 1500, OptionCount: 3, Version: 4}))
	p := v.Snapshot().Post
	assert.Equal(t, int64(1500), p.TotalAmount)
	assert.Equal(t, int64(3), p.OptionCount)
	assert.Equal(t, int64(4), p.Version)

	// stale
	require.False(t, v.Apply(context.Background(), models.PostUpdated{PostID: "p1", TotalAmount: 900, OptionCount: 2, Version: 4}))
	assert.Equal(t, int64(1500), v.Snapshot().Post.TotalAmount)

	// unversioned updates are applied as received
	require.True(t, v.Apply(context.Background(), models.PostUpdated{PostID: "p1", TotalAmount: 1600, OptionCount: 3}))
	assert.Equal(t, int64(1600), v.Snapshot().Post.TotalAmount)
	assert.Equal(t, int64(4), v.Snapshot().Post.Version)
}

func TestOnChange_ReceivesSnapshots(t *testing.T) {
	v := newView(t)

	var got []Snapshot
	v.OnChange(func(s Snapshot) { got = append(got, s) })

	v.Apply(context.Background(), models.OptionUpserted{PostID: "p1", Option: models.Option{ID: "3", Amount: 10}})
	require.Len(t, got, 1)
	require.Len(t, got[0].Options, 3)

	require.True(t, v.Remove("3"))
	require.False(t, v.Remove("3"))
	require.Len(t, got, 2)
	require.Len(t, got[1].Options, 2)
}

func TestRemove_ClosesOverview(t *testing.T) {
	v := newView(t)
	_, ok := v.Overview("2")
	require.True(t, ok)

	require.True(t, v.Remove("2"))
	require.Nil(t, v.Snapshot().Overviewed)
}

func TestSetPost(t *testing.T) {
	v := newView(t)

	require.False(t, v.SetPost(models.Post{ID: "other"}))
	require.False(t, v.SetPost(models.Post{ID: "p1", Version: 2}))
	require.True(t, v.SetPost(models.Post{ID: "p1", Kind: models.PostKindAuction, Title: "fresh", Version: 5}))
	require.Equal(t, "fresh", v.Snapshot().Post.Title)
}

func TestCapabilities(t *testing.T) {
	v := newView(t)
	require.Equal(t, models.Capabilities{AmountInput: true, FreeTextEntry: true}, v.Capabilities())
	require.Equal(t, "me", v.UserID())
	require.Equal(t, "p1", v.PostID())
}
