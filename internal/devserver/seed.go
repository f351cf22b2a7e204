package devserver

import (
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/devserver/store"
	"github.com/dmitrijs2005/bidsync/internal/devserver/users"
	"github.com/dmitrijs2005/bidsync/internal/wire"
)

// DefaultConstants are the platform limits the dev backend reports.
var DefaultConstants = wire.GetAppConstantsResponse{
	CustomerFeeRate: 0.05,
	MinBid:          100,
	MinPledge:       500,
	MinHold:         100,
	VotePrice:       100,
}

// Seed fills st with demo posts and us with demo accounts. demoUser becomes
// the creator of the first post.
func Seed(st *store.Store, us *users.Service, demoUser string, now time.Time) {
	demo := auth.Identity{UserID: "1", Username: demoUser, Locale: "en"}
	ana := auth.Identity{UserID: "2", Username: "ana", Locale: "es"}
	bob := auth.Identity{UserID: "3", Username: "bob", Locale: "en"}
	for _, id := range []auth.Identity{demo, ana, bob} {
		us.AddUser(id)
	}

	user := func(id auth.Identity) *wire.User { return &wire.User{Id: id.UserID, Username: id.Username} }
	started := now.Add(-time.Hour).Unix()
	week := now.Add(7 * 24 * time.Hour).Unix()

	st.AddPost(wire.Post{
		Id: "1", Kind: wire.PostKindAuction, Title: "Where should we film the next episode?",
		StartsAtUnix: started, ExpiresAtUnix: week, Creator: user(demo),
	},
		wire.Option{Title: "Lisbon", Amount: 2500, SupporterCount: 3, Creator: user(ana), CreatedAtUnix: started},
		wire.Option{Title: "Reykjavik", Amount: 4000, SupporterCount: 2, Creator: user(bob), CreatedAtUnix: started},
		wire.Option{Title: "Kyoto", Amount: 4000, SupporterCount: 5, Creator: user(ana), CreatedAtUnix: started},
	)

	st.AddPost(wire.Post{
		Id: "2", Kind: wire.PostKindCrowdfunding, Title: "New studio microphones",
		StartsAtUnix: started, ExpiresAtUnix: week, Creator: user(ana), TargetAmount: 150000,
	},
		wire.Option{Title: "Supporter", Amount: 12000, SupporterCount: 8, Creator: user(ana), CreatedAtUnix: started},
		wire.Option{Title: "Producer", Amount: 30000, SupporterCount: 2, Creator: user(ana), CreatedAtUnix: started},
	)

	st.AddPost(wire.Post{
		Id: "3", Kind: wire.PostKindMultipleChoice, Title: "Pick the theme of the month",
		StartsAtUnix: started, ExpiresAtUnix: week, Creator: user(bob),
	},
		wire.Option{Title: "Retro games", Amount: 700, SupporterCount: 7, Creator: user(bob), CreatedAtUnix: started},
		wire.Option{Title: "Street food", Amount: 300, SupporterCount: 3, Creator: user(demo), CreatedAtUnix: started},
	)

	st.AddPost(wire.Post{
		Id: "4", Kind: wire.PostKindAuction, Title: "Last season's finale location",
		StartsAtUnix: now.Add(-14 * 24 * time.Hour).Unix(), ExpiresAtUnix: now.Add(-24 * time.Hour).Unix(), Creator: user(bob),
	},
		wire.Option{Title: "Berlin", Amount: 9000, SupporterCount: 4, Creator: user(bob), CreatedAtUnix: started},
	)
}
