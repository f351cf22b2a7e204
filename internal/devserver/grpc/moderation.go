package grpc

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/bidsync/internal/wire"
	"golang.org/x/text/cases"
)

var blocklist = []string{"spam", "scam", "buy followers", "free money"}

var maxLength = map[wire.TextKind]int{
	wire.TextKindAuctionOption: 80,
	wire.TextKindPollOption:    80,
	wire.TextKindComment:       500,
}

// moderate is the dev stand-in for the backend text checker.
func moderate(text string, kind wire.TextKind) wire.ValidateTextStatus {
	text = strings.TrimSpace(text)
	limit, ok := maxLength[kind]
	if !ok || text == "" || utf8.RuneCountInString(text) > limit {
		return wire.ValidateTextStatusRejected
	}

	folded := cases.Fold().String(text)
	for _, w := range blocklist {
		if strings.Contains(folded, w) {
			return wire.ValidateTextStatusRejected
		}
	}
	return wire.ValidateTextStatusOK
}
