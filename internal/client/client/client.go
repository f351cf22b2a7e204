package client

import (
	"context"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
)

// Client is the typed request/response contract of the decision backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GetAppConstants(ctx context.Context) (models.AppConstants, error)
	GetPost(ctx context.Context, postID string) (models.Post, error)
	GetOptions(ctx context.Context, postID, pagingToken string, limit int) (models.OptionPage, error)
	// Contribute sends a bid, pledge or vote depending on the purpose.
	Contribute(ctx context.Context, c models.Contribution) (models.ContributionResult, error)
	ValidateText(ctx context.Context, text string, kind models.TextKind) (bool, error)
	CreateSetupIntent(ctx context.Context, req models.SetupIntentRequest) (*models.SetupIntent, error)
	UpdateSetupIntent(ctx context.Context, intent *models.SetupIntent, purpose models.Purpose) error
	DeleteOption(ctx context.Context, postID, optionID string) error
}
