package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/devserver/store"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *wire.PingRequest) (*wire.PingResponse, error) {
	return &wire.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *wire.RefreshTokenRequest) (*wire.RefreshTokenResponse, error) {
	pair, err := s.users.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &wire.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) GetAppConstants(ctx context.Context, req *wire.GetAppConstantsRequest) (*wire.GetAppConstantsResponse, error) {
	return s.store.Constants(), nil
}

// GetPost answers an unknown post with an empty response rather than an
// error.
func (s *GRPCServer) GetPost(ctx context.Context, req *wire.GetPostRequest) (*wire.GetPostResponse, error) {
	return &wire.GetPostResponse{Post: s.store.Post(req.PostId)}, nil
}

func (s *GRPCServer) GetOptions(ctx context.Context, req *wire.GetOptionsRequest) (*wire.GetOptionsResponse, error) {
	options, next, err := s.store.Options(identity(ctx).UserID, req.PostId, req.PagingToken, int(req.Limit))
	if err != nil {
		return nil, s.mapError(err)
	}
	return &wire.GetOptionsResponse{Options: options, NextPagingToken: next}, nil
}

func (s *GRPCServer) PlaceBid(ctx context.Context, req *wire.ContributionRequest) (*wire.ContributionResponse, error) {
	return s.contribute(ctx, wire.PurposeKindPlaceBid, req)
}

func (s *GRPCServer) Pledge(ctx context.Context, req *wire.ContributionRequest) (*wire.ContributionResponse, error) {
	return s.contribute(ctx, wire.PurposeKindPledge, req)
}

func (s *GRPCServer) Vote(ctx context.Context, req *wire.ContributionRequest) (*wire.ContributionResponse, error) {
	return s.contribute(ctx, wire.PurposeKindVote, req)
}

func (s *GRPCServer) contribute(ctx context.Context, kind wire.PurposeKind, req *wire.ContributionRequest) (*wire.ContributionResponse, error) {
	user := identity(ctx)
	resp, err := s.store.Contribute(user, kind, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	s.logger.Info(ctx, "contribution", "post_id", req.PostId, "user_id", user.UserID, "status", int32(resp.Status))
	return resp, nil
}

func (s *GRPCServer) ValidateText(ctx context.Context, req *wire.ValidateTextRequest) (*wire.ValidateTextResponse, error) {
	return &wire.ValidateTextResponse{Status: moderate(req.Text, req.Kind)}, nil
}

func (s *GRPCServer) CreateSetupIntent(ctx context.Context, req *wire.CreateSetupIntentRequest) (*wire.SetupIntentResponse, error) {
	secret := s.store.CreateSetupIntent(identity(ctx), req.Purpose)
	if secret == "" {
		return &wire.SetupIntentResponse{Status: wire.SetupIntentStatusInvalidPurpose}, nil
	}
	return &wire.SetupIntentResponse{SetupIntentClientSecret: secret, Status: wire.SetupIntentStatusOK}, nil
}

func (s *GRPCServer) UpdateSetupIntent(ctx context.Context, req *wire.UpdateSetupIntentRequest) (*wire.SetupIntentResponse, error) {
	if !s.store.UpdateSetupIntent(req.SetupIntentClientSecret, req.Purpose) {
		return &wire.SetupIntentResponse{Status: wire.SetupIntentStatusInvalidPurpose}, nil
	}
	return &wire.SetupIntentResponse{SetupIntentClientSecret: req.SetupIntentClientSecret, Status: wire.SetupIntentStatusOK}, nil
}

func (s *GRPCServer) DeleteOption(ctx context.Context, req *wire.DeleteOptionRequest) (*wire.DeleteOptionResponse, error) {
	if err := s.store.DeleteOption(identity(ctx), req.PostId, req.OptionId); err != nil {
		return nil, s.mapError(err)
	}
	return &wire.DeleteOptionResponse{}, nil
}

func (s *GRPCServer) mapError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, store.ErrWrongPostKind),
		errors.Is(err, store.ErrBelowMinimum),
		errors.Is(err, store.ErrNoOption):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
