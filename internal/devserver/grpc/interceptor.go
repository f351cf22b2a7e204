package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/auth"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// methods that ignore the access token entirely
var public = map[string]bool{
	wire.MethodPing:         true,
	wire.MethodRefreshToken: true,
}

// methods that need a signed-in user
var protected = map[string]bool{
	wire.MethodPlaceBid:     true,
	wire.MethodPledge:       true,
	wire.MethodVote:         true,
	wire.MethodDeleteOption: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if public[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}

	if len(accessToken) == 0 {
		if protected[info.FullMethod] {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return handler(ctx, req)
	}

	id, err := s.users.Authenticate(accessToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			// the client refreshes on exactly this message
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	if protected[info.FullMethod] && id.IsGuest {
		return nil, status.Error(codes.PermissionDenied, "sign up required")
	}

	ctx = context.WithValue(ctx, identityKey, id)
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start).String()}
	if err != nil && code != codes.Unauthenticated {
		s.logger.Warn(ctx, "rpc failed", append(args, "err", err)...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}
	return resp, err
}

// identity returns the caller, or the zero Identity for anonymous calls.
func identity(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}
