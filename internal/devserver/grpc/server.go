// Package grpc exposes the dev backend over the same gRPC contract the
// client uses.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/bidsync/internal/devserver/store"
	"github.com/dmitrijs2005/bidsync/internal/devserver/users"
	"github.com/dmitrijs2005/bidsync/internal/logging"
	"github.com/dmitrijs2005/bidsync/internal/wire"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	wire.UnimplementedDecisionServiceServer
	address string
	users   *users.Service
	store   *store.Store
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *users.Service, st *store.Store) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		store:   st,
	}
}

// NewServer builds a grpc.Server with the interceptors and the service
// registered, ready to Serve on any listener.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	}, opts...)
	srv := grpc.NewServer(opts...)
	wire.RegisterDecisionServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
