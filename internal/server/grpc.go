package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/vkotlyar/go-host-keeper/internal/config"
	myGRPC "github.com/vkotlyar/go-host-keeper/internal/handler/grpc"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
)

// grpcServer hosts the gRPC transport. The service surface is registered as
// it grows; today only the listener lifecycle is wired.
type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	return &grpcServer{
		handler: handler,
		server:  grpc.NewServer(),
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Msgf("gRPC server Listen: %v", err)
		return
	}
	g.gRPCNetListener = listener

	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
