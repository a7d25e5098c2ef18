// Command reconcilerd serves reconciliation runs over gRPC.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/waybill-recon/internal/app"
	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/server"
)

func main() {
	configFile := flag.String("config", "", "config file (default ./waybill-recon.yaml)")
	addr := flag.String("addr", "", "listen address, overrides server.grpc_addr")
	flag.Parse()

	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		app.NewLogger(common.LogConfig{}, false, false, nil).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.GRPCAddr = *addr
	}
	logger := app.NewLogger(cfg.Log, false, false, os.Stdout)

	a, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// pdftotext must be present before we report SERVING.
	if err := a.Extractor.Check(ctx); err != nil {
		logger.Error("extractor unavailable", "error", err)
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)

	svc := server.NewReconcileService(a.Processor, a.Ingestor, a.Exporter, logger)
	server.RegisterReconcileServiceServer(grpcServer, svc)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(server.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		logger.Info("grpc.serving", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("grpc.shutdown")
	hs.Shutdown()
	grpcServer.GracefulStop()
}
