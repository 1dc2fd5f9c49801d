// Package main is the entrypoint for the license backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-device-license-go/internal/bootstrap"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/expiry"
	"github.com/LerianStudio/lib-device-license-go/server"
	"github.com/LerianStudio/lib-device-license-go/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger := zap.InitializeLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if err := util.ValidateEnvVariables(&cfg, logger); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open license store: %v", err)
	}
	defer stores.Close()

	svc := bootstrap.NewService(stores, cfg, logger)

	sweeper := expiry.NewSweeper(svc, cfg.ExpirySweepSpec, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatalf("Failed to start expiry sweeper: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := server.New(svc, cfg, reg, logger).App()

	go func() {
		logger.Infof("License server listening on %s (store: %s)", cfg.ListenAddr, cfg.StoreDriver)

		if err := app.Listen(cfg.ListenAddr); err != nil {
			logger.Errorf("HTTP server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down license server")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Errorf("HTTP shutdown: %v", err)
	}

	<-sweeper.Stop().Done()

	_ = logger.Sync()
}
