package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raffled/internal/assets"
	"raffled/internal/config"
	"raffled/internal/handlers"
	"raffled/internal/logger"
	"raffled/internal/raffle"
	"raffled/internal/storage"
)

func main() {
	cfg := config.Load()

	logger.Initialize(logger.Configuration{
		LogFile:   cfg.LogFile,
		ErrorFile: cfg.ErrorFile,
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
	})

	if cfg.OracleIdentity == "" {
		logger.Fatal("ORACLE_IDENTITY is required")
	}

	native := assets.NewNativeBook()
	adapter := assets.NewAdapter(cfg.EscrowAccount, native)
	store := storage.NewSqliteStorage(cfg.DatabasePath)
	service := raffle.NewService(adapter, store, cfg.OracleIdentity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("sweep loop stopped")
				return
			case <-ticker.C:
				runSweep(service)
			}
		}
	}()

	go func() {
		httpHandler := handlers.NewHTTPHandler(service)

		router := gin.Default()
		httpHandler.RegisterRoutes(router)

		logger.Info("http server starting", zap.String("address", cfg.ListenAddress))
		if err := router.Run(cfg.ListenAddress); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("stopping on error", zap.Error(err))
		cancel()
	case <-waitForInterrupt():
		logger.Info("interrupt received, shutting down")
		cancel()
	}
}

// runSweep drains every currently eligible raffle, one scan/process round at
// a time, stopping when the scan reports none.
func runSweep(service *raffle.Service) {
	for {
		id, ok, err := service.Scan()
		if err != nil {
			logger.Warn("sweep: scan failed", zap.Error(err))
			return
		}
		if !ok {
			return
		}

		if _, err := service.Process(id); err != nil {
			logger.Warn("sweep: cannot process raffle", zap.Uint64("raffle", id), zap.Error(err))
			return
		}
	}
}

func waitForInterrupt() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	return sigCh
}
