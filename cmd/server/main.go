package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery_wallet/internal/config"
	"gallery_wallet/internal/events"
	"gallery_wallet/internal/handlers"
	"gallery_wallet/internal/logging"
	"gallery_wallet/internal/reconciler"
	"gallery_wallet/internal/repository"
	"gallery_wallet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	logger := logging.SetupLogger(cfg.LogLevel)

	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	poolConfig, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		logger.Error("failed to parse db config", "err", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Error("failed to apply migrations", "err", err)
		os.Exit(1)
	}

	rdb := events.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if rdb != nil {
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, transaction notifications will be dropped", "addr", cfg.RedisAddr, "err", err)
		}
	}
	incidentWriter := events.NewIncidentWriter(cfg.KafkaBrokers, cfg.KafkaIncidentTopic, logger)
	if incidentWriter != nil {
		defer incidentWriter.Close()
	}
	publisher := events.NewPublisher(rdb, incidentWriter, logger)

	ledger := repository.NewWalletPGRepository(pool, logger)
	catalog := repository.NewCatalogPGRepository(pool, logger)
	incidents := repository.NewIncidentPGRepository(pool, logger)
	withdrawalRequests := repository.NewWithdrawalPGRepository(pool, logger)

	wallets := service.NewWalletService(ledger, publisher, logger).WithMaxRetries(cfg.MaxRetries)
	payments := service.NewPaymentService(ledger, wallets, logger)
	settlement := service.NewSettlementService(ledger, wallets, payments, catalog, catalog, incidents, publisher, logger)
	statistics := service.NewStatisticsService(ledger, logger)
	withdrawals := service.NewWithdrawalService(withdrawalRequests, ledger, publisher, logger).WithMaxRetries(cfg.MaxRetries)

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	limiter := handlers.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go limiter.RunCleanup(runCtx)
	go reconciler.Run(runCtx, settlement, cfg.ReconcileInterval, logger)

	handler := handlers.NewWalletHTTPHandler(wallets, payments, settlement, statistics, limiter, logger).
		WithWithdrawals(withdrawals)

	r := gin.Default()
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")
	stop()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
	}
	logger.Info("Server exiting")
}
