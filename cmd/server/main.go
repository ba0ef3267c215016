package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pbarbosa/vehicle-sales/internal/adapter/handler"
	"github.com/pbarbosa/vehicle-sales/internal/adapter/inventory"
	"github.com/pbarbosa/vehicle-sales/internal/adapter/storage"
	"github.com/pbarbosa/vehicle-sales/internal/config"
	"github.com/pbarbosa/vehicle-sales/internal/core/cache"
	"github.com/pbarbosa/vehicle-sales/internal/core/service"
	"github.com/pbarbosa/vehicle-sales/internal/logger"
	"github.com/pbarbosa/vehicle-sales/internal/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.FromEnv()

	zaplog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zaplog.Sync()

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		zaplog.Fatal("failed to open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		zaplog.Fatal("failed to ping mysql", zap.Error(err))
	}
	zaplog.Info("connected to mysql")

	saleRepo, err := storage.NewMySQLAdapter(db)
	if err != nil {
		zaplog.Fatal("failed to init sale storage", zap.Error(err))
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zaplog.Fatal("failed to connect redis", zap.Error(err))
	}
	zaplog.Info("connected to redis")

	saleLock := storage.NewRedisAdapter(rdb)

	m := metrics.New(prometheus.DefaultRegisterer)

	inventoryClient := inventory.NewClient(cfg.InventoryURL, cfg.ClientTimeout)
	vehicleCache := cache.NewVehicleCache(inventoryClient, cfg.CacheTTL, zaplog, m)
	notifier := inventory.NewWebhook(cfg.WebhookURL, cfg.ClientTimeout, zaplog, m)

	saleService := service.NewSaleService(saleRepo, vehicleCache, notifier, saleLock, zaplog, m)
	vehicleService := service.NewVehicleService(vehicleCache)

	httpHandler := handler.NewHTTPHandler(saleService, vehicleService)
	mux := http.NewServeMux()
	httpHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: logger.RequestLog(mux, zaplog),
	}

	go func() {
		zaplog.Info("http server listening", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			zaplog.Error("http server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zaplog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	zaplog.Info("http server stopped")

	rdb.Close()
	db.Close()
	zaplog.Info("connections closed")
}
