package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	orderControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/order"
	"github.com/Bishesh-P/coffee-alpico-sub000/routes"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	snapshotTTL  = 30 * 24 * time.Hour
	sweepEvery   = 10 * time.Minute
	shutdownWait = 10 * time.Second
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Int("products", len(cat.All())))

	db, err := storage.OpenPostgres(cfg.DSN())
	if err != nil {
		return err
	}
	if err := storage.Migrate(db); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	orders := storage.NewOrderStore(db)
	kv := storage.NewRedisStore(rdb, snapshotTTL)
	hub := orderControllers.NewHub(log.Named("ws"))
	registry := sessions.NewRegistry(cfg.SessionTTL, log.Named("sessions"))

	svc := checkout.NewService(checkout.Deps{
		Orders:        orders,
		Receipts:      storage.NewDiskReceiptStore(cfg.UploadDir, cfg.PublicBaseURL),
		Snapshots:     kv,
		Customers:     kv,
		Notifier:      hub,
		Logger:        log.Named("checkout"),
		OrderIDPrefix: cfg.OrderIDPrefix,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log.Named("http")))

	// Receipts are small images; keep multipart parsing bounded.
	r.MaxMultipartMemory = 16 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded receipts
	r.Static("/uploads", cfg.UploadDir)

	routes.SetupRoutes(r, routes.Deps{
		Catalog:   cat,
		Sessions:  registry,
		Checkout:  svc,
		Orders:    orders,
		Hub:       hub,
		Guests:    auth.NewGuestIssuer(cfg.JWTSecret, cfg.SessionTTL),
		APIKey:    cfg.APIKey,
		StoreName: cfg.StoreName,
		Logger:    log,
	})

	go registry.RunJanitor(ctx, sweepEvery)
	go startDailyBackupAtFixedTime(ctx, log.Named("backup"), cfg.UploadDir, cfg.BackupDir, cfg.BackupRetention, cfg.BackupHour, 0)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
