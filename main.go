package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"group-order-client/internal/backend"
	"group-order-client/internal/config"
	httpapi "group-order-client/internal/http"
	"group-order-client/internal/http/handlers"
	"group-order-client/internal/logger"
	"group-order-client/internal/receipt"
	"group-order-client/internal/session"
	"group-order-client/internal/storage"
	"group-order-client/internal/ws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.SessionSecret == "dev-insecure-session-secret" && !cfg.IsDevelopment() {
		log.Fatal("SESSION_SECRET must be set outside development")
	}

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	var archiver *receipt.Archiver
	if cfg.ReceiptArchiveEnabled() {
		store, err := storage.NewObjectStore(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
			StorageClass:    cfg.ObjectStoreStorageClass,
		})
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("object store init failed", zap.Error(err))
			}
			log.Warn("object store init failed; receipt archive disabled", zap.Error(err))
		} else {
			archiver = receipt.NewArchiver(store, cfg.ReceiptArchivePrefix, log)
			log.Info("receipt archive enabled", zap.String("bucket", cfg.ObjectStoreBucket), zap.String("prefix", cfg.ReceiptArchivePrefix))
		}
	} else {
		log.Info("receipt archive disabled (object store not configured)")
	}

	sessions := session.NewStore(func() (session.API, error) {
		return backend.New(backend.Options{
			BaseURL: cfg.BackendURL,
			Timeout: cfg.BackendTimeout,
			Logger:  log,
		})
	}, cfg.SessionTTL, log)
	go sessions.Run(ctx, cfg.SessionSweepInterval)

	h, err := handlers.New(log, cfg, archiver)
	if err != nil {
		log.Fatal("page templates failed", zap.Error(err))
	}
	wsServer := ws.New(log, cfg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(log, cfg, sessions, h, wsServer),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("order backend", zap.String("url", cfg.BackendURL), zap.Duration("timeout", cfg.BackendTimeout))
		log.Info("view stream ready", zap.String("path", "/ws/view"))
		log.Info("group order client listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelRun()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
