package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	httpMiddleware "github.com/JeanGrijp/secure-api/internal/adapters/http/middleware"
	"github.com/JeanGrijp/secure-api/internal/adapters/http/router"
	memorystorage "github.com/JeanGrijp/secure-api/internal/adapters/storage/memory"
	redisstorage "github.com/JeanGrijp/secure-api/internal/adapters/storage/redis"
	"github.com/JeanGrijp/secure-api/internal/config"
	"github.com/JeanGrijp/secure-api/internal/core/ports"
	"github.com/JeanGrijp/secure-api/internal/core/services"
	"github.com/JeanGrijp/secure-api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("failed to close log files: %v", err)
		}
	}()

	storage, closeFn, err := initStorage(cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer closeFn()

	limiter, err := services.NewRateLimiterService(storage, services.Config{
		Rule: cfg.RateLimiter.IPRule,
	})
	if err != nil {
		logger.Fatalf("failed to create limiter: %v", err)
	}

	handler := router.New(router.Deps{
		Logger:     logger,
		Limiter:    limiter,
		RateLimit:  httpMiddleware.RateLimiterOptions{AddHeaders: cfg.RateLimiter.AddHeaders},
		TrustProxy: cfg.Server.TrustProxy,
		BodyLimit:  cfg.Server.BodyLimitBytes,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatalf("failed to listen on %s: %v", srv.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if err != nil {
			errCh <- err
		}
	}()

	logger.Infof("Le serveur est lancé sur le port %s", cfg.Server.Port)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server error: %v", err)
			return
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func initStorage(cfg config.StorageConfig, logger logrus.FieldLogger) (ports.Storage, func(), error) {
	switch cfg.Type {
	case "memory":
		return memorystorage.New(), func() {}, nil
	case "redis":
		redisCfg := redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		storage, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				logger.Errorf("failed to close redis storage: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
