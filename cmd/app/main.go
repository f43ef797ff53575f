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

	"knowl/clients"
	"knowl/config"
	"knowl/handlers"
	"knowl/repository"
	"knowl/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfigOrPanic()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	repoImpl, err := repository.NewMemoryRepository(cfg.TokenCacheSize)
	if err != nil {
		logger.Fatal("failed to create repository", zap.Error(err))
	}
	if cfg.SeedSampleTokens {
		for _, t := range repository.DefaultTokens() {
			if err := repoImpl.UpsertToken(context.Background(), t); err != nil {
				logger.Fatal("failed to seed token", zap.Int("token_id", t.ID), zap.Error(err))
			}
		}
	}

	if cfg.MarketAPIKey == "" {
		logger.Warn("MARKET_API_KEY not set, token data is served from cache only")
	}
	if cfg.ChatAPIKey == "" {
		logger.Warn("CHAT_API_KEY not set, chat requests will fail")
	}
	market := clients.NewMarketClient(cfg.MarketAPIURL, cfg.MarketAPIKey, cfg.MarketTimeout)
	chat := clients.NewChatClient(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, cfg.ChatTimeout)

	svc := service.NewService(repoImpl, market, chat, service.Options{
		JWTSecret:        cfg.JWTSecret,
		ChallengeTTL:     cfg.ChallengeTTL,
		ListingLimit:     cfg.ListingLimit,
		SearchLimit:      cfg.SearchLimit,
		SearchFetchLimit: cfg.SearchFetchLimit,
	}, logger)

	h := handlers.NewHandler(svc, logger, handlers.Options{RequireSignature: cfg.RequireSignature})
	limiter := handlers.NewRateLimiter(cfg.ChatRatePerSec, cfg.ChatBurst, logger)
	r := handlers.NewRouter(h, limiter, logger)

	srv := http.Server{
		Handler:      r,
		Addr:         ":" + cfg.ServerPort,
		WriteTimeout: cfg.ChatTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
