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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/quantedu/fundboard/internal/config"
	"github.com/quantedu/fundboard/internal/dashboard"
	"github.com/quantedu/fundboard/pkg/auth"
	"github.com/quantedu/fundboard/pkg/cache"
	"github.com/quantedu/fundboard/pkg/logging"
	"github.com/quantedu/fundboard/pkg/provider"
	"github.com/quantedu/fundboard/pkg/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
		File:   cfg.Logging.File,
	})

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}
	defer st.Close()

	var cacheStore cache.Store
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid Redis URL")
		}
		rdb := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		cacheStore = cache.NewRedisStore(rdb)
		logger.Info().Str("addr", opts.Addr).Msg("Redis cache connected")
	} else {
		cacheStore = cache.NewMemoryStore()
		logger.Info().Msg("Using in-process cache")
	}

	gateway, err := provider.New(provider.Config{
		BaseURL:   cfg.Provider.BaseURL,
		APIKey:    cfg.Provider.APIKey,
		Timeout:   cfg.Provider.Timeout,
		RateLimit: rate.Limit(cfg.Provider.RateLimit),
		Burst:     cfg.Provider.Burst,
		Store:     cacheStore,
		Policy: cache.Policy{
			Quote:   cfg.Cache.QuoteTTL,
			Topic:   cfg.Cache.TopicTTL,
			Static:  cfg.Cache.StaticTTL,
			Default: cfg.Cache.DefaultTTL,
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create gateway client")
	}

	am, err := auth.New(st, cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create auth manager")
	}

	if cfg.Auth.SeedDemo {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := am.EnsureDemoAccount(seedCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to seed demo account")
		}
		cancel()
	}

	dash, err := dashboard.New(gateway, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create dashboard service")
	}

	app, err := newServer(cfg, logger, st, am, gateway, dash)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to assemble server")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session janitor: expired rows are harmless but pile up.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := st.DeleteExpiredSessions(context.Background())
				if err != nil {
					logger.Warn().Err(err).Msg("Failed to remove expired sessions")
					continue
				}
				if n > 0 {
					logger.Debug().Int64("sessions", n).Msg("Expired sessions removed")
				}
			}
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown incomplete")
	}
}
