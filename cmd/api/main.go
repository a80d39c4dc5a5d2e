package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuboard/internal/auth"
	"menuboard/internal/config"
	"menuboard/internal/db"
	"menuboard/internal/logging"
	"menuboard/internal/menu"
	"menuboard/internal/metrics"
	"menuboard/internal/router"
	"menuboard/internal/schedule"
	"menuboard/internal/venue"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.ConnectPostgres(ctx, db.Options{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pool.Close()

	// ───────────────────────── CACHE ─────────────────────────
	var cache menu.Cache = menu.NopCache{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, menu cache disabled")
		} else {
			cache = menu.NewRedisCache(rdb, cfg.Redis.MenuTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("menu cache enabled")
		}
	}

	// ───────────────────────── SERVICES ─────────────────────────
	m := metrics.New("menuboard", prometheus.DefaultRegisterer)

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := auth.NewService(auth.NewPostgresUserRepository(pool), tokens)
	venueService := venue.NewService(venue.NewPostgresRepository(pool))
	menuService := menu.NewService(
		menu.NewPostgresRepository(pool),
		venueService,
		cache,
		m,
		schedule.SystemClock{},
		log,
	)

	r := router.NewRouter(router.Deps{
		Auth:           authService,
		Tokens:         tokens,
		Venues:         venueService,
		Menus:          menuService,
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PublicRPS:      cfg.Server.PublicRPS,
		PublicBurst:    cfg.Server.PublicBurst,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
