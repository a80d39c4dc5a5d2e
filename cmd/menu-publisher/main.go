package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"menuboard/internal/config"
	"menuboard/internal/db"
	"menuboard/internal/logging"
	"menuboard/internal/menu"
	"menuboard/internal/metrics"
	"menuboard/internal/publisher"
	"menuboard/internal/schedule"
	"menuboard/internal/storage"
	"menuboard/internal/venue"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.ValidatePublisher(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.ConnectPostgres(ctx, db.Options{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pool.Close()

	r2, err := storage.NewR2Client(ctx, storage.R2Options{
		Endpoint:      cfg.R2.Endpoint,
		AccessKey:     cfg.R2.AccessKey,
		SecretKey:     cfg.R2.SecretKey,
		Bucket:        cfg.R2.Bucket,
		PublicBaseURL: cfg.R2.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("r2 init failed")
	}

	m := metrics.New("menuboard", prometheus.DefaultRegisterer)
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, prometheus.DefaultGatherer, log); err != nil {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	clock := schedule.SystemClock{}

	venueService := venue.NewService(venue.NewPostgresRepository(pool))
	menuService := menu.NewService(
		menu.NewPostgresRepository(pool),
		venueService,
		menu.NopCache{},
		m,
		clock,
		log,
	)

	p := publisher.New(venueService, menuService, r2, clock, m, log)
	if err := p.Run(ctx, cfg.Publisher.Interval); err != nil {
		log.Fatal().Err(err).Msg("publisher exited")
	}
}
