package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"paygate/internal/cache"
	"paygate/internal/config"
	httpx "paygate/internal/http"
	"paygate/internal/przelewy24"
	"paygate/internal/services/checkout"
	"paygate/internal/services/notify"
	"paygate/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	repo := postgres.NewRepo(pool)

	// Redis cache (methods listing + callback dedup)
	rc := cache.New(cfg.Redis.Addr)
	defer rc.Close()

	// Gateway client
	gateway := przelewy24.New(przelewy24.Config{
		MerchantID: cfg.P24.MerchantID,
		PosID:      cfg.P24.PosID,
		APIKey:     cfg.P24.APIKey,
		CRCKey:     cfg.P24.CRCKey,
		Sandbox:    cfg.P24.Sandbox,
	})
	if ok, err := gateway.TestAccess(ctx); err != nil || !ok {
		log.Warn().Err(err).Msg("gateway access check failed; continuing anyway")
	}

	checkoutSvc := checkout.New(
		gateway,
		repo,
		cfg.App.BaseURL+"/return",
		cfg.App.BaseURL+"/webhooks/p24/status",
	)

	// Settlement worker
	processor := notify.NewProcessor(gateway, repo, repo)
	worker := notify.NewWorker(repo, processor, 0, 0)
	go worker.Run(ctx)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:        cfg,
		Checkout:      checkoutSvc,
		Payments:      repo,
		Gateway:       gateway,
		Verifier:      gateway,
		Dedup:         rc,
		Notifications: repo,
		MethodsCache:  rc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("paygate API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
