package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/cartstore"
	"marketplace-companion/internal/catalog"
	"marketplace-companion/internal/config"
	fundingclient "marketplace-companion/internal/funding"
	"marketplace-companion/internal/httpserver"
	"marketplace-companion/internal/migrate"
	"marketplace-companion/internal/orders"
	cartsvc "marketplace-companion/internal/service/cart"
	fundingsvc "marketplace-companion/internal/service/funding"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "companion").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	var store cartstore.Store
	switch cfg.CartStoreDriver {
	case "sqlite":
		db, err := cartstore.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("open local database")
		}
		defer db.Close()
		if err := migrate.Apply(db); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		store = cartstore.NewSQLite(db, logger)
	default:
		store = cartstore.NewFile(cfg.CartStorePath, logger)
	}

	catalogClient := catalog.NewHTTP(cfg.CatalogBaseURL, cfg.RequestTimeout, logger)
	ordersClient := orders.NewHTTP(cfg.OrdersBaseURL, cfg.RequestTimeout, logger)
	fundingClient := fundingclient.NewHTTP(cfg.FundingBaseURL, cfg.RequestTimeout, logger)

	cartService := cartsvc.New(store, catalogClient, ordersClient, logger)
	fundingService := fundingsvc.New(fundingClient, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CartSvc:    cartService,
		FundingSvc: fundingService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}
