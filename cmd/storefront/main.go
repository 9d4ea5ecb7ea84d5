package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/UTarts/RASRAJ-themithaishop/configs"
	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/checkout"
	"github.com/UTarts/RASRAJ-themithaishop/internal/events"
	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	h "github.com/UTarts/RASRAJ-themithaishop/internal/http"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding base.yaml and <env>.yaml")
	envName := flag.String("env", os.Getenv("APP_ENV"), "config overlay to load (dev, prod)")
	flag.Parse()

	// The shop backend, the browser and the event consumers all expect
	// amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := configs.Load(*configDir, *envName)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.Init(cfg.LoggerOptions())
	defer lg.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		lg.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	shop := backend.New(cfg.BackendOptions(), lg)
	catalog := i18n.MustLoad()

	sessions := session.NewManager(session.Deps{
		Store:       store,
		Backend:     shop,
		Pricing:     pricing.NewCalculator(cfg.PricingConfig()),
		Catalog:     catalog,
		IdleTimeout: cfg.Session.IdleTimeout,
	})
	go sessions.Run(ctx, cfg.Session.SweepEvery)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Events.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Events.Timeout, cfg.Events.Brokers...)
		lg.Info("publishing order events", zap.Strings("brokers", cfg.Events.Brokers))
	}
	defer publisher.Close()

	router := h.NewRouter(h.RouterConfig{
		Sessions: sessions,
		Cookie: h.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		Shop:           shop,
		Checkout:       checkout.NewService(shop, publisher),
		Gateway:        payment.NewGateway(shop),
		Catalog:        catalog,
		RequestTimeout: cfg.Backend.Timeout,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		lg.Info("storefront starting", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	lg.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
		return
	}

	lg.Info("server exited")
}
