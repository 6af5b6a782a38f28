package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tcsurf/surfstore/configs"
	appCheckout "github.com/tcsurf/surfstore/internal/application/checkout"
	appStorefront "github.com/tcsurf/surfstore/internal/application/storefront"
	appTracking "github.com/tcsurf/surfstore/internal/application/tracking"
	"github.com/tcsurf/surfstore/internal/infrastructure/id"
	"github.com/tcsurf/surfstore/internal/infrastructure/memory"
	"github.com/tcsurf/surfstore/internal/infrastructure/observability/oteltrace"
	"github.com/tcsurf/surfstore/internal/infrastructure/observability/prometrics"
	"github.com/tcsurf/surfstore/internal/infrastructure/observability/telemetry"
	"github.com/tcsurf/surfstore/internal/infrastructure/observability/zaplogger"
	"github.com/tcsurf/surfstore/internal/infrastructure/outbox"
	"github.com/tcsurf/surfstore/internal/observability"
	httppresentation "github.com/tcsurf/surfstore/internal/presentation/http"
	"github.com/tcsurf/surfstore/internal/seed"
)

func main() {
	cfg, err := configs.Load(getenvDefault("CONFIG_PATH", "config.yaml"))
	if err != nil {
		panic(err)
	}

	baseLogger := zaplogger.New(
		observability.F("service", cfg.App.Name),
		observability.F("env", cfg.App.Env),
	)
	defer func() {
		if s, ok := baseLogger.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
	}()

	// Metric instruments, registered once and shared through the telemetry facade.
	metrics := prometrics.New("", "")
	counters := map[string]observability.Counter{
		observability.MHTTPRequests: metrics.Counter(observability.MHTTPRequests,
			"Total number of HTTP requests.", "method", "route", "status"),
		observability.MUsecaseRequests: metrics.Counter(observability.MUsecaseRequests,
			"Total number of use case invocations.", "use_case", "outcome"),
		observability.MCheckoutLineSkips: metrics.Counter(observability.MCheckoutLineSkips,
			"Cart lines skipped during checkout.", "reason"),
	}
	histograms := map[string]observability.Histogram{
		observability.MHTTPRequestDuration: metrics.Histogram(observability.MHTTPRequestDuration,
			"Duration of HTTP requests in seconds.", prometheus.DefBuckets, "method", "route", "status"),
		observability.MUsecaseDuration: metrics.Histogram(observability.MUsecaseDuration,
			"Duration of use case execution in seconds.", prometheus.DefBuckets, "use_case"),
	}
	tel := telemetry.New(oteltrace.New(cfg.App.Name), baseLogger, counters, histograms)

	// In-memory event bus (acts as outbox/event publisher for demo)
	bus := outbox.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	catalogStore := memory.NewCatalogStore()
	customerRepo := memory.NewCustomerRepository()
	orderRepo := memory.NewOrderRepository()
	paymentRepo := memory.NewPaymentRepository()
	deliveryRepo := memory.NewDeliveryRepository()

	if cfg.Store.Seed {
		if err := seed.Load(context.Background(), catalogStore, customerRepo); err != nil {
			panic(err)
		}
	}

	carts := appStorefront.NewCarts()
	storefrontService := appStorefront.NewService(catalogStore, customerRepo, carts, cfg.Store.LowStockThreshold, baseLogger)
	checkoutService := appCheckout.NewService(
		catalogStore, carts, customerRepo, orderRepo, paymentRepo, deliveryRepo,
		id.NewUUIDGenerator(), id.NewSequence(), bus,
		appCheckout.Config{
			StrictAvailability: cfg.Store.StrictAvailability,
			StrictTransitions:  cfg.Store.StrictTransitions,
		},
		tel,
	)

	trackingService := appTracking.NewService()
	trackingWorker := appTracking.NewWorker(bus, trackingService, baseLogger)
	trackingWorker.Start()

	handler := httppresentation.NewHandler(storefrontService, checkoutService, trackingService, baseLogger, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error",
				observability.F("error", err.Error()),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error",
			observability.F("error", err.Error()),
		)
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
