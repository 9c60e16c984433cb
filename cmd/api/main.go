package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumierebeauty/lumiere-backend/api"
	"github.com/lumierebeauty/lumiere-backend/api/routes"
	internalAuth "github.com/lumierebeauty/lumiere-backend/internal/auth"
	"github.com/lumierebeauty/lumiere-backend/internal/customers"
	"github.com/lumierebeauty/lumiere-backend/internal/franchise"
	"github.com/lumierebeauty/lumiere-backend/internal/giftsets"
	"github.com/lumierebeauty/lumiere-backend/internal/orders"
	"github.com/lumierebeauty/lumiere-backend/internal/products"
	"github.com/lumierebeauty/lumiere-backend/internal/settings"
	"github.com/lumierebeauty/lumiere-backend/internal/users"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/lumierebeauty/lumiere-backend/pkg/metrics"
	"github.com/lumierebeauty/lumiere-backend/pkg/migrate"
	"github.com/lumierebeauty/lumiere-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "lumiere-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api exited with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	database, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, database); err != nil {
		return err
	}

	// The schema gate replaces per-request missing-table tolerance: the
	// process refuses to serve against an unprovisioned database.
	if err := db.CheckProvisioned(ctx, database.DB()); err != nil {
		return err
	}

	var cache *redis.Client
	if cfg.Redis.Enabled() {
		cache, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer cache.Close()
		logg.Info(ctx, "redis connection established")
	} else {
		logg.Info(ctx, "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	conn := database.DB()

	customersSvc, err := customers.NewService(customers.ServiceParams{
		Repo:   customers.NewRepo(conn),
		Logger: logg,
	})
	if err != nil {
		return err
	}

	productsSvc, err := products.NewService(products.ServiceParams{
		Repo:   products.NewRepo(conn),
		Logger: logg,
	})
	if err != nil {
		return err
	}

	giftSetsSvc, err := giftsets.NewService(giftsets.ServiceParams{
		Repo:   giftsets.NewRepo(conn),
		Logger: logg,
	})
	if err != nil {
		return err
	}

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:      orders.NewRepo(conn),
		Customers: customersSvc,
		Logger:    logg,
	})
	if err != nil {
		return err
	}

	franchiseSvc, err := franchise.NewService(franchise.ServiceParams{
		Repo:   franchise.NewRepo(conn),
		Logger: logg,
	})
	if err != nil {
		return err
	}

	settingsSvc, err := settings.NewService(settings.ServiceParams{
		Repo:   settings.NewRepo(conn),
		Logger: logg,
	})
	if err != nil {
		return err
	}

	authSvc, err := internalAuth.NewService(internalAuth.ServiceParams{
		Users:    users.NewRepo(conn),
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Admin:    cfg.Admin,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	router := routes.New(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             database,
		Redis:          cache,
		Metrics:        httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Auth:           authSvc,
		Products:       productsSvc,
		GiftSets:       giftSetsSvc,
		Customers:      customersSvc,
		Orders:         ordersSvc,
		Franchise:      franchiseSvc,
		Settings:       settingsSvc,
	})

	server := api.NewServer(cfg.App.Port, router, logg)
	return server.Run(ctx)
}
