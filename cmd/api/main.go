package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/api/controllers"
	"github.com/angelmondragon/shopdash/api/routes"
	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/auth"
	"github.com/angelmondragon/shopdash/internal/customers"
	"github.com/angelmondragon/shopdash/internal/deliveries"
	"github.com/angelmondragon/shopdash/internal/gst"
	"github.com/angelmondragon/shopdash/internal/inventory"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/internal/products"
	"github.com/angelmondragon/shopdash/internal/search"
	"github.com/angelmondragon/shopdash/internal/session"
	"github.com/angelmondragon/shopdash/internal/shops"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/config"
	"github.com/angelmondragon/shopdash/pkg/db"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/metrics"
	"github.com/angelmondragon/shopdash/pkg/migrate"
	"github.com/angelmondragon/shopdash/pkg/redis"
	"github.com/angelmondragon/shopdash/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "shopdash"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "shopdash",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	store, err := openStore(ctx, cfg, logg, redisClient)
	requireResource(ctx, logg, "session store", err)
	defer func() {
		if cfg.Session.Store == config.StoreRedis {
			// the redis client is closed above
			return
		}
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing session store", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	state := session.New(store, session.Options{Logger: logg, SyncShop: cfg.Session.SyncShop})

	client, err := apiclient.New(cfg.Backend.BaseURL,
		apiclient.WithCredentials(state),
		apiclient.WithSessionClearer(state),
		apiclient.WithMetrics(metrics.NewAPIClientMetrics(registry)),
		apiclient.WithLogger(logg),
		apiclient.WithTimeout(cfg.Backend.Timeout),
	)
	requireResource(ctx, logg, "backend client", err)

	var (
		authSvc      = auth.NewService(client)
		shopSvc      = shops.NewService(client)
		productSvc   = products.NewService(client)
		inventorySvc = inventory.NewService(client)
		orderSvc     = orders.NewService(client)
		customerSvc  = customers.NewService(client)
		deliverySvc  = deliveries.NewService(client)
		reportSvc    = gst.NewService(client)
		aiSvc        = ai.NewService(client)
	)

	requireResource(ctx, logg, "session", state.Init(ctx, shopSvc))

	watcher, err := deliveries.NewWatcher(deliveries.WatcherParams{
		Logger:   logg,
		Lister:   deliverySvc,
		Scope:    state,
		Metrics:  metrics.NewWatcherMetrics(registry),
		Interval: cfg.Watcher.Interval,
	})
	requireResource(ctx, logg, "delivery watcher", err)

	global := search.NewGlobal(search.GlobalParams{
		Orders:    orderSvc,
		Customers: customerSvc,
		Products:  productSvc,
		ShopID:    state.ShopID,
	})
	searcher := search.NewSearcher(global.Search, cfg.Search.Debounce)
	defer searcher.Close()

	p := routes.Pages{
		Session: state,
		Auth:    pages.NewAuth(authSvc, state),
		Dashboard: pages.NewDashboard(pages.DashboardParams{
			Orders:     orderSvc,
			Products:   productSvc,
			Inventory:  inventorySvc,
			Deliveries: deliverySvc,
			AI:         aiSvc,
			Logger:     logg,
		}),
		Orders:    pages.NewOrders(orderSvc, productSvc, aiSvc),
		Inventory: pages.NewInventory(productSvc, inventorySvc, aiSvc),
		GST: pages.NewGST(pages.GSTParams{
			Reports:  reportSvc,
			Orders:   orderSvc,
			Products: productSvc,
			AI:       aiSvc,
		}),
		Customers: pages.NewCustomers(customerSvc),
		Delivery: pages.NewDelivery(pages.DeliveryParams{
			Deliveries: deliverySvc,
			Orders:     orderSvc,
			AI:         aiSvc,
			Observer:   watcher,
		}),
		Partner:    pages.NewPartner(pages.PartnerParams{Deliveries: deliverySvc, JWT: cfg.PartnerJWT}),
		Storefront: pages.NewStorefront(shopSvc, productSvc, orderSvc),
		Settings:   pages.NewSettings(shopSvc, state),
		Search:     searcher,
		Ready:      map[string]controllers.Pinger{"session_store": state},
		Gatherer:   registry,
	}
	if redisClient != nil {
		p.Limiter = redisClient
		p.Ready["redis"] = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"backend":       client.BaseURL(),
		"session_store": cfg.Session.Store,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, p),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(groupCtx, "starting dashboard server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		if err := watcher.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("delivery watcher: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "dashboard server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "dashboard server stopped")
}

// openStore picks the session persistence backend. SQL stores are migrated
// before use.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) (storage.Store, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis store selected without a redis client")
		}
		return storage.NewRedisStore(redisClient), nil
	case config.StoreSQLite, config.StorePostgres:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.Apply(ctx, logg, dbClient); err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		return storage.NewSQLStore(dbClient), nil
	default:
		return storage.NewMemoryStore(), nil
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
