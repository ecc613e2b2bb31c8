package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopdash/api/controllers"
	"github.com/angelmondragon/shopdash/api/middleware"
	"github.com/angelmondragon/shopdash/pkg/config"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// Pages bundles the view handlers the router serves. Every field is
// required except Limiter, which disables partner login throttling when nil,
// and Gatherer, which defaults to the global prometheus registry.
type Pages struct {
	Session    middleware.SessionReader
	Auth       controllers.AuthPage
	Dashboard  controllers.DashboardPage
	Orders     controllers.OrdersPage
	Inventory  controllers.InventoryPage
	GST        controllers.GSTPage
	Customers  controllers.CustomersPage
	Delivery   controllers.DeliveryPage
	Partner    controllers.PartnerPage
	Storefront controllers.StorefrontPage
	Settings   controllers.SettingsPage
	Search     controllers.SearchBox

	Ready    map[string]controllers.Pinger
	Limiter  middleware.RateLimiter
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, p Pages) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	partnerLoginPolicy := middleware.NewLoginRateLimitPolicy(
		"partner_login",
		cfg.RateLimit.PartnerLoginWindow,
		cfg.RateLimit.PartnerLoginIPLimit,
		cfg.RateLimit.PartnerLoginPhoneLimit,
	)

	gatherer := p.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Ready))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(p.Auth, logg))
			r.Post("/register", controllers.AuthRegister(p.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(p.Auth, logg))
			r.Get("/session", controllers.AuthSession(p.Auth))
		})

		r.Route("/storefront/{shopId}", func(r chi.Router) {
			r.Get("/", controllers.StorefrontView(p.Storefront, logg))
			r.Post("/quote", controllers.StorefrontQuote(p.Storefront, logg))
			r.Post("/checkout", controllers.StorefrontCheckout(p.Storefront, logg))
		})

		r.Route("/partner", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(partnerLoginPolicy, p.Limiter, logg)).
				Post("/login", controllers.PartnerLogin(p.Partner, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.PartnerAuth(cfg.PartnerJWT, logg))
				r.Get("/routes", controllers.PartnerRoutes(p.Partner, logg))
				r.Patch("/routes/{batchId}/pickup", controllers.PartnerPickup(p.Partner, logg))
				r.Patch("/routes/{batchId}/stops/{seq}", controllers.PartnerMarkStop(p.Partner, logg))
				r.Patch("/routes/{batchId}/deliver", controllers.PartnerDeliver(p.Partner, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(p.Session, logg))

			r.Get("/dashboard", controllers.Dashboard(p.Dashboard, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(p.Orders, logg))
				r.Post("/", controllers.OrderCreate(p.Orders, logg))
				r.Post("/parse", controllers.OrderParse(p.Orders, logg))
				r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(p.Orders, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(p.Inventory, logg))
				r.Get("/insights", controllers.InventoryInsights(p.Inventory, logg))
				r.Post("/products", controllers.InventoryCreateProduct(p.Inventory, logg))
				r.Patch("/{inventoryId}", controllers.InventoryUpdate(p.Inventory, logg))
				r.Delete("/{inventoryId}", controllers.InventoryDelete(p.Inventory, logg))
			})

			r.Route("/gst", func(r chi.Router) {
				r.Get("/", controllers.GSTOverview(p.GST, logg))
				r.Post("/categorize", controllers.GSTCategorize(p.GST, logg))
				r.Route("/reports", func(r chi.Router) {
					r.Post("/", controllers.GSTGenerate(p.GST, logg))
					r.Patch("/{reportId}/file", controllers.GSTFile(p.GST, logg))
					r.Delete("/{reportId}", controllers.GSTDelete(p.GST, logg))
					r.Get("/{reportId}/export", controllers.GSTExport(p.GST, logg))
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.CustomerList(p.Customers, logg))
				r.Post("/", controllers.CustomerCreate(p.Customers, logg))
				r.Patch("/{customerId}", controllers.CustomerUpdate(p.Customers, logg))
				r.Delete("/{customerId}", controllers.CustomerDelete(p.Customers, logg))
			})

			r.Route("/deliveries", func(r chi.Router) {
				r.Get("/", controllers.DeliveryList(p.Delivery, logg))
				r.Get("/available-orders", controllers.DeliveryAvailableOrders(p.Delivery, logg))
				r.Post("/routes", controllers.DeliveryCreateRoute(p.Delivery, logg))
				r.Post("/optimize", controllers.DeliveryOptimize(p.Delivery, logg))
				r.Patch("/{batchId}/ready", controllers.DeliveryMarkReady(p.Delivery, logg))
				r.Delete("/{batchId}", controllers.DeliveryDelete(p.Delivery, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.SettingsGet(p.Settings, logg))
				r.Patch("/", controllers.SettingsUpdate(p.Settings, logg))
			})

			r.Route("/search", func(r chi.Router) {
				r.Get("/", controllers.SearchLatest(p.Search, logg))
				r.Post("/", controllers.SearchSubmit(p.Search, logg))
			})
		})
	})

	return r
}
