package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanamaged/electro-backend/api/controllers"
	"github.com/hanamaged/electro-backend/api/middleware"
	"github.com/hanamaged/electro-backend/internal/account"
	"github.com/hanamaged/electro-backend/internal/cart"
	checkoutsvc "github.com/hanamaged/electro-backend/internal/checkout"
	"github.com/hanamaged/electro-backend/internal/categories"
	"github.com/hanamaged/electro-backend/internal/favorites"
	"github.com/hanamaged/electro-backend/internal/notifications"
	"github.com/hanamaged/electro-backend/internal/orders"
	"github.com/hanamaged/electro-backend/internal/portfolio"
	"github.com/hanamaged/electro-backend/internal/products"
	"github.com/hanamaged/electro-backend/pkg/auth/session"
	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/db"
	"github.com/hanamaged/electro-backend/pkg/enums"
	"github.com/hanamaged/electro-backend/pkg/logger"
	"github.com/hanamaged/electro-backend/pkg/metrics"
	"github.com/hanamaged/electro-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	SessionManager sessionManager

	AccountService      account.Service
	CategoryService     categories.Service
	ProductService      products.Service
	CartService         cart.Service
	CheckoutService     checkoutsvc.Service
	OrderService        orders.Service
	FavoritesService    favorites.Service
	NotificationService notifications.Service
	PortfolioService    portfolio.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(deps.AccountService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AccountService, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(deps.AccountService, logg))
		r.Post("/verify-otp", controllers.AuthVerifyOTP(deps.AccountService, logg))
		r.Put("/reset-password", controllers.AuthResetPassword(deps.AccountService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	// Public catalog reads.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(deps.CategoryService, logg))
		r.Get("/categories/{categoryID}", controllers.GetCategory(deps.CategoryService, logg))
		r.Get("/products", controllers.ListProducts(deps.ProductService, logg))
		r.Get("/products/{productID}", controllers.GetProduct(deps.ProductService, logg))
		r.Get("/portfolio", controllers.ListPortfolio(deps.PortfolioService, logg))
		r.Get("/portfolio/{itemID}", controllers.GetPortfolioItem(deps.PortfolioService, logg))
	})

	// Authenticated surface.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.AccountMe(deps.AccountService, logg))
			r.Put("/", controllers.AccountUpdateProfile(deps.AccountService, logg))
			r.Put("/password", controllers.AccountChangePassword(deps.AccountService, logg))
			r.Delete("/", controllers.AccountDelete(deps.AccountService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartService, logg))
			r.Post("/items", controllers.AddCartItem(deps.CartService, logg))
			r.Put("/items/{itemID}", controllers.UpdateCartItem(deps.CartService, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.CartService, logg))
			r.Delete("/", controllers.ClearCart(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrderService, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.OrderService, logg))
			r.Post("/{orderID}/cancel", controllers.CancelOrder(deps.OrderService, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.ListFavorites(deps.FavoritesService, logg))
			r.Post("/{productID}", controllers.AddFavorite(deps.FavoritesService, logg))
			r.Delete("/{productID}", controllers.RemoveFavorite(deps.FavoritesService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.NotificationService, logg))
			r.Put("/{notificationID}/read", controllers.MarkNotificationRead(deps.NotificationService, logg))
			r.Put("/read-all", controllers.MarkAllNotificationsRead(deps.NotificationService, logg))
		})
	})

	// Admin surface.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole(logg, string(enums.UserRoleAdmin)))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(deps.AccountService, logg))
			r.Put("/{userID}/status", controllers.AdminUpdateUserStatus(deps.AccountService, logg))
			r.Delete("/{userID}", controllers.AdminDeleteUser(deps.AccountService, logg))
			r.Post("/upgrade", controllers.AdminUpgradeRole(deps.AccountService, logg))
			r.Post("/admins", controllers.AdminCreateAdmin(deps.AccountService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(deps.CategoryService, logg))
			r.Put("/{categoryID}", controllers.AdminUpdateCategory(deps.CategoryService, logg))
			r.Delete("/{categoryID}", controllers.AdminDeleteCategory(deps.CategoryService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.ProductService, logg))
			r.Put("/{productID}", controllers.AdminUpdateProduct(deps.ProductService, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.ProductService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.OrderService, logg))
			r.Get("/{orderID}", controllers.AdminGetOrder(deps.OrderService, logg))
			r.Put("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.OrderService, logg))
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/", controllers.AdminCreatePortfolioItem(deps.PortfolioService, logg))
			r.Put("/{itemID}", controllers.AdminUpdatePortfolioItem(deps.PortfolioService, logg))
			r.Delete("/{itemID}", controllers.AdminDeletePortfolioItem(deps.PortfolioService, logg))
		})
	})

	return r
}
