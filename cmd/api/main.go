package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanamaged/electro-backend/api/routes"
	"github.com/hanamaged/electro-backend/internal/account"
	"github.com/hanamaged/electro-backend/internal/cart"
	"github.com/hanamaged/electro-backend/internal/categories"
	"github.com/hanamaged/electro-backend/internal/checkout"
	"github.com/hanamaged/electro-backend/internal/favorites"
	"github.com/hanamaged/electro-backend/internal/notifications"
	"github.com/hanamaged/electro-backend/internal/orders"
	"github.com/hanamaged/electro-backend/internal/otp"
	"github.com/hanamaged/electro-backend/internal/portfolio"
	"github.com/hanamaged/electro-backend/internal/products"
	"github.com/hanamaged/electro-backend/internal/users"
	"github.com/hanamaged/electro-backend/pkg/auth/session"
	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/db"
	"github.com/hanamaged/electro-backend/pkg/logger"
	"github.com/hanamaged/electro-backend/pkg/mail"
	"github.com/hanamaged/electro-backend/pkg/metrics"
	"github.com/hanamaged/electro-backend/pkg/migrate"
	"github.com/hanamaged/electro-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	otpService, err := otp.NewServiceFromClient(redisClient, cfg.OTP)
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	mailSender, err := mail.NewSMTPSender(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail sender", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	categoryRepo := categories.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	favoritesRepo := favorites.NewRepository(gormDB)
	notificationRepo := notifications.NewRepository(gormDB)
	portfolioRepo := portfolio.NewRepository(gormDB)

	accountService, err := account.NewService(account.ServiceParams{
		UserRepo:       userRepo,
		OTPService:     otpService,
		MailSender:     mailSender,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.ServiceParams{Repo: categoryRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		Repo:       productRepo,
		Categories: categoryRepo,
		Favorites:  favoritesRepo,
		Cart:       cartRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Repo:        cartRepo,
		ProductRepo: productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Repo:        favoritesRepo,
		ProductRepo: productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notifications.ServiceParams{Repo: notificationRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orderRepo,
		Notifier: notificationService,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		DB:          dbClient,
		CartRepo:    cartRepo,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	portfolioService, err := portfolio.NewService(portfolio.ServiceParams{Repo: portfolioRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create portfolio service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			HTTPMetrics:    httpMetrics,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			SessionManager: sessionManager,

			AccountService:      accountService,
			CategoryService:     categoryService,
			ProductService:      productService,
			CartService:         cartService,
			CheckoutService:     checkoutService,
			OrderService:        orderService,
			FavoritesService:    favoritesService,
			NotificationService: notificationService,
			PortfolioService:    portfolioService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
