package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/storefront/internal/app"
	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/auth"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/linemk/storefront/internal/lib/logger/handlers/urllog"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env), slog.String("auth_mode", cfg.Auth.Mode))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// repositories per entity
	userRepo := storage.NewUserRepository(application.DB)
	collectionRepo := storage.NewCollectionRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	paymentRepo := storage.NewPaymentRepository(application.DB)
	reviewRepo := storage.NewReviewRepository(application.DB)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute)

	authService := service.NewAuthService(log, userRepo, tokens)
	userService := service.NewUserService(log, userRepo)
	collectionService := service.NewCollectionService(log, collectionRepo)
	productService := service.NewProductService(log, productRepo)
	cartService := service.NewCartService(log, cartRepo, productRepo)
	orderService := service.NewOrderService(log, application.DB, userRepo, cartRepo, orderRepo, paymentRepo)
	paymentService := service.NewPaymentService(log, application.DB, orderRepo, paymentRepo)
	reviewService := service.NewReviewService(log, reviewRepo)

	// the authenticator runs before handler dispatch on every protected route
	var authenticator auth.Authenticator
	switch cfg.Auth.Mode {
	case config.AuthModeSharedSecret:
		authenticator = auth.NewSharedSecretAuthenticator(cfg.Auth.APIKeyHeader, cfg.Auth.APIKey)
	default:
		authenticator = auth.NewJWTAuthenticator(tokens)
	}

	// open endpoints: login and registration
	router.Post("/api/auth", handlers.AuthHandler(log, authService))
	router.Post("/api/users", handlers.CreateUserHandler(log, userService))

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authenticator))

		r.Get("/api/users", handlers.ListUsersHandler(log, userService))
		r.Get("/api/users/{id}", handlers.GetUserHandler(log, userService))
		r.Put("/api/users/{id}", handlers.UpdateUserHandler(log, userService))
		r.Delete("/api/users/{id}", handlers.DeleteUserHandler(log, userService))

		r.Post("/api/collections", handlers.CreateCollectionHandler(log, collectionService))
		r.Get("/api/collections", handlers.ListCollectionsHandler(log, collectionService))
		r.Get("/api/collections/{id}", handlers.GetCollectionHandler(log, collectionService))
		r.Put("/api/collections/{id}", handlers.UpdateCollectionHandler(log, collectionService))
		r.Delete("/api/collections/{id}", handlers.DeleteCollectionHandler(log, collectionService))

		r.Post("/api/products", handlers.CreateProductHandler(log, productService))
		r.Get("/api/products", handlers.ListProductsHandler(log, productService))
		r.Get("/api/products/{id}", handlers.GetProductHandler(log, productService))
		r.Put("/api/products/{id}", handlers.UpdateProductHandler(log, productService))
		r.Delete("/api/products/{id}", handlers.DeleteProductHandler(log, productService))

		r.Post("/api/products/{productID}/reviews", handlers.CreateReviewHandler(log, reviewService))
		r.Get("/api/products/{productID}/reviews", handlers.ListReviewsHandler(log, reviewService))
		r.Get("/api/products/{productID}/reviews/{id}", handlers.GetReviewHandler(log, reviewService))
		r.Put("/api/products/{productID}/reviews/{id}", handlers.UpdateReviewHandler(log, reviewService))
		r.Delete("/api/products/{productID}/reviews/{id}", handlers.DeleteReviewHandler(log, reviewService))

		r.Post("/api/carts", handlers.CreateCartHandler(log, cartService))
		r.Get("/api/carts/{id}", handlers.GetCartHandler(log, cartService))
		r.Delete("/api/carts/{id}", handlers.DeleteCartHandler(log, cartService))
		r.Post("/api/carts/{id}/items", handlers.AddCartItemHandler(log, cartService))
		r.Patch("/api/carts/{id}/items/{itemID}", handlers.UpdateCartItemHandler(log, cartService))
		r.Delete("/api/carts/{id}/items/{itemID}", handlers.DeleteCartItemHandler(log, cartService))

		r.Post("/api/orders", handlers.CreateOrderHandler(log, orderService))
		r.Get("/api/orders", handlers.ListOrdersHandler(log, orderService))
		r.Get("/api/orders/{id}", handlers.GetOrderHandler(log, orderService))
		r.Patch("/api/orders/{id}", handlers.UpdateOrderHandler(log, orderService))
		r.Delete("/api/orders/{id}", handlers.DeleteOrderHandler(log, orderService))

		r.Post("/api/payments", handlers.CreatePaymentHandler(log, paymentService))
		r.Get("/api/payments", handlers.ListPaymentsHandler(log, paymentService))
		r.Get("/api/payments/{id}", handlers.GetPaymentHandler(log, paymentService))
		r.Patch("/api/payments/{id}", handlers.UpdatePaymentHandler(log, paymentService))
		r.Delete("/api/payments/{id}", handlers.DeletePaymentHandler(log, paymentService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
