package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/fx"
	"storefront/internal/httpserver"
	"storefront/internal/payment"
	"storefront/internal/pricing"
	cartrepo "storefront/internal/repository/cart"
	categoryrepo "storefront/internal/repository/category"
	checkoutrepo "storefront/internal/repository/checkout"
	couponrepo "storefront/internal/repository/coupon"
	customerrepo "storefront/internal/repository/customer"
	orderrepo "storefront/internal/repository/order"
	pmrepo "storefront/internal/repository/paymentmethod"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	tokenrepo "storefront/internal/repository/token"
	wishlistrepo "storefront/internal/repository/wishlist"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	checkoutsvc "storefront/internal/service/checkout"
	couponsvc "storefront/internal/service/coupon"
	customersvc "storefront/internal/service/customer"
	ordersvc "storefront/internal/service/order"
	pmsvc "storefront/internal/service/paymentmethod"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
	wishlistsvc "storefront/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	policy := pricing.Policy{
		FreeShippingThresholdCents: cfg.FreeShippingThresholdCents,
		ShippingCostCents:          cfg.ShippingCostCents,
		MinChargeCents:             cfg.MinChargeCents,
		BaseCurrency:               cfg.BaseCurrency,
	}

	var rates *fx.Resolver
	if cfg.DisplayCurrency != "" && cfg.DisplayCurrency != cfg.BaseCurrency {
		rate, err := decimal.NewFromString(cfg.FXRate)
		if err != nil {
			logger.Fatalf("parse FX_RATE: %v", err)
		}
		source := fx.StaticSource{Base: cfg.BaseCurrency, Quote: cfg.DisplayCurrency, Value: rate}
		var cache fx.RateCache = fx.NewMemoryCache()
		if cfg.RedisAddr != "" {
			cache = fx.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		}
		rates = fx.NewResolver(source, cache)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	gateway := payment.NewHTTPGateway(cfg.GatewayBaseURL, cfg.GatewaySecret)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	checkoutRepo := checkoutrepo.NewPostgres(dbpool)
	couponRepo := couponrepo.NewPostgres(dbpool)
	paymentMethodRepo := pmrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)

	customerService := customersvc.New(customerRepo, tokenRepo)
	productService := productsvc.New(productRepo)
	categoryService := categorysvc.New(categoryRepo)
	cartService := cartsvc.New(cartRepo, productRepo, cfg.BaseCurrency)
	wishlistService := wishlistsvc.New(wishlistRepo, productRepo)
	couponService := couponsvc.New(couponRepo)
	reviewService := reviewsvc.New(reviewRepo)
	orderService := ordersvc.New(orderRepo, producer, logger)
	paymentMethodService := pmsvc.New(paymentMethodRepo)
	checkoutService := checkoutsvc.New(
		checkoutRepo, cartRepo, orderRepo, couponService, gateway, rates, producer,
		checkoutsvc.Config{Policy: policy, DisplayCurrency: cfg.DisplayCurrency},
		logger,
	)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Customers:      customerService,
		Products:       productService,
		Categories:     categoryService,
		Carts:          cartService,
		Wishlists:      wishlistService,
		Coupons:        couponService,
		Checkout:       checkoutService,
		Orders:         orderService,
		Reviews:        reviewService,
		PaymentMethods: paymentMethodService,
		AdminToken:     cfg.AdminToken,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
}
