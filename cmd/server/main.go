package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/equipment-rental/internal/config"
	"github.com/iliyamo/equipment-rental/internal/handler"
	"github.com/iliyamo/equipment-rental/internal/logger"
	"github.com/iliyamo/equipment-rental/internal/middleware"
	"github.com/iliyamo/equipment-rental/internal/payment"
	"github.com/iliyamo/equipment-rental/internal/queue"
	"github.com/iliyamo/equipment-rental/internal/router"
	"github.com/iliyamo/equipment-rental/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	st := store.New()
	if err := store.Seed(st, cfg.BcryptCost); err != nil {
		log.Fatalf("seed store failed: %v", err)
	}

	// The processor implementation is fixed at startup; it is never
	// swapped at runtime.
	var proc payment.Processor
	switch cfg.PaymentProvider {
	case config.ProviderStripe:
		proc = payment.NewStripeProcessor(cfg.StripeSecretKey)
	default:
		proc = payment.NewMemoryProcessor()
	}
	zlog.Info("payment processor configured", zap.String("provider", cfg.PaymentProvider))

	// Rate limiting degrades to a pass-through when Redis is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable, rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Mirror confirmed bookings to the broker-backed audit log when a
	// broker is configured.
	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
				zlog.Warn("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover()) // unexpected panics become generic 500s
	e.Use(echomw.CORS())

	router.Register(e, router.Handlers{
		Meta:      handler.NewMetaHandler(cfg),
		Auth:      handler.NewAuthHandler(cfg, st, zlog),
		Equipment: handler.NewEquipmentHandler(st, cfg.Currency, zlog),
		Booking:   handler.NewBookingHandler(cfg, st, proc, zlog),
	}, st, cfg.SessionSecret, rateLimit)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
