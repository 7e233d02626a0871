package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Eursukkul/sports-club-service/config"
	"github.com/Eursukkul/sports-club-service/internal/consumer"
	"github.com/Eursukkul/sports-club-service/internal/handler"
	"github.com/Eursukkul/sports-club-service/internal/middleware"
	"github.com/Eursukkul/sports-club-service/internal/repository"
	"github.com/Eursukkul/sports-club-service/internal/service"
	"github.com/Eursukkul/sports-club-service/pkg/database"
	"github.com/Eursukkul/sports-club-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking and membership events
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Redis: shared rate limit counters
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable, rate limiting will fail open: %v", err)
	}
	cancel()

	// Repositories
	patronRepo := repository.NewPatronRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tx := repository.NewTransactor(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, patronRepo, settingRepo, publisher)
	subSvc := service.NewSubscriptionService(tx, subRepo, patronRepo, settingRepo, publisher, cfg.ClubLocation)

	// RabbitMQ consumer: payment confirmations from the payment gateway
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewPaymentConsumer(bookingSvc, subSvc).Start(msgs)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s request_id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.Identity(cfg.JWTSecret))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "sports-club-service"})
	})

	api := e.Group("/api/v1")
	handler.NewBookingHandler(bookingSvc, cfg.ClubLocation).
		RegisterRoutes(api, middleware.RateLimit(rdb, cfg.RateLimitPerMinute))
	handler.NewMembershipHandler(subSvc, cfg.ClubLocation).RegisterRoutes(api)

	log.Printf("Sports Club Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
