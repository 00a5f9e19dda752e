package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/property-stay-reservation/internal/booking"
    "github.com/iliyamo/property-stay-reservation/internal/config"
    "github.com/iliyamo/property-stay-reservation/internal/database"
    "github.com/iliyamo/property-stay-reservation/internal/handler"
    "github.com/iliyamo/property-stay-reservation/internal/middleware"
    "github.com/iliyamo/property-stay-reservation/internal/queue"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
    "github.com/iliyamo/property-stay-reservation/internal/router"
    queue_publisher "github.com/iliyamo/property-stay-reservation/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the response cache and rate limiter. A nil client just
    // disables both; the booking path never depends on Redis.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; response cache and rate limiting disabled")
    }
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    availabilityRepo := repository.NewAvailabilityRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    propertyRepo := repository.NewPropertyRepo(db)
    ratePlanRepo := repository.NewRatePlanRepo(db)
    addOnRepo := repository.NewAddOnRepo(db)

    svc := booking.NewService(
        availabilityRepo,
        reservationRepo,
        propertyRepo,
        ratePlanRepo,
        addOnRepo,
        queue_publisher.New(),
    )

    // The consumer appends reservation events to logs/reservations.log and
    // reconnects on broker failures forever.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.Validator = handler.NewValidator()

    router.RegisterRoutes(e)
    router.RegisterPublic(e, handler.NewPublicHandler(svc), limitMW, cacheMW)
    router.RegisterGuest(e, handler.NewGuestHandler(svc), cfg.JWTSecret)
    router.RegisterOperator(e, handler.NewOperatorHandler(propertyRepo, ratePlanRepo, addOnRepo, svc), cfg.JWTSecret, cacheMW)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
