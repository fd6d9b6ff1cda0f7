package main // Entry point package

import (
    "context"
    "log"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
    "github.com/iliyamo/hotel-room-reservation/internal/config"
    "github.com/iliyamo/hotel-room-reservation/internal/database"
    "github.com/iliyamo/hotel-room-reservation/internal/handler"
    "github.com/iliyamo/hotel-room-reservation/internal/middleware"
    "github.com/iliyamo/hotel-room-reservation/internal/queue"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
    "github.com/iliyamo/hotel-room-reservation/internal/router"
    queue_publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments use the environment
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.LockWaitSec)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    roomTypes := repository.NewRoomTypeRepo(db)
    units := repository.NewRoomUnitRepo(db)
    bookings := repository.NewBookingRepo(db)
    payments := repository.NewPaymentEventRepo(db)
    engine := booking.NewEngine(db, roomTypes, units, bookings, payments,
        time.Duration(cfg.PendingHoldMin)*time.Minute)

    // Redis is optional: without it the cache and rate limiter become
    // pass-throughs and the service still takes bookings.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    rlMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    publisher := queue_publisher.New(cfg.RabbitURL)
    go func() {
        if err := queue.StartLifecycleConsumer(cfg.RabbitURL); err != nil {
            log.Printf("booking-consumer: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    router.RegisterRoutes(e)
    router.RegisterPublic(e,
        handler.NewAvailabilityHandler(engine, roomTypes),
        handler.NewCatalogHandler(repository.NewCatalogRepo(db)),
        rlMW, cacheMW)
    router.RegisterBooking(e, handler.NewBookingHandler(engine, publisher), cfg.JWTSecret, rlMW)

    addr := ":" + cfg.Port
    go func() {
        log.Printf("listening on %s (env=%s)", addr, cfg.Env)
        if err := e.Start(addr); err != nil {
            log.Printf("server stopped: %v", err)
        }
    }()

    // Drain in-flight reservations before exiting so no transaction is
    // killed mid-commit.
    quit := make(chan os.Signal, 1)
    signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
    <-quit

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(ctx); err != nil {
        log.Fatalf("shutdown: %v", err)
    }
}
