package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/config"
    "github.com/iliyamo/apartment-booking/internal/database"
    "github.com/iliyamo/apartment-booking/internal/handler"
    "github.com/iliyamo/apartment-booking/internal/queue"
    "github.com/iliyamo/apartment-booking/internal/repository"
    "github.com/iliyamo/apartment-booking/internal/router"
    queue_publisher "github.com/iliyamo/apartment-booking/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments use the environment

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Repositories. The booking repo is the single calendar store.
    users := repository.NewUserRepo(db)
    apartments := repository.NewApartmentRepo(db)
    bookings := repository.NewBookingRepo(db, apartments)

    // The booking core: calendar store + identity provider + ledger.
    svc := booking.New(bookings, users, queue_publisher.Publisher{})

    // Mirror ledger events to logs/ledger.log in the background. The
    // consumer reconnects forever; it never takes the server down.
    go func() {
        if err := queue.StartLedgerConsumer(); err != nil {
            log.Printf("ledger-consumer: %v", err)
        }
    }()

    // Redis is optional: when unreachable the cache and the rate
    // limiter silently disable themselves.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }

    e := echo.New()
    e.HideBanner = true

    authHandler := handler.NewAuthHandler(cfg, users)
    apartmentHandler := handler.NewApartmentHandler(apartments)
    bookingHandler := handler.NewBookingHandler(svc)

    router.RegisterRoutes(e, apartmentHandler, config.LoadCacheConfig(), rdb)
    router.RegisterAuth(e, authHandler)
    router.RegisterBooking(e, bookingHandler, apartmentHandler, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
