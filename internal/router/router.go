package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/apartment-booking/internal/config"
    "github.com/iliyamo/apartment-booking/internal/handler"
    "github.com/iliyamo/apartment-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance: the health check, the Prometheus
// metrics endpoint and public apartment browsing.
func RegisterRoutes(e *echo.Echo, apartments *handler.ApartmentHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
    // Used by load balancers and monitoring to verify the service is up.
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

    // Public browsing sits behind the Redis response cache; calendars
    // and quotes are never cached.
    e.GET("/v1/apartments", apartments.List, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterAuth registers the authentication endpoints. Register and
// login live under /v1/auth and need no token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
}

// RegisterBooking registers the protected booking and listing
// management endpoints under /v1. All of them require a valid access
// token; booking creation is additionally rate limited per user.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, apartments *handler.ApartmentHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))

    auth.POST("/bookings/quote", b.Quote)
    auth.POST("/bookings", b.Create, middleware.NewTokenBucket(rlCfg, rdb))
    auth.GET("/my-bookings", b.ListMine)
    auth.GET("/bookings/:id", b.Get)
    auth.POST("/bookings/:id/cancel", b.Cancel)
    auth.POST("/bookings/:id/payment", b.RecordPayment)
    auth.POST("/bookings/:id/access-code", b.IssueAccessCode)

    // Owner-side listing management.
    auth.POST("/apartments", apartments.Create)
    auth.PATCH("/apartments/:id/availability", apartments.SetAvailability)
}
