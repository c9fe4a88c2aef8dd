// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "smart-appointments/internal/config"
    "smart-appointments/internal/handler"
    "smart-appointments/internal/middleware"
)

// RegisterRoutes registers routes that carry no API version prefix.
// Currently it exposes only the health check used by load balancers
// and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAPI wires all /v1 endpoints.  The rate limiter guards the
// whole group; the response cache wraps only the read endpoints (day
// listing and the lookup lists), which tolerate the configured
// staleness.  Both middlewares degrade to pass-through when rdb is
// nil.
func RegisterAPI(e *echo.Echo, a *handler.AppointmentHandler, s *handler.StaffHandler, o *handler.OrganizationHandler, rdb *redis.Client) {
    v1 := e.Group("/v1")
    v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cached := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

    // Lookups behind the pickers.
    v1.GET("/organizations", o.List, cached)
    v1.GET("/organizations/:id/staff", s.ListByOrganization, cached)

    // Staff management.
    v1.POST("/organizations/:id/staff", s.Add)
    v1.DELETE("/staff/:id", s.Delete)

    // Booking operations.
    v1.GET("/appointments", a.ListDay, cached)
    v1.GET("/appointments/:id", a.Get)
    v1.POST("/appointments", a.Book)
    v1.POST("/appointments/:id/reschedule", a.Reschedule)
    v1.POST("/appointments/:id/cancel", a.Cancel)
}
