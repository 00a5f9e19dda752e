package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/property-stay-reservation/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // The /healthz endpoint is used by load balancers and monitoring
    // systems to verify that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated availability search. The
// optional middlewares (response cache, rate limiter) are applied only to
// this route: the search is read-heavy and tolerates the cache TTL of
// staleness, while every booking decision re-checks the ledger.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
    e.GET("/v1/availability", p.CheckAvailability, mws...)
}
