package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-stay-reservation/internal/handler"
    "github.com/iliyamo/property-stay-reservation/internal/middleware"
)

// RegisterGuest registers guest-scoped endpoints under /v1. All routes
// require a valid JWT. Booking and the my-reservations list are guest
// only; reservation detail and cancel are shared with operators — both
// roles hit the same handler and the booking service decides what each
// actor may see or do.
func RegisterGuest(e *echo.Echo, h *handler.GuestHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("GUEST"),
    )
    g.POST("/reservations", h.CreateReservation)
    g.GET("/my-reservations", h.ListMyReservations)

    shared := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("GUEST", "OPERATOR"),
    )
    shared.GET("/reservations/:ref", h.GetReservation)
    shared.POST("/reservations/:ref/cancel", h.CancelReservation)
}
