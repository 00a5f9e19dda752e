package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-stay-reservation/internal/handler"    // operator handlers
    "github.com/iliyamo/property-stay-reservation/internal/middleware" // JWT + role middlewares
)

// RegisterOperator registers OPERATOR-scoped endpoints under /v1.
// All routes require a valid JWT and the OPERATOR role. The optional
// middlewares are applied to the calendar view only; it is a read-only
// join that tolerates cache staleness.
func RegisterOperator(e *echo.Echo, o *handler.OperatorHandler, jwtSecret string, calendarMWs ...echo.MiddlewareFunc) {
    // Attach middlewares at group construction time for clarity.
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("OPERATOR"),
    )

    // ---- Properties ----
    g.POST("/properties", o.CreateProperty)
    g.GET("/properties", o.ListProperties)
    g.GET("/properties/:id", o.GetProperty)
    g.PUT("/properties/:id", o.UpdateProperty)
    g.PATCH("/properties/:id", o.UpdateProperty) // allow partial/semantic updates via PATCH as well
    g.DELETE("/properties/:id", o.RetireProperty)

    // ---- Rate plans ----
    g.POST("/rate-plans", o.CreateRatePlan)
    g.PUT("/rate-plans/:id", o.UpdateRatePlan)
    g.PATCH("/rate-plans/:id", o.UpdateRatePlan)
    g.DELETE("/rate-plans/:id", o.DeleteRatePlan)
    g.GET("/properties/:id/rate-plans", o.ListRatePlans)

    // ---- Add-ons ----
    g.POST("/addons", o.CreateAddOn)
    g.GET("/addons", o.ListAddOns)
    g.PUT("/addons/:id", o.UpdateAddOn)
    g.PATCH("/addons/:id", o.UpdateAddOn)

    // ---- Calendar and blocks ----
    g.GET("/calendar", o.GetCalendar, calendarMWs...)
    g.POST("/properties/:id/block", o.BlockDates)
    g.POST("/properties/:id/unblock", o.UnblockDates)

    // ---- Reservations ----
    g.GET("/properties/:id/reservations", o.ListPropertyReservations)
    g.PATCH("/reservations/:ref/status", o.UpdateReservationStatus)
}
