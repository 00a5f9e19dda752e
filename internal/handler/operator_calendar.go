package handler // handler package contains operator calendar and block handlers

import (
    "net/http" // http provides status code constants
    "strconv"  // strconv parses the calendar's property query parameter

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers
)

// GetCalendar handles GET /v1/calendar?property_id=&start=&end=. The view
// is read-only and safe to serve from the response cache.
func (h *OperatorHandler) GetCalendar(c echo.Context) error {
    propertyID, err := strconv.ParseUint(c.QueryParam("property_id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_id"})
    }
    cal, err := h.Svc.GetCalendar(c.Request().Context(), tenantFrom(c), propertyID, c.QueryParam("start"), c.QueryParam("end"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, cal)
}

// blockBody is the payload of block and unblock requests. The range is
// half-open: end itself is not affected.
type blockBody struct {
    Start string `json:"start" validate:"required,datetime=2006-01-02"`
    End   string `json:"end" validate:"required,datetime=2006-01-02"`
    Note  string `json:"note" validate:"max=500"`
}

// BlockDates handles POST /v1/properties/:id/block. Occupied dates inside
// the range are skipped, not overwritten; the response reports how many
// dates were actually blocked so the operator can see partial effect.
func (h *OperatorHandler) BlockDates(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body blockBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    blocked, err := h.Svc.BlockRange(c.Request().Context(), tenantFrom(c), id, body.Start, body.End, body.Note)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"blocked": blocked})
}

// UnblockDates handles POST /v1/properties/:id/unblock. Only operator
// blocks are removed; booked nights are untouched and repeating the call
// is harmless.
func (h *OperatorHandler) UnblockDates(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body blockBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    unblocked, err := h.Svc.UnblockRange(c.Request().Context(), tenantFrom(c), id, body.Start, body.End)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"unblocked": unblocked})
}
