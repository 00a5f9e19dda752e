package handler // handler package contains operator reservation handlers

import (
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/property-stay-reservation/internal/booking"
)

// ListPropertyReservations handles GET /v1/properties/:id/reservations.
func (h *OperatorHandler) ListPropertyReservations(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    items, err := h.Svc.ListPropertyReservations(c.Request().Context(), tenantFrom(c), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// statusBody is the payload of PATCH /v1/reservations/:ref/status.
type statusBody struct {
    Status string  `json:"status" validate:"required,oneof=confirmed checked_in checked_out cancelled no_show"`
    Note   *string `json:"note" validate:"omitempty,max=500"`
    Reason string  `json:"reason" validate:"max=500"`
}

// UpdateReservationStatus handles PATCH /v1/reservations/:ref/status. The
// state machine decides which moves are legal; an illegal move maps to a
// conflict response.
func (h *OperatorHandler) UpdateReservationStatus(c echo.Context) error {
    var body statusBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    res, err := h.Svc.Transition(c.Request().Context(), booking.TransitionRequest{
        TenantID:  tenantFrom(c),
        Reference: c.Param("ref"),
        ToStatus:  body.Status,
        Note:      body.Note,
        Reason:    body.Reason,
        Actor:     actorFrom(c),
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
