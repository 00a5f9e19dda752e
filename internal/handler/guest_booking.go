package handler // handler package contains the guest-facing booking handlers

import (
    "net/http" // http provides status code constants
    "strconv"  // strconv parses optional numeric query parameters

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/property-stay-reservation/internal/booking" // booking orchestrates reservations
)

// PublicHandler serves the unauthenticated search surface.
type PublicHandler struct {
    Svc *booking.Service // Svc performs the availability search
}

// NewPublicHandler constructs a PublicHandler and panics on a nil service.
func NewPublicHandler(svc *booking.Service) *PublicHandler {
    if svc == nil {
        panic("nil service passed to NewPublicHandler")
    }
    return &PublicHandler{Svc: svc}
}

// CheckAvailability handles GET /v1/availability. The search is public:
// the tenant comes from the required tenant query parameter rather than a
// token, and conflicted properties are silently omitted so an empty list
// is a normal answer.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
    tenant := c.QueryParam("tenant") // public route, tenant is explicit
    if tenant == "" {
        tenant = tenantFrom(c) // authenticated callers fall back to their claim
    }
    if tenant == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant is required"})
    }
    guests := 1
    if g := c.QueryParam("guests"); g != "" {
        n, err := strconv.Atoi(g)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
        }
        guests = n
    }
    q := booking.AvailabilityQuery{
        TenantID: tenant,
        CheckIn:  c.QueryParam("check_in"),
        CheckOut: c.QueryParam("check_out"),
        Guests:   guests,
    }
    if p := c.QueryParam("property_id"); p != "" {
        id, err := strconv.ParseUint(p, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_id"})
        }
        q.PropertyID = &id
    }
    quotes, err := h.Svc.CheckAvailability(c.Request().Context(), q)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": quotes})
}

// GuestHandler serves authenticated guests: booking and managing their own
// reservations.
type GuestHandler struct {
    Svc *booking.Service
}

// NewGuestHandler constructs a GuestHandler and panics on a nil service.
func NewGuestHandler(svc *booking.Service) *GuestHandler {
    if svc == nil {
        panic("nil service passed to NewGuestHandler")
    }
    return &GuestHandler{Svc: svc}
}

// createReservationBody is the request payload of POST /v1/reservations.
// Tenant and guest identity always come from the token, never the body.
type createReservationBody struct {
    PropertyID      uint64   `json:"property_id" validate:"required"`
    CheckIn         string   `json:"check_in" validate:"required,datetime=2006-01-02"`
    CheckOut        string   `json:"check_out" validate:"required,datetime=2006-01-02"`
    Adults          int      `json:"adults" validate:"required,min=1"`
    Children        int      `json:"children" validate:"min=0"`
    Infants         int      `json:"infants" validate:"min=0"`
    AddOnIDs        []uint64 `json:"addon_ids"`
    Source          string   `json:"source" validate:"omitempty,oneof=direct phone walk_in partner"`
    SpecialRequests string   `json:"special_requests" validate:"max=2000"`
}

// CreateReservation handles POST /v1/reservations.
func (h *GuestHandler) CreateReservation(c echo.Context) error {
    var body createReservationBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    actor := actorFrom(c)
    res, err := h.Svc.CreateReservation(c.Request().Context(), booking.CreateReservationRequest{
        TenantID:        tenantFrom(c),
        GuestID:         actor.ID,
        PropertyID:      body.PropertyID,
        CheckIn:         body.CheckIn,
        CheckOut:        body.CheckOut,
        Adults:          body.Adults,
        Children:        body.Children,
        Infants:         body.Infants,
        AddOnIDs:        body.AddOnIDs,
        Source:          body.Source,
        SpecialRequests: body.SpecialRequests,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// ListMyReservations handles GET /v1/my-reservations.
func (h *GuestHandler) ListMyReservations(c echo.Context) error {
    actor := actorFrom(c)
    items, err := h.Svc.ListGuestReservations(c.Request().Context(), tenantFrom(c), actor.ID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReservation handles GET /v1/reservations/:ref. Guests only see their
// own reservations; the service enforces ownership.
func (h *GuestHandler) GetReservation(c echo.Context) error {
    res, err := h.Svc.GetReservation(c.Request().Context(), tenantFrom(c), c.Param("ref"), actorFrom(c))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// cancelBody carries the optional reason of a cancellation.
type cancelBody struct {
    Reason string `json:"reason" validate:"max=500"`
}

// CancelReservation handles POST /v1/reservations/:ref/cancel for the
// owning guest. Cancelling releases the stay's nights back to the ledger.
func (h *GuestHandler) CancelReservation(c echo.Context) error {
    var body cancelBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    res, err := h.Svc.Cancel(c.Request().Context(), tenantFrom(c), c.Param("ref"), body.Reason, actorFrom(c))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
