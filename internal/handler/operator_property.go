package handler // handler package contains operator property catalog handlers

import (
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/property-stay-reservation/internal/booking"
    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
)

// OperatorHandler bundles the catalog repositories and the booking service
// for operator-scoped endpoints.
type OperatorHandler struct {
    Props  *repository.PropertyRepo // Props provides property persistence
    Plans  *repository.RatePlanRepo // Plans provides rate plan persistence
    AddOns *repository.AddOnRepo    // AddOns provides add-on persistence
    Svc    *booking.Service         // Svc provides calendar and lifecycle operations
}

// NewOperatorHandler constructs an OperatorHandler and panics if any
// dependency is nil.
func NewOperatorHandler(props *repository.PropertyRepo, plans *repository.RatePlanRepo, addons *repository.AddOnRepo, svc *booking.Service) *OperatorHandler {
    if props == nil || plans == nil || addons == nil || svc == nil {
        panic("nil dependency passed to NewOperatorHandler")
    }
    return &OperatorHandler{Props: props, Plans: plans, AddOns: addons, Svc: svc}
}

// propertyBody is the payload for creating and updating properties.
type propertyBody struct {
    Name               string `json:"name" validate:"required,max=200"`
    Type               string `json:"type" validate:"required"`
    Capacity           uint32 `json:"capacity" validate:"required,min=1"`
    Bedrooms           uint32 `json:"bedrooms"`
    Bathrooms          uint32 `json:"bathrooms"`
    BasePriceCents     int64  `json:"base_price_cents" validate:"required,min=1"`
    Currency           string `json:"currency" validate:"required,len=3"`
    Status             string `json:"status" validate:"omitempty,oneof=available maintenance retired"`
    MinStay            uint32 `json:"min_stay" validate:"min=0"`
    MaxStay            uint32 `json:"max_stay" validate:"min=0"`
    CheckInTime        string `json:"check_in_time" validate:"omitempty,datetime=15:04"`
    CheckOutTime       string `json:"check_out_time" validate:"omitempty,datetime=15:04"`
    CancellationPolicy string `json:"cancellation_policy" validate:"omitempty,oneof=flexible moderate strict"`
}

func (b *propertyBody) apply(p *model.Property) error {
    if !model.ValidPropertyType(b.Type) {
        return &booking.ValidationError{Msg: "unknown property type " + b.Type}
    }
    if b.MaxStay > 0 && b.MaxStay < b.MinStay {
        return &booking.ValidationError{Msg: "max_stay is below min_stay"}
    }
    p.Name = b.Name
    p.Type = b.Type
    p.Capacity = b.Capacity
    p.Bedrooms = b.Bedrooms
    p.Bathrooms = b.Bathrooms
    p.BasePriceCents = b.BasePriceCents
    p.Currency = b.Currency
    p.MinStay = b.MinStay
    p.MaxStay = b.MaxStay
    if b.Status != "" {
        p.Status = b.Status
    }
    if b.CheckInTime != "" {
        p.CheckInTime = b.CheckInTime
    }
    if b.CheckOutTime != "" {
        p.CheckOutTime = b.CheckOutTime
    }
    if b.CancellationPolicy != "" {
        p.CancellationPolicy = b.CancellationPolicy
    }
    return nil
}

// CreateProperty handles POST /v1/properties.
func (h *OperatorHandler) CreateProperty(c echo.Context) error {
    var body propertyBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    p := &model.Property{
        TenantID:           tenantFrom(c),
        Status:             model.PropertyStatusAvailable,
        CheckInTime:        "15:00",
        CheckOutTime:       "11:00",
        CancellationPolicy: "moderate",
        Active:             true,
    }
    if err := body.apply(p); err != nil {
        return writeError(c, err)
    }
    if err := h.Props.Create(c.Request().Context(), p); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, p)
}

// UpdateProperty handles PUT/PATCH /v1/properties/:id.
func (h *OperatorHandler) UpdateProperty(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body propertyBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    p, err := h.Props.GetByID(c.Request().Context(), tenantFrom(c), id)
    if err != nil {
        return writeError(c, err)
    }
    if err := body.apply(p); err != nil {
        return writeError(c, err)
    }
    if err := h.Props.Update(c.Request().Context(), p); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// GetProperty handles GET /v1/properties/:id.
func (h *OperatorHandler) GetProperty(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    p, err := h.Props.GetByID(c.Request().Context(), tenantFrom(c), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// ListProperties handles GET /v1/properties. The optional active=true
// query filters to bookable units only.
func (h *OperatorHandler) ListProperties(c echo.Context) error {
    activeOnly := c.QueryParam("active") == "true"
    items, err := h.Props.List(c.Request().Context(), tenantFrom(c), activeOnly)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RetireProperty handles DELETE /v1/properties/:id. Properties with
// reservation history are never hard-deleted; the unit is retired and
// hidden from search instead.
func (h *OperatorHandler) RetireProperty(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Props.Retire(c.Request().Context(), tenantFrom(c), id); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
