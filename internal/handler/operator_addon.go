package handler // handler package contains operator add-on catalog handlers

import (
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// addOnBody is the payload for creating and updating add-ons.
type addOnBody struct {
    Name       string `json:"name" validate:"required,max=200"`
    PriceCents int64  `json:"price_cents" validate:"required,min=1"`
    Currency   string `json:"currency" validate:"required,len=3"`
    Basis      string `json:"basis" validate:"required,oneof=per_night per_stay per_guest"`
    Category   string `json:"category" validate:"max=100"`
    Active     *bool  `json:"active"`
    SortOrder  int32  `json:"sort_order"`
}

func (b *addOnBody) apply(a *model.AddOn) {
    a.Name = b.Name
    a.PriceCents = b.PriceCents
    a.Currency = b.Currency
    a.Basis = b.Basis
    a.Category = b.Category
    a.SortOrder = b.SortOrder
    if b.Active != nil {
        a.Active = *b.Active
    }
}

// CreateAddOn handles POST /v1/addons.
func (h *OperatorHandler) CreateAddOn(c echo.Context) error {
    var body addOnBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    a := &model.AddOn{TenantID: tenantFrom(c), Active: true}
    body.apply(a)
    if err := h.AddOns.Create(c.Request().Context(), a); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, a)
}

// UpdateAddOn handles PUT/PATCH /v1/addons/:id. Reservations that already
// carry the add-on keep their frozen line items.
func (h *OperatorHandler) UpdateAddOn(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body addOnBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    a := &model.AddOn{ID: id, TenantID: tenantFrom(c), Active: true}
    body.apply(a)
    if err := h.AddOns.Update(c.Request().Context(), a); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, a)
}

// ListAddOns handles GET /v1/addons. The optional active=true query
// filters to the bookable catalog.
func (h *OperatorHandler) ListAddOns(c echo.Context) error {
    activeOnly := c.QueryParam("active") == "true"
    items, err := h.AddOns.List(c.Request().Context(), tenantFrom(c), activeOnly)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
