package handler // handler package contains operator rate plan handlers

import (
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/property-stay-reservation/internal/booking"
    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// modifierBody is one weekday adjustment inside a rate plan payload.
type modifierBody struct {
    Weekday int     `json:"weekday" validate:"min=0,max=6"`
    Percent float64 `json:"percent" validate:"required,min=-100,max=500"`
}

// ratePlanBody is the payload for creating and updating rate plans.
type ratePlanBody struct {
    PropertyID        uint64         `json:"property_id" validate:"required"`
    Name              string         `json:"name" validate:"required,max=200"`
    StartDate         string         `json:"start_date" validate:"required,datetime=2006-01-02"`
    EndDate           string         `json:"end_date" validate:"required,datetime=2006-01-02"`
    NightlyPriceCents int64          `json:"nightly_price_cents" validate:"required,min=1"`
    Currency          string         `json:"currency" validate:"required,len=3"`
    Priority          int32          `json:"priority"`
    MinStay           uint32         `json:"min_stay" validate:"min=0"`
    Active            *bool          `json:"active"`
    Modifiers         []modifierBody `json:"modifiers" validate:"max=7,dive"`
}

func (b *ratePlanBody) toModel(tenantID string) (*model.RatePlan, error) {
    if b.EndDate < b.StartDate {
        return nil, &booking.ValidationError{Msg: "end_date precedes start_date"}
    }
    seen := map[int]bool{}
    mods := make([]model.RatePlanModifier, 0, len(b.Modifiers))
    for _, m := range b.Modifiers {
        if seen[m.Weekday] {
            return nil, &booking.ValidationError{Msg: "duplicate weekday modifier"}
        }
        seen[m.Weekday] = true
        mods = append(mods, model.RatePlanModifier{Weekday: m.Weekday, Percent: m.Percent})
    }
    active := true
    if b.Active != nil {
        active = *b.Active
    }
    return &model.RatePlan{
        TenantID:          tenantID,
        PropertyID:        b.PropertyID,
        Name:              b.Name,
        StartDate:         b.StartDate,
        EndDate:           b.EndDate,
        NightlyPriceCents: b.NightlyPriceCents,
        Currency:          b.Currency,
        Priority:          b.Priority,
        MinStay:           b.MinStay,
        Active:            active,
        Modifiers:         mods,
    }, nil
}

// CreateRatePlan handles POST /v1/rate-plans. The referenced property must
// belong to the caller's tenant.
func (h *OperatorHandler) CreateRatePlan(c echo.Context) error {
    var body ratePlanBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    tenant := tenantFrom(c)
    if _, err := h.Props.GetByID(c.Request().Context(), tenant, body.PropertyID); err != nil {
        return writeError(c, err)
    }
    plan, err := body.toModel(tenant)
    if err != nil {
        return writeError(c, err)
    }
    if err := h.Plans.Create(c.Request().Context(), plan); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, plan)
}

// UpdateRatePlan handles PUT/PATCH /v1/rate-plans/:id. The modifier set is
// replaced wholesale, not merged.
func (h *OperatorHandler) UpdateRatePlan(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body ratePlanBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    plan, err := body.toModel(tenantFrom(c))
    if err != nil {
        return writeError(c, err)
    }
    plan.ID = id
    if err := h.Plans.Update(c.Request().Context(), plan); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, plan)
}

// DeleteRatePlan handles DELETE /v1/rate-plans/:id. Existing reservations
// keep their frozen snapshots; deleting a plan only affects future pricing.
func (h *OperatorHandler) DeleteRatePlan(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Plans.Delete(c.Request().Context(), tenantFrom(c), id); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ListRatePlans handles GET /v1/properties/:id/rate-plans.
func (h *OperatorHandler) ListRatePlans(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    items, err := h.Plans.ListByProperty(c.Request().Context(), tenantFrom(c), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
