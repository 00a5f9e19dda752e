package handler // handler defines http handlers

import (
    "errors"   // errors provides Is/As matching against sentinel and typed errors
    "net/http" // http provides status code constants
    "strconv"  // strconv converts path parameters to numeric types

    "github.com/go-playground/validator/v10" // validator enforces struct tags on request bodies
    "github.com/labstack/echo/v4"            // echo defines request context types

    "github.com/iliyamo/property-stay-reservation/internal/booking"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
)

// CustomValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type CustomValidator struct {
    validate *validator.Validate
}

// NewValidator returns a CustomValidator ready to attach to echo.Echo.
func NewValidator() *CustomValidator {
    return &CustomValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return nil
}

// actorFrom builds the acting identity from the claims JWTAuth stored in
// context. The zero Actor (public route) has an empty ID and role.
func actorFrom(c echo.Context) booking.Actor {
    a := booking.Actor{}
    if v, ok := c.Get("user_id").(string); ok {
        a.ID = v
    }
    if v, ok := c.Get("role").(string); ok {
        a.Role = v
    }
    return a
}

// tenantFrom returns the caller's tenant claim, empty on public routes.
func tenantFrom(c echo.Context) string {
    if v, ok := c.Get("tenant_id").(string); ok {
        return v
    }
    return ""
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps service and repository errors onto the HTTP surface:
// validation → 400, authorization → 403, unknown entities → 404, date
// conflicts and forbidden transitions → 409, everything else → 500.
func writeError(c echo.Context, err error) error {
    var ve *booking.ValidationError
    if errors.As(err, &ve) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Msg})
    }
    var ae *booking.AuthorizationError
    if errors.As(err, &ae) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": ae.Msg})
    }
    var te *booking.TransitionError
    if errors.As(err, &te) {
        return c.JSON(http.StatusConflict, echo.Map{"error": te.Error()})
    }
    switch {
    case errors.Is(err, repository.ErrDateConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "requested dates are no longer available"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrPropertyNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
    case errors.Is(err, repository.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, repository.ErrRatePlanNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "rate plan not found"})
    case errors.Is(err, repository.ErrAddOnNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "add-on not found"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
