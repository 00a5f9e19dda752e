package model

import "time"

// PropertyType enumerates the kinds of bookable units the platform
// supports. The zero value is not valid; callers should default to
// PropertyTypeRoom when nothing is supplied.
const (
    PropertyTypeRoom      = "room"
    PropertyTypeSuite     = "suite"
    PropertyTypeApartment = "apartment"
    PropertyTypeCottage   = "cottage"
    PropertyTypeCabin     = "cabin"
    PropertyTypeVilla     = "villa"
    PropertyTypeDormitory = "dormitory"
)

// Property statuses. A retired property is never hard-deleted while
// reservations still reference it; operators flip the status instead.
const (
    PropertyStatusAvailable   = "available"
    PropertyStatusMaintenance = "maintenance"
    PropertyStatusRetired     = "retired"
)

// Property represents a bookable unit (room, cabin, villa, ...) owned by a
// tenant. It carries the base nightly price used when no rate plan applies
// and the stay policy enforced at booking time.
//
// Fields:
//  ID                 – primary key identifier.
//  TenantID           – owning tenant.
//  Name               – display name shown to guests and operators.
//  Type               – one of the PropertyType* constants.
//  Capacity           – maximum number of guests (adults + children).
//  Bedrooms           – bedroom count.
//  Bathrooms          – bathroom count.
//  BasePriceCents     – default nightly price in cents.
//  Currency           – ISO 4217 currency code.
//  Status             – available, maintenance or retired.
//  MinStay            – minimum nights per booking.
//  MaxStay            – maximum nights per booking (0 = unlimited).
//  CheckInTime        – daily check-in time, "HH:MM".
//  CheckOutTime       – daily check-out time, "HH:MM".
//  CancellationPolicy – policy class tag (flexible, moderate, strict).
//  Active             – soft visibility flag.
type Property struct {
    ID                 uint64    `json:"id"`                  // properties.id
    TenantID           string    `json:"tenant_id"`           // properties.tenant_id
    Name               string    `json:"name"`                // properties.name
    Type               string    `json:"type"`                // properties.property_type
    Capacity           uint32    `json:"capacity"`            // properties.capacity
    Bedrooms           uint32    `json:"bedrooms"`            // properties.bedrooms
    Bathrooms          uint32    `json:"bathrooms"`           // properties.bathrooms
    BasePriceCents     int64     `json:"base_price_cents"`    // properties.base_price_cents
    Currency           string    `json:"currency"`            // properties.currency
    Status             string    `json:"status"`              // properties.status
    MinStay            uint32    `json:"min_stay"`            // properties.min_stay
    MaxStay            uint32    `json:"max_stay"`            // properties.max_stay (0 = no cap)
    CheckInTime        string    `json:"check_in_time"`       // properties.check_in_time
    CheckOutTime       string    `json:"check_out_time"`      // properties.check_out_time
    CancellationPolicy string    `json:"cancellation_policy"` // properties.cancellation_policy
    Active             bool      `json:"active"`              // properties.is_active
    CreatedAt          time.Time `json:"created_at"`          // properties.created_at
    UpdatedAt          time.Time `json:"updated_at"`          // properties.updated_at
}

// ValidPropertyType reports whether t is one of the supported unit kinds.
func ValidPropertyType(t string) bool {
    switch t {
    case PropertyTypeRoom, PropertyTypeSuite, PropertyTypeApartment,
        PropertyTypeCottage, PropertyTypeCabin, PropertyTypeVilla, PropertyTypeDormitory:
        return true
    }
    return false
}

// Bookable reports whether new reservations may target the property.
// Retired and maintenance units, and units an operator has deactivated,
// never accept bookings.
func (p *Property) Bookable() bool {
    return p.Active && p.Status == PropertyStatusAvailable
}
