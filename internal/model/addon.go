package model

import "time"

// Billing bases for add-ons. The basis decides the quantity used when a
// stay is priced: per_night multiplies by the night count, per_guest by the
// adult count, per_stay is charged once.
const (
    AddOnBasisPerNight = "per_night"
    AddOnBasisPerStay  = "per_stay"
    AddOnBasisPerGuest = "per_guest"
)

// AddOn is an optional priced extra a guest can attach to a reservation,
// such as breakfast, airport pickup or a late checkout.
type AddOn struct {
    ID         uint64    `json:"id"`          // addons.id
    TenantID   string    `json:"tenant_id"`   // addons.tenant_id
    Name       string    `json:"name"`        // addons.name
    PriceCents int64     `json:"price_cents"` // addons.price_cents
    Currency   string    `json:"currency"`    // addons.currency
    Basis      string    `json:"basis"`       // addons.basis
    Category   string    `json:"category"`    // addons.category
    Active     bool      `json:"active"`      // addons.is_active
    SortOrder  int32     `json:"sort_order"`  // addons.sort_order
    CreatedAt  time.Time `json:"created_at"`  // addons.created_at
}

// ValidAddOnBasis reports whether b is a supported billing basis.
func ValidAddOnBasis(b string) bool {
    return b == AddOnBasisPerNight || b == AddOnBasisPerStay || b == AddOnBasisPerGuest
}

// Quantity resolves how many units of the add-on a stay consumes given its
// night count and adult guest count.
func (a *AddOn) Quantity(nights, adults int) int {
    switch a.Basis {
    case AddOnBasisPerNight:
        return nights
    case AddOnBasisPerGuest:
        return adults
    default:
        return 1
    }
}
