package model

import "time"

// Reservation statuses. pending is the initial state; cancelled,
// checked_out and no_show are terminal. Transitions are one-directional
// and validated by CanTransition.
const (
    ReservationStatusPending    = "pending"
    ReservationStatusConfirmed  = "confirmed"
    ReservationStatusCheckedIn  = "checked_in"
    ReservationStatusCheckedOut = "checked_out"
    ReservationStatusCancelled  = "cancelled"
    ReservationStatusNoShow     = "no_show"
)

// Payment statuses recorded in the payment snapshot. Capture itself is the
// payment gateway's job; the engine only tracks the resulting state.
const (
    PaymentStatusUnpaid   = "unpaid"
    PaymentStatusDeposit  = "deposit_paid"
    PaymentStatusPaid     = "paid"
    PaymentStatusRefunded = "refunded"
)

// transitions encodes the reservation state machine. Absent keys are
// terminal states. There is deliberately no path out of cancelled,
// checked_out or no_show.
var transitions = map[string][]string{
    ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusNoShow},
    ReservationStatusConfirmed: {ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusNoShow},
    ReservationStatusCheckedIn: {ReservationStatusCheckedOut, ReservationStatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to
// another. It encodes only the shape of the state machine; authorization
// of the acting party is enforced separately by the lifecycle service.
func CanTransition(from, to string) bool {
    for _, next := range transitions[from] {
        if next == to {
            return true
        }
    }
    return false
}

// ValidReservationStatus reports whether s names a known status.
func ValidReservationStatus(s string) bool {
    switch s {
    case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn,
        ReservationStatusCheckedOut, ReservationStatusCancelled, ReservationStatusNoShow:
        return true
    }
    return false
}

// ReservationNight is one line of the frozen per-night pricing breakdown.
// BasePriceCents is the property's base price at booking time and
// PriceCents the amount actually charged for the night after rate-plan
// resolution. RatePlanName is nil when the base price applied unmodified.
type ReservationNight struct {
    ID             uint64  `json:"id"`                       // reservation_nights.id
    ReservationID  uint64  `json:"reservation_id"`           // reservation_nights.reservation_id
    StayDate       string  `json:"stay_date"`                // reservation_nights.stay_date
    BasePriceCents int64   `json:"base_price_cents"`         // reservation_nights.base_price_cents
    PriceCents     int64   `json:"price_cents"`              // reservation_nights.price_cents
    RatePlanName   *string `json:"rate_plan_name,omitempty"` // reservation_nights.rate_plan_name
}

// ReservationAddOn is a resolved add-on line item frozen onto the
// reservation. Quantity depends on the billing basis at booking time.
type ReservationAddOn struct {
    ID            uint64 `json:"id"`             // reservation_addons.id
    ReservationID uint64 `json:"reservation_id"` // reservation_addons.reservation_id
    AddOnID       uint64 `json:"addon_id"`       // reservation_addons.addon_id
    Name          string `json:"name"`           // reservation_addons.name
    Basis         string `json:"basis"`          // reservation_addons.basis
    UnitCents     int64  `json:"unit_cents"`     // reservation_addons.unit_cents
    Quantity      int    `json:"quantity"`       // reservation_addons.quantity
    TotalCents    int64  `json:"total_cents"`    // reservation_addons.total_cents
}

// StatusHistoryEntry is one row of a reservation's append-only status
// trail. Every lifecycle transition appends exactly one entry.
type StatusHistoryEntry struct {
    ID            uint64    `json:"id"`              // reservation_status_history.id
    ReservationID uint64    `json:"reservation_id"`  // reservation_status_history.reservation_id
    Status        string    `json:"status"`          // reservation_status_history.status
    Note          *string   `json:"note,omitempty"`  // reservation_status_history.note
    Actor         *string   `json:"actor,omitempty"` // reservation_status_history.actor
    CreatedAt     time.Time `json:"created_at"`      // reservation_status_history.created_at
}

// Cancellation records why and how a reservation was cancelled. Refund
// amounts are computed externally by policy and recorded here verbatim.
type Cancellation struct {
    Policy      string    `json:"policy"`
    RefundCents int64     `json:"refund_cents"`
    CancelledAt time.Time `json:"cancelled_at"`
    Reason      string    `json:"reason"`
}

// Reservation is the booking of a half-open date range [CheckIn, CheckOut)
// against a property. The pricing and payment snapshots are frozen at
// creation time and never recomputed, even if rate plans or add-on prices
// change afterwards.
//
// Fields:
//  ID              – primary key identifier.
//  Reference       – human-readable code, e.g. "RSV-1A2B3C4D".
//  TenantID        – owning tenant.
//  PropertyID      – booked property.
//  GuestID         – external identity of the booking guest.
//  CheckIn         – arrival date, "YYYY-MM-DD".
//  CheckOut        – departure date, exclusive; not an occupied night.
//  Nights          – computed night count.
//  Adults/Children/Infants – guest counts; adults+children count against
//                    the property capacity.
//  Status          – current lifecycle state.
//  Source          – booking channel (direct, phone, walk_in, ...).
//  SubtotalCents.. – pricing snapshot totals in cents.
//  DepositCents..  – payment snapshot.
//  Cancellation    – set only after a cancel transition.
//  NightlyRates    – frozen per-night breakdown.
//  AddOns          – frozen add-on line items.
//  History         – append-only status trail, oldest first.
type Reservation struct {
    ID              uint64               `json:"id"`                     // reservations.id
    Reference       string               `json:"reference"`              // reservations.reference
    TenantID        string               `json:"tenant_id"`              // reservations.tenant_id
    PropertyID      uint64               `json:"property_id"`            // reservations.property_id
    GuestID         string               `json:"guest_id"`               // reservations.guest_id
    CheckIn         string               `json:"check_in"`               // reservations.check_in
    CheckOut        string               `json:"check_out"`              // reservations.check_out
    Nights          int                  `json:"nights"`                 // reservations.nights
    Adults          int                  `json:"adults"`                 // reservations.adults
    Children        int                  `json:"children"`               // reservations.children
    Infants         int                  `json:"infants"`                // reservations.infants
    Status          string               `json:"status"`                 // reservations.status
    Source          string               `json:"source"`                 // reservations.source
    SubtotalCents   int64                `json:"subtotal_cents"`         // reservations.subtotal_cents
    AddOnTotalCents int64                `json:"addon_total_cents"`      // reservations.addon_total_cents
    TaxesCents      int64                `json:"taxes_cents"`            // reservations.taxes_cents
    FeesCents       int64                `json:"fees_cents"`             // reservations.fees_cents
    DiscountCents   int64                `json:"discount_cents"`         // reservations.discount_cents
    TotalCents      int64                `json:"total_cents"`            // reservations.total_cents
    Currency        string               `json:"currency"`               // reservations.currency
    DepositCents    int64                `json:"deposit_cents"`          // reservations.deposit_cents
    DepositPaid     bool                 `json:"deposit_paid"`           // reservations.deposit_paid
    BalanceDueCents int64                `json:"balance_due_cents"`      // reservations.balance_due_cents
    PaymentStatus   string               `json:"payment_status"`         // reservations.payment_status
    Cancellation    *Cancellation        `json:"cancellation,omitempty"` // cancellation columns, nil until cancelled
    SpecialRequests string               `json:"special_requests"`       // reservations.special_requests
    NightlyRates    []ReservationNight   `json:"nightly_rates"`          // reservation_nights rows
    AddOns          []ReservationAddOn   `json:"addons"`                 // reservation_addons rows
    History         []StatusHistoryEntry `json:"history"`                // reservation_status_history rows
    CreatedAt       time.Time            `json:"created_at"`             // reservations.created_at
    UpdatedAt       time.Time            `json:"updated_at"`             // reservations.updated_at
}

// ActiveOnLedger reports whether the reservation's date range should be
// held as booked in the availability ledger. Cancelled stays release their
// nights; a no-show keeps them, the property is considered forfeited.
func (r *Reservation) ActiveOnLedger() bool {
    return r.Status != ReservationStatusCancelled
}
