package model

import "time"

// Ledger statuses. "available" is never stored: any (tenant, property,
// date) without a row is implicitly free, which keeps the ledger sparse.
const (
    LedgerStatusBooked      = "booked"
    LedgerStatusBlocked     = "blocked"
    LedgerStatusMaintenance = "maintenance"
)

// AvailabilityRecord is one night of the per-property occupancy ledger.
// The (TenantID, PropertyID, StayDate) triple is unique in storage; the
// claim path depends on that constraint for its no-double-booking
// guarantee.
//
// Fields:
//  ID                 – primary key identifier.
//  TenantID           – owning tenant.
//  PropertyID         – property whose night this record occupies.
//  StayDate           – plain calendar date, "YYYY-MM-DD", no time part.
//  Status             – booked, blocked or maintenance.
//  ReservationID      – back-reference to the owning reservation when
//                       status is booked; nil otherwise.
//  PriceOverrideCents – optional per-date price shown on the calendar.
//  Note               – optional operator note (block reason etc.).
type AvailabilityRecord struct {
    ID                 uint64    `json:"id"`                             // availability_records.id
    TenantID           string    `json:"tenant_id"`                      // availability_records.tenant_id
    PropertyID         uint64    `json:"property_id"`                    // availability_records.property_id
    StayDate           string    `json:"stay_date"`                      // availability_records.stay_date
    Status             string    `json:"status"`                         // availability_records.status
    ReservationID      *uint64   `json:"reservation_id,omitempty"`       // availability_records.reservation_id
    PriceOverrideCents *int64    `json:"price_override_cents,omitempty"` // availability_records.price_override_cents
    Note               *string   `json:"note,omitempty"`                 // availability_records.note
    CreatedAt          time.Time `json:"created_at"`                     // availability_records.created_at
}
