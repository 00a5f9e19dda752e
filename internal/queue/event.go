// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for reservation lifecycle events.
const (
    ReservationCreatedQueue   = "reservation.created"
    ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationCreatedEvent is published when a reservation is successfully
// booked and its ledger claim committed. It carries enough of the frozen
// snapshot for downstream consumers to log, notify, or feed analytics
// without querying the primary database.
type ReservationCreatedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    Reference     string `json:"reference"`
    TenantID      string `json:"tenant_id"`
    PropertyID    uint64 `json:"property_id"`
    GuestID       string `json:"guest_id"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
    Nights        int    `json:"nights"`
    Adults        int    `json:"adults"`
    Children      int    `json:"children"`
    TotalCents    int64  `json:"total_cents"`
    DepositCents  int64  `json:"deposit_cents"`
    Currency      string `json:"currency"`
    CreatedAt     string `json:"created_at"`
}

// ReservationCancelledEvent is published after a cancel transition commits
// and the reservation's nights have been released back to the ledger.
type ReservationCancelledEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    Reference     string `json:"reference"`
    TenantID      string `json:"tenant_id"`
    PropertyID    uint64 `json:"property_id"`
    GuestID       string `json:"guest_id"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
    RefundCents   int64  `json:"refund_cents"`
    Reason        string `json:"reason,omitempty"`
    CancelledAt   string `json:"cancelled_at"`
}
