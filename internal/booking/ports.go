// Package booking orchestrates reservations over the availability ledger:
// stay validation, pricing snapshots, the claim-after-persist sequence,
// the lifecycle state machine and the operator calendar. The package
// depends on small storage ports rather than the MySQL repositories
// directly so the business rules can be exercised against in-memory
// implementations.
package booking

import (
    "context"
    "time"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// AvailabilityStore is the ledger surface the services require. The
// production implementation is repository.AvailabilityRepo.
type AvailabilityStore interface {
    QueryRange(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.AvailabilityRecord, error)
    Claim(ctx context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) error
    Release(ctx context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) (int64, error)
    Block(ctx context.Context, tenantID string, propertyID uint64, dates []string, note string) (int64, error)
    Unblock(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) (int64, error)
}

// ReservationStore persists reservation aggregates and lifecycle updates.
type ReservationStore interface {
    Create(ctx context.Context, res *model.Reservation) error
    Delete(ctx context.Context, tenantID string, id uint64) error
    GetByReference(ctx context.Context, tenantID, reference string) (*model.Reservation, error)
    ListByGuest(ctx context.Context, tenantID, guestID string) ([]model.Reservation, error)
    ListByProperty(ctx context.Context, tenantID string, propertyID uint64) ([]model.Reservation, error)
    ListOverlapping(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.Reservation, error)
    UpdateStatus(ctx context.Context, tenantID string, id uint64, status string, note, actor *string, cancellation *model.Cancellation) error
}

// PropertyStore reads the booking-relevant slice of the property catalog.
type PropertyStore interface {
    GetByID(ctx context.Context, tenantID string, id uint64) (*model.Property, error)
    List(ctx context.Context, tenantID string, activeOnly bool) ([]model.Property, error)
}

// RatePlanStore supplies the candidate plans for a stay window.
type RatePlanStore interface {
    ListForStay(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.RatePlan, error)
}

// AddOnStore resolves the add-ons a guest selected at booking time.
type AddOnStore interface {
    GetActiveByIDs(ctx context.Context, tenantID string, ids []uint64) ([]model.AddOn, error)
}

// EventPublisher emits reservation lifecycle events to the broker. A nil
// publisher disables events; broker failures never fail the booking, they
// are logged and dropped.
type EventPublisher interface {
    PublishReservationCreated(res *model.Reservation) error
    PublishReservationCancelled(res *model.Reservation) error
}

// Service wires the storage ports together with an injectable clock. The
// clock exists so past-date validation is deterministic under test.
type Service struct {
    Availability AvailabilityStore
    Reservations ReservationStore
    Properties   PropertyStore
    RatePlans    RatePlanStore
    AddOns       AddOnStore
    Events       EventPublisher
    Now          func() time.Time
}

// NewService builds a Service over the given ports with a wall clock.
func NewService(av AvailabilityStore, rs ReservationStore, ps PropertyStore, rp RatePlanStore, ao AddOnStore, ev EventPublisher) *Service {
    return &Service{
        Availability: av,
        Reservations: rs,
        Properties:   ps,
        RatePlans:    rp,
        AddOns:       ao,
        Events:       ev,
        Now:          time.Now,
    }
}
