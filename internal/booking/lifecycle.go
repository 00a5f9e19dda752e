package booking

import (
    "context"
    "log"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/utils"
)

// Actor identifies who is driving a lifecycle transition. Role is either
// RoleOperator or RoleGuest; ID is the subject claim of the caller's
// token.
type Actor struct {
    ID   string
    Role string
}

// Actor roles recognized by the lifecycle authorization rules.
const (
    RoleOperator = "OPERATOR"
    RoleGuest    = "GUEST"
)

// TransitionRequest asks for one status change on a reservation,
// addressed by its reference code.
type TransitionRequest struct {
    TenantID  string
    Reference string
    ToStatus  string
    Note      *string
    Reason    string
    Actor     Actor
}

// Transition moves a reservation through the state machine. Rules:
//
//   - cancel is open to the owning guest and to operators; every other
//     transition is operator-only;
//   - the target must be reachable from the current status, terminal
//     states admit no exit;
//   - cancelling releases the reservation's booked ledger nights and
//     records the cancellation entry;
//   - no_show keeps the nights held, the stay is forfeited, not freed;
//   - every transition appends exactly one history row.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (*model.Reservation, error) {
    if !model.ValidReservationStatus(req.ToStatus) {
        return nil, validationf("unknown reservation status " + req.ToStatus)
    }
    res, err := s.Reservations.GetByReference(ctx, req.TenantID, req.Reference)
    if err != nil {
        return nil, err
    }
    if err := authorizeTransition(res, req.ToStatus, req.Actor); err != nil {
        return nil, err
    }
    if !model.CanTransition(res.Status, req.ToStatus) {
        return nil, &TransitionError{From: res.Status, To: req.ToStatus}
    }

    actor := req.Actor.ID
    var cancellation *model.Cancellation
    if req.ToStatus == model.ReservationStatusCancelled {
        cancellation = &model.Cancellation{
            Policy:      s.cancellationPolicy(ctx, res),
            CancelledAt: s.Now(),
            Reason:      req.Reason,
        }
    }
    if err := s.Reservations.UpdateStatus(ctx, req.TenantID, res.ID, req.ToStatus, req.Note, &actor, cancellation); err != nil {
        return nil, err
    }

    if req.ToStatus == model.ReservationStatusCancelled {
        dates, err := utils.ExpandStayRange(res.CheckIn, res.CheckOut)
        if err != nil {
            return nil, err
        }
        if _, err := s.Availability.Release(ctx, req.TenantID, res.PropertyID, dates, res.ID); err != nil {
            // The status change is already committed and cancelled is
            // terminal, so a failed release strands booked rows in the
            // ledger. The log line carries the reference and range needed
            // to clear them by hand.
            log.Printf("booking: release nights %s..%s for cancelled %s: %v", res.CheckIn, res.CheckOut, res.Reference, err)
        }
    }

    updated, err := s.Reservations.GetByReference(ctx, req.TenantID, req.Reference)
    if err != nil {
        return nil, err
    }
    if req.ToStatus == model.ReservationStatusCancelled && s.Events != nil {
        if err := s.Events.PublishReservationCancelled(updated); err != nil {
            log.Printf("booking: publish reservation.cancelled for %s: %v", res.Reference, err)
        }
    }
    return updated, nil
}

// Cancel is the guest-facing shorthand for a cancel transition.
func (s *Service) Cancel(ctx context.Context, tenantID, reference, reason string, actor Actor) (*model.Reservation, error) {
    return s.Transition(ctx, TransitionRequest{
        TenantID:  tenantID,
        Reference: reference,
        ToStatus:  model.ReservationStatusCancelled,
        Reason:    reason,
        Actor:     actor,
    })
}

// GetReservation loads one reservation for display. Guests may only read
// their own; operators read any within the tenant.
func (s *Service) GetReservation(ctx context.Context, tenantID, reference string, actor Actor) (*model.Reservation, error) {
    res, err := s.Reservations.GetByReference(ctx, tenantID, reference)
    if err != nil {
        return nil, err
    }
    if actor.Role != RoleOperator && res.GuestID != actor.ID {
        return nil, &AuthorizationError{Msg: "reservation belongs to another guest"}
    }
    return res, nil
}

// ListGuestReservations returns the calling guest's reservations.
func (s *Service) ListGuestReservations(ctx context.Context, tenantID, guestID string) ([]model.Reservation, error) {
    return s.Reservations.ListByGuest(ctx, tenantID, guestID)
}

// ListPropertyReservations returns a property's reservations for operator
// views.
func (s *Service) ListPropertyReservations(ctx context.Context, tenantID string, propertyID uint64) ([]model.Reservation, error) {
    return s.Reservations.ListByProperty(ctx, tenantID, propertyID)
}

// authorizeTransition enforces who may drive which transition. The state
// machine shape itself is checked separately.
func authorizeTransition(res *model.Reservation, to string, actor Actor) error {
    if actor.Role == RoleOperator {
        return nil
    }
    if to == model.ReservationStatusCancelled && res.GuestID == actor.ID {
        return nil
    }
    return &AuthorizationError{Msg: "transition requires an operator"}
}

// cancellationPolicy resolves the policy tag recorded on a cancellation.
// The property's configured class wins; a missing property (already
// retired and purged) degrades to the empty tag rather than failing the
// cancellation.
func (s *Service) cancellationPolicy(ctx context.Context, res *model.Reservation) string {
    prop, err := s.Properties.GetByID(ctx, res.TenantID, res.PropertyID)
    if err != nil {
        return ""
    }
    return prop.CancellationPolicy
}
