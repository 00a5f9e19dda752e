package booking

import (
    "context"
    "errors"
    "log"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/pricing"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
    "github.com/iliyamo/property-stay-reservation/internal/utils"
)

// CreateReservationRequest is the validated input of CreateReservation.
// TenantID and GuestID come from the caller's token, never the body.
type CreateReservationRequest struct {
    TenantID        string
    GuestID         string
    PropertyID      uint64
    CheckIn         string
    CheckOut        string
    Adults          int
    Children        int
    Infants         int
    AddOnIDs        []uint64
    Source          string
    SpecialRequests string
}

// AvailabilityQuery filters the public availability search. PropertyID
// narrows the search to one unit when non-nil.
type AvailabilityQuery struct {
    TenantID   string
    PropertyID *uint64
    CheckIn    string
    CheckOut   string
    Guests     int
}

// PropertyQuote is one availability search hit: a conflict-free property
// priced for the requested stay.
type PropertyQuote struct {
    Property      model.Property           `json:"property"`
    Nights        []model.ReservationNight `json:"nights"`
    SubtotalCents int64                    `json:"subtotal_cents"`
    Currency      string                   `json:"currency"`
}

// CheckAvailability prices every property that can host the requested
// stay. Properties with any conflicting ledger record, insufficient
// capacity or an incompatible stay-length policy are skipped silently; an
// empty result is an answer, not an error.
func (s *Service) CheckAvailability(ctx context.Context, q AvailabilityQuery) ([]PropertyQuote, error) {
    dates, err := utils.ExpandStayRange(q.CheckIn, q.CheckOut)
    if err != nil {
        return nil, validationf(err.Error())
    }
    if q.Guests < 1 {
        return nil, validationf("guest count must be at least 1")
    }

    var candidates []model.Property
    if q.PropertyID != nil {
        p, err := s.Properties.GetByID(ctx, q.TenantID, *q.PropertyID)
        if errors.Is(err, repository.ErrPropertyNotFound) {
            // A filter that matches nothing is a no-match, same as a
            // fully booked calendar.
            return []PropertyQuote{}, nil
        }
        if err != nil {
            return nil, err
        }
        candidates = []model.Property{*p}
    } else {
        candidates, err = s.Properties.List(ctx, q.TenantID, true)
        if err != nil {
            return nil, err
        }
    }

    nights := len(dates)
    out := make([]PropertyQuote, 0, len(candidates))
    for i := range candidates {
        p := &candidates[i]
        if !p.Bookable() || int(p.Capacity) < q.Guests {
            continue
        }
        if nights < int(p.MinStay) || (p.MaxStay > 0 && nights > int(p.MaxStay)) {
            continue
        }
        records, err := s.Availability.QueryRange(ctx, q.TenantID, p.ID, q.CheckIn, q.CheckOut)
        if err != nil {
            return nil, err
        }
        if len(records) > 0 {
            continue
        }
        plans, err := s.RatePlans.ListForStay(ctx, q.TenantID, p.ID, q.CheckIn, q.CheckOut)
        if err != nil {
            return nil, err
        }
        // A quote must survive the booking path's rules, including the
        // winning plan's own minimum stay.
        if planMinStayViolated(plans, dates, nights) {
            continue
        }
        breakdown, subtotal, err := priceStay(plans, dates, p.BasePriceCents)
        if err != nil {
            return nil, err
        }
        out = append(out, PropertyQuote{
            Property:      *p,
            Nights:        breakdown,
            SubtotalCents: subtotal,
            Currency:      p.Currency,
        })
    }
    return out, nil
}

// CreateReservation books a stay end to end: validate, price, freeze the
// snapshot, persist the pending reservation, then claim the ledger. The
// claim comes last on purpose — its unique key is the only authority on
// conflicts, and a reservation whose claim loses is deleted immediately so
// neither a half-claimed ledger nor an orphaned reservation survives.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*model.Reservation, error) {
    dates, err := utils.ExpandStayRange(req.CheckIn, req.CheckOut)
    if err != nil {
        return nil, validationf(err.Error())
    }
    today := utils.FormatDate(s.Now())
    if req.CheckIn < today {
        return nil, validationf("check-in date is in the past")
    }
    if req.Adults < 1 {
        return nil, validationf("at least one adult is required")
    }
    if req.Children < 0 || req.Infants < 0 {
        return nil, validationf("guest counts cannot be negative")
    }

    prop, err := s.Properties.GetByID(ctx, req.TenantID, req.PropertyID)
    if err != nil {
        return nil, err
    }
    if !prop.Bookable() {
        return nil, validationf("property is not open for booking")
    }
    nights := len(dates)
    if nights < int(prop.MinStay) {
        return nil, validationf("stay is shorter than the property minimum")
    }
    if prop.MaxStay > 0 && nights > int(prop.MaxStay) {
        return nil, validationf("stay exceeds the property maximum")
    }
    if req.Adults+req.Children > int(prop.Capacity) {
        return nil, validationf("party exceeds the property capacity")
    }

    // Pre-check before pricing: a conflicted range fails fast without the
    // pricing work. The claim below remains the real guarantee.
    records, err := s.Availability.QueryRange(ctx, req.TenantID, req.PropertyID, req.CheckIn, req.CheckOut)
    if err != nil {
        return nil, err
    }
    if len(records) > 0 {
        return nil, repository.ErrDateConflict
    }

    plans, err := s.RatePlans.ListForStay(ctx, req.TenantID, req.PropertyID, req.CheckIn, req.CheckOut)
    if err != nil {
        return nil, err
    }
    if planMinStayViolated(plans, dates, nights) {
        return nil, validationf("stay is shorter than the rate plan minimum")
    }
    breakdown, subtotal, err := priceStay(plans, dates, prop.BasePriceCents)
    if err != nil {
        return nil, err
    }

    addonLines, addonTotal, err := s.resolveAddOns(ctx, req.TenantID, req.AddOnIDs, nights, req.Adults)
    if err != nil {
        return nil, err
    }

    total := subtotal + addonTotal
    deposit := total * 20 / 100
    source := req.Source
    if source == "" {
        source = "direct"
    }
    actor := req.GuestID
    res := &model.Reservation{
        Reference:       utils.NewReservationReference(),
        TenantID:        req.TenantID,
        PropertyID:      req.PropertyID,
        GuestID:         req.GuestID,
        CheckIn:         req.CheckIn,
        CheckOut:        req.CheckOut,
        Nights:          nights,
        Adults:          req.Adults,
        Children:        req.Children,
        Infants:         req.Infants,
        Status:          model.ReservationStatusPending,
        Source:          source,
        SubtotalCents:   subtotal,
        AddOnTotalCents: addonTotal,
        TotalCents:      total,
        Currency:        prop.Currency,
        DepositCents:    deposit,
        BalanceDueCents: total,
        PaymentStatus:   model.PaymentStatusUnpaid,
        SpecialRequests: req.SpecialRequests,
        NightlyRates:    breakdown,
        AddOns:          addonLines,
        History: []model.StatusHistoryEntry{
            {Status: model.ReservationStatusPending, Actor: &actor},
        },
    }
    if err := s.Reservations.Create(ctx, res); err != nil {
        return nil, err
    }

    if err := s.Availability.Claim(ctx, req.TenantID, req.PropertyID, dates, res.ID); err != nil {
        // A lost or failed claim leaves nothing behind: release whatever
        // rows may have landed, then delete the reservation.
        if _, relErr := s.Availability.Release(ctx, req.TenantID, req.PropertyID, dates, res.ID); relErr != nil {
            log.Printf("booking: release after failed claim for %s: %v", res.Reference, relErr)
        }
        if delErr := s.Reservations.Delete(ctx, req.TenantID, res.ID); delErr != nil {
            log.Printf("booking: delete after failed claim for %s: %v", res.Reference, delErr)
        }
        return nil, err
    }

    if s.Events != nil {
        if err := s.Events.PublishReservationCreated(res); err != nil {
            log.Printf("booking: publish reservation.created for %s: %v", res.Reference, err)
        }
    }
    return res, nil
}

// resolveAddOns turns the requested add-on IDs into frozen line items.
// Duplicate IDs collapse to one line; any unknown or inactive ID fails the
// whole booking with ErrAddOnNotFound.
func (s *Service) resolveAddOns(ctx context.Context, tenantID string, ids []uint64, nights, adults int) ([]model.ReservationAddOn, int64, error) {
    if len(ids) == 0 {
        return []model.ReservationAddOn{}, 0, nil
    }
    seen := make(map[uint64]struct{}, len(ids))
    unique := make([]uint64, 0, len(ids))
    for _, id := range ids {
        if _, ok := seen[id]; ok {
            continue
        }
        seen[id] = struct{}{}
        unique = append(unique, id)
    }
    addons, err := s.AddOns.GetActiveByIDs(ctx, tenantID, unique)
    if err != nil {
        return nil, 0, err
    }
    lines := make([]model.ReservationAddOn, 0, len(addons))
    var total int64
    for i := range addons {
        a := &addons[i]
        qty := a.Quantity(nights, adults)
        line := model.ReservationAddOn{
            AddOnID:    a.ID,
            Name:       a.Name,
            Basis:      a.Basis,
            UnitCents:  a.PriceCents,
            Quantity:   qty,
            TotalCents: a.PriceCents * int64(qty),
        }
        total += line.TotalCents
        lines = append(lines, line)
    }
    return lines, total, nil
}

// planMinStayViolated reports whether any night's winning rate plan
// demands a longer stay than the one requested.
func planMinStayViolated(plans []model.RatePlan, dates []string, nights int) bool {
    for _, d := range dates {
        if plan := pricing.SelectPlan(plans, d); plan != nil && plan.MinStay > 0 && nights < int(plan.MinStay) {
            return true
        }
    }
    return false
}

// priceStay prices each night of an expanded date range independently and
// returns the frozen breakdown plus the stay subtotal.
func priceStay(plans []model.RatePlan, dates []string, basePriceCents int64) ([]model.ReservationNight, int64, error) {
    breakdown := make([]model.ReservationNight, 0, len(dates))
    var subtotal int64
    for _, d := range dates {
        quote, err := pricing.PriceNight(plans, d, basePriceCents)
        if err != nil {
            return nil, 0, err
        }
        breakdown = append(breakdown, model.ReservationNight{
            StayDate:       d,
            BasePriceCents: basePriceCents,
            PriceCents:     quote.PriceCents,
            RatePlanName:   quote.RatePlanName,
        })
        subtotal += quote.PriceCents
    }
    return breakdown, subtotal, nil
}
