package booking

import (
    "context"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/utils"
)

// BlockRange marks the half-open [startDate, endDate) range of a property
// as blocked and returns how many dates were newly blocked. Dates already
// occupied — booked, blocked or under maintenance — are skipped one by
// one, never overwritten; callers compare the returned count against the
// range length to see how much took effect.
func (s *Service) BlockRange(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate, note string) (int64, error) {
    dates, err := utils.ExpandStayRange(startDate, endDate)
    if err != nil {
        return 0, validationf(err.Error())
    }
    if _, err := s.Properties.GetByID(ctx, tenantID, propertyID); err != nil {
        return 0, err
    }
    return s.Availability.Block(ctx, tenantID, propertyID, dates, note)
}

// UnblockRange removes operator blocks from [startDate, endDate) and
// returns the number of dates freed. Only blocked rows are touched, so
// booked nights survive and repeating the call is harmless.
func (s *Service) UnblockRange(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) (int64, error) {
    if _, err := utils.ExpandStayRange(startDate, endDate); err != nil {
        return 0, validationf(err.Error())
    }
    if _, err := s.Properties.GetByID(ctx, tenantID, propertyID); err != nil {
        return 0, err
    }
    return s.Availability.Unblock(ctx, tenantID, propertyID, startDate, endDate)
}

// CalendarDay is one occupied date on the operator calendar. Reservation
// is attached only to booked dates, and only as a summary.
type CalendarDay struct {
    StayDate           string              `json:"stay_date"`
    Status             string              `json:"status"`
    Note               *string             `json:"note,omitempty"`
    PriceOverrideCents *int64              `json:"price_override_cents,omitempty"`
    Reservation        *ReservationSummary `json:"reservation,omitempty"`
}

// ReservationSummary is the slice of a reservation shown inline on the
// calendar.
type ReservationSummary struct {
    Reference string `json:"reference"`
    GuestID   string `json:"guest_id"`
    CheckIn   string `json:"check_in"`
    CheckOut  string `json:"check_out"`
    Status    string `json:"status"`
    Adults    int    `json:"adults"`
    Children  int    `json:"children"`
}

// Calendar is the read-only occupancy view of one property over a range.
// Dates absent from Days are free.
type Calendar struct {
    Property model.Property `json:"property"`
    Start    string         `json:"start"`
    End      string         `json:"end"`
    Days     []CalendarDay  `json:"days"`
}

// GetCalendar joins the ledger with the property and its overlapping
// reservations into a display view. It never mutates anything; stale
// cached copies are acceptable because every booking decision re-checks
// the ledger.
func (s *Service) GetCalendar(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) (*Calendar, error) {
    if _, err := utils.ExpandStayRange(startDate, endDate); err != nil {
        return nil, validationf(err.Error())
    }
    prop, err := s.Properties.GetByID(ctx, tenantID, propertyID)
    if err != nil {
        return nil, err
    }
    records, err := s.Availability.QueryRange(ctx, tenantID, propertyID, startDate, endDate)
    if err != nil {
        return nil, err
    }
    overlapping, err := s.Reservations.ListOverlapping(ctx, tenantID, propertyID, startDate, endDate)
    if err != nil {
        return nil, err
    }
    byID := make(map[uint64]*model.Reservation, len(overlapping))
    for i := range overlapping {
        byID[overlapping[i].ID] = &overlapping[i]
    }

    days := make([]CalendarDay, 0, len(records))
    for _, rec := range records {
        day := CalendarDay{
            StayDate:           rec.StayDate,
            Status:             rec.Status,
            Note:               rec.Note,
            PriceOverrideCents: rec.PriceOverrideCents,
        }
        if rec.ReservationID != nil {
            if res, ok := byID[*rec.ReservationID]; ok {
                day.Reservation = &ReservationSummary{
                    Reference: res.Reference,
                    GuestID:   res.GuestID,
                    CheckIn:   res.CheckIn,
                    CheckOut:  res.CheckOut,
                    Status:    res.Status,
                    Adults:    res.Adults,
                    Children:  res.Children,
                }
            }
        }
        days = append(days, day)
    }
    return &Calendar{Property: *prop, Start: startDate, End: endDate, Days: days}, nil
}
