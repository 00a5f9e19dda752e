package model

import "time"

// RatePlan is a date-scoped pricing override for a property. Plans may
// overlap; the engine resolves a single winner per night by priority.
// Plans never auto-expire, they simply stop matching once their range is
// in the past.
//
// Fields:
//  ID                – primary key identifier; also the tie-break when two
//                      plans share a priority (larger ID, i.e. the most
//                      recently created plan, wins).
//  TenantID          – owning tenant.
//  PropertyID        – property the plan prices.
//  Name              – operator-facing label, copied into pricing snapshots.
//  StartDate         – first date covered, inclusive, "YYYY-MM-DD".
//  EndDate           – last date covered, inclusive, "YYYY-MM-DD".
//  NightlyPriceCents – plan price per night in cents, before modifiers.
//  Currency          – ISO 4217 currency code.
//  Priority          – higher wins when ranges overlap.
//  MinStay           – optional minimum-stay override (0 = none).
//  Active            – inactive plans are ignored by the engine.
//  Modifiers         – weekday percentage adjustments.
type RatePlan struct {
    ID                uint64             `json:"id"`                  // rate_plans.id
    TenantID          string             `json:"tenant_id"`           // rate_plans.tenant_id
    PropertyID        uint64             `json:"property_id"`         // rate_plans.property_id
    Name              string             `json:"name"`                // rate_plans.name
    StartDate         string             `json:"start_date"`          // rate_plans.start_date
    EndDate           string             `json:"end_date"`            // rate_plans.end_date
    NightlyPriceCents int64              `json:"nightly_price_cents"` // rate_plans.nightly_price_cents
    Currency          string             `json:"currency"`            // rate_plans.currency
    Priority          int32              `json:"priority"`            // rate_plans.priority
    MinStay           uint32             `json:"min_stay"`            // rate_plans.min_stay (0 = no override)
    Active            bool               `json:"active"`              // rate_plans.is_active
    Modifiers         []RatePlanModifier `json:"modifiers"`           // rate_plan_modifiers rows
    CreatedAt         time.Time          `json:"created_at"`          // rate_plans.created_at
    UpdatedAt         time.Time          `json:"updated_at"`          // rate_plans.updated_at
}

// RatePlanModifier adjusts a plan's nightly price on a given weekday by a
// signed percentage, e.g. +20 makes Saturdays cost 1.2x the plan price.
// Weekday follows time.Weekday numbering: 0 is Sunday, 6 is Saturday.
type RatePlanModifier struct {
    ID         uint64  `json:"id"`           // rate_plan_modifiers.id
    RatePlanID uint64  `json:"rate_plan_id"` // rate_plan_modifiers.rate_plan_id
    Weekday    int     `json:"weekday"`      // rate_plan_modifiers.weekday (0=Sunday)
    Percent    float64 `json:"percent"`      // rate_plan_modifiers.percent (signed)
}

// Covers reports whether the plan's inclusive date range contains the
// given plain date. Dates are compared lexically, which is chronological
// for the fixed YYYY-MM-DD layout.
func (p *RatePlan) Covers(date string) bool {
    return p.StartDate <= date && date <= p.EndDate
}

// ModifierFor returns the percentage modifier for the given weekday and
// whether one exists. The modifier set is bounded at seven entries, so a
// linear scan is fine.
func (p *RatePlan) ModifierFor(weekday int) (float64, bool) {
    for _, m := range p.Modifiers {
        if m.Weekday == weekday {
            return m.Percent, true
        }
    }
    return 0, false
}
