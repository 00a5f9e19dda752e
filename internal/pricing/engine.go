// Package pricing resolves the nightly price of a property stay from its
// date-scoped rate plans. The resolution is pure: given the same plans,
// date and base price it always produces the same quote, so one stay is
// priced by calling PriceNight once per night independently.
package pricing

import (
    "math"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/utils"
)

// Quote is the outcome of pricing a single night. RatePlanName is nil
// when no plan covered the date and the base price applied unmodified.
type Quote struct {
    PriceCents   int64   `json:"price_cents"`
    RatePlanName *string `json:"rate_plan_name,omitempty"`
}

// PriceNight resolves the price of one night:
//
//  1. keep the active plans whose inclusive [start, end] range covers date;
//  2. with no candidate, the property base price applies;
//  3. otherwise the highest-priority plan wins — on a priority tie the
//     most recently created plan (largest ID) wins, a deterministic
//     tie-break the catalog does not otherwise define;
//  4. the winner's weekday modifier, if present for date's weekday, scales
//     the plan price by (1 + percent/100);
//  5. the result is rounded half-up to whole cents.
//
// Plan selection and modifiers are date-local: no stay-level aggregation
// ever feeds back into a night's price.
func PriceNight(plans []model.RatePlan, date string, basePriceCents int64) (Quote, error) {
    weekday, err := utils.Weekday(date)
    if err != nil {
        return Quote{}, err
    }
    winner := SelectPlan(plans, date)
    if winner == nil {
        return Quote{PriceCents: basePriceCents}, nil
    }
    price := winner.NightlyPriceCents
    if pct, ok := winner.ModifierFor(weekday); ok {
        price = roundCents(float64(price) * (1 + pct/100))
    }
    name := winner.Name
    return Quote{PriceCents: price, RatePlanName: &name}, nil
}

// SelectPlan returns the active plan that prices the given date, or nil
// when the base price applies. Highest priority wins; a priority tie goes
// to the largest ID.
func SelectPlan(plans []model.RatePlan, date string) *model.RatePlan {
    var winner *model.RatePlan
    for i := range plans {
        p := &plans[i]
        if !p.Active || !p.Covers(date) {
            continue
        }
        if winner == nil || p.Priority > winner.Priority ||
            (p.Priority == winner.Priority && p.ID > winner.ID) {
            winner = p
        }
    }
    return winner
}

// roundCents rounds to the nearest whole cent, halves away from zero.
func roundCents(v float64) int64 {
    return int64(math.Round(v))
}
