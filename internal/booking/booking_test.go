package booking

import (
    "context"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
)

func TestCreateReservationFreezesSnapshot(t *testing.T) {
    svc, ledger, _, _, plans, addons, events := testService()
    plans.plans = []model.RatePlan{{
        ID: 1, TenantID: testTenant, PropertyID: 1, Name: "summer",
        StartDate: "2024-06-01", EndDate: "2024-08-31",
        NightlyPriceCents: 12000, Priority: 1, Active: true,
    }}
    addons.byID[10] = model.AddOn{ID: 10, TenantID: testTenant, Name: "Breakfast", PriceCents: 1500, Basis: model.AddOnBasisPerNight, Active: true}
    addons.byID[11] = model.AddOn{ID: 11, TenantID: testTenant, Name: "Airport pickup", PriceCents: 4000, Basis: model.AddOnBasisPerStay, Active: true}

    res, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID:   testTenant,
        GuestID:    "guest-1",
        PropertyID: 1,
        CheckIn:    "2024-06-10",
        CheckOut:   "2024-06-12",
        Adults:     2,
        AddOnIDs:   []uint64{10, 11},
    })
    require.NoError(t, err)

    assert.Equal(t, model.ReservationStatusPending, res.Status)
    assert.Equal(t, 2, res.Nights)
    require.Len(t, res.NightlyRates, 2)
    assert.Equal(t, int64(12000), res.NightlyRates[0].PriceCents)
    assert.Equal(t, int64(10000), res.NightlyRates[0].BasePriceCents)

    // subtotal 24000, breakfast 2x1500, pickup 4000 once.
    assert.Equal(t, int64(24000), res.SubtotalCents)
    assert.Equal(t, int64(7000), res.AddOnTotalCents)
    assert.Equal(t, int64(31000), res.TotalCents)
    assert.Equal(t, int64(6200), res.DepositCents, "deposit is 20% of total")
    assert.Equal(t, int64(31000), res.BalanceDueCents)
    assert.Equal(t, model.PaymentStatusUnpaid, res.PaymentStatus)
    assert.False(t, res.DepositPaid)

    // Both nights are claimed and back-reference the reservation.
    rows, err := ledger.QueryRange(context.Background(), testTenant, 1, "2024-06-10", "2024-06-12")
    require.NoError(t, err)
    require.Len(t, rows, 2)
    for _, r := range rows {
        assert.Equal(t, model.LedgerStatusBooked, r.Status)
        require.NotNil(t, r.ReservationID)
        assert.Equal(t, res.ID, *r.ReservationID)
    }

    require.Len(t, res.History, 1)
    assert.Equal(t, model.ReservationStatusPending, res.History[0].Status)
    assert.Equal(t, []string{res.Reference}, events.created)
}

func TestCreateReservationBasePriceOnly(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    res, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID:   testTenant,
        GuestID:    "guest-1",
        PropertyID: 1,
        CheckIn:    "2024-06-01",
        CheckOut:   "2024-06-03",
        Adults:     2,
    })
    require.NoError(t, err)
    require.Len(t, res.NightlyRates, 2)
    for _, n := range res.NightlyRates {
        assert.Equal(t, int64(10000), n.PriceCents)
        assert.Nil(t, n.RatePlanName)
    }
    assert.Equal(t, int64(20000), res.SubtotalCents)
}

func TestCreateReservationValidation(t *testing.T) {
    svc, _, _, props, plans, _, _ := testService()

    cases := []struct {
        name string
        req  CreateReservationRequest
    }{
        {"check-out before check-in", CreateReservationRequest{TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-06-12", CheckOut: "2024-06-10", Adults: 1}},
        {"zero-night stay", CreateReservationRequest{TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-10", Adults: 1}},
        {"past check-in", CreateReservationRequest{TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-04-01", CheckOut: "2024-04-03", Adults: 1}},
        {"no adults", CreateReservationRequest{TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12"}},
        {"over capacity", CreateReservationRequest{TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 3, Children: 2}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := svc.CreateReservation(context.Background(), tc.req)
            var ve *ValidationError
            assert.ErrorAs(t, err, &ve)
        })
    }

    // Unknown property is not-found, not a validation failure.
    _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "g", PropertyID: 99, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 1,
    })
    assert.ErrorIs(t, err, repository.ErrPropertyNotFound)

    // Retired properties refuse bookings.
    retired := props.byID[1]
    retired.ID = 3
    retired.Status = model.PropertyStatusRetired
    props.byID[3] = retired
    _, err = svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "g", PropertyID: 3, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 1,
    })
    var ve *ValidationError
    assert.ErrorAs(t, err, &ve)

    // A winning plan's min-stay override binds even when the property's
    // own minimum allows the stay.
    plans.plans = []model.RatePlan{{
        ID: 1, TenantID: testTenant, PropertyID: 1, Name: "week-only",
        StartDate: "2024-06-01", EndDate: "2024-08-31",
        NightlyPriceCents: 9000, Priority: 5, MinStay: 7, Active: true,
    }}
    _, err = svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "g", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 1,
    })
    assert.ErrorAs(t, err, &ve)
}

func TestCreateReservationConflictOnPreCheck(t *testing.T) {
    svc, _, reservations, _, _, _, _ := testService()

    _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-1", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-13", Adults: 2,
    })
    require.NoError(t, err)

    // Overlaps the middle night only; still a conflict.
    _, err = svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-2", PropertyID: 1, CheckIn: "2024-06-12", CheckOut: "2024-06-14", Adults: 2,
    })
    assert.ErrorIs(t, err, repository.ErrDateConflict)

    reservations.mu.Lock()
    assert.Len(t, reservations.byID, 1, "losing attempt leaves no reservation behind")
    reservations.mu.Unlock()
}

func TestBackToBackStaysDoNotConflict(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-1", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 2,
    })
    require.NoError(t, err)

    // Check-in on the previous guest's check-out day: half-open ranges
    // make this legal.
    _, err = svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-2", PropertyID: 1, CheckIn: "2024-06-12", CheckOut: "2024-06-14", Adults: 2,
    })
    assert.NoError(t, err)
}

func TestClaimRaceDeletesLosingReservation(t *testing.T) {
    svc, ledger, reservations, _, _, _, events := testService()

    // A competitor claims the same range after the loser's pre-check
    // passes but before its claim runs.
    ledger.beforeClaim = func() {
        winner := uint64(999)
        require.NoError(t, ledger.Claim(context.Background(), testTenant, 1, []string{"2024-06-10", "2024-06-11"}, winner))
    }

    _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-1", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 2,
    })
    assert.ErrorIs(t, err, repository.ErrDateConflict)

    reservations.mu.Lock()
    assert.Empty(t, reservations.byID, "loser's reservation is deleted")
    reservations.mu.Unlock()
    assert.Empty(t, events.created, "no event for a failed booking")

    // The winner's claim is untouched.
    rows, err := ledger.QueryRange(context.Background(), testTenant, 1, "2024-06-10", "2024-06-12")
    require.NoError(t, err)
    assert.Len(t, rows, 2)
}

func TestConcurrentClaimsAdmitOneWinner(t *testing.T) {
    svc, ledger, reservations, _, _, _, _ := testService()

    const attempts = 16
    var wg sync.WaitGroup
    errs := make([]error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.CreateReservation(context.Background(), CreateReservationRequest{
                TenantID: testTenant, GuestID: "guest-1", PropertyID: 1,
                CheckIn: "2024-06-10", CheckOut: "2024-06-13", Adults: 2,
            })
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range errs {
        if err == nil {
            wins++
        } else {
            assert.ErrorIs(t, err, repository.ErrDateConflict)
        }
    }
    assert.Equal(t, 1, wins, "exactly one concurrent attempt may win")

    reservations.mu.Lock()
    assert.Len(t, reservations.byID, 1)
    reservations.mu.Unlock()

    rows, err := ledger.QueryRange(context.Background(), testTenant, 1, "2024-06-10", "2024-06-13")
    require.NoError(t, err)
    assert.Len(t, rows, 3)
}

func TestCheckAvailabilitySkipsConflictedProperties(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-1", PropertyID: 1, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Adults: 2,
    })
    require.NoError(t, err)

    quotes, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
        TenantID: testTenant, CheckIn: "2024-06-11", CheckOut: "2024-06-13", Guests: 2,
    })
    require.NoError(t, err)
    require.Len(t, quotes, 1, "the booked cabin is omitted")
    assert.Equal(t, uint64(2), quotes[0].Property.ID)
    assert.Equal(t, int64(50000), quotes[0].SubtotalCents)
}

func TestCheckAvailabilityEmptyResultIsNotAnError(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    quotes, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
        TenantID: testTenant, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Guests: 20,
    })
    require.NoError(t, err)
    assert.Empty(t, quotes)
}

func TestCheckAvailabilityUnknownFilterIsEmptyNotNotFound(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    // A filter naming a property that does not exist matches nothing;
    // search answers with an empty list, never an error.
    missing := uint64(99)
    quotes, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
        TenantID: testTenant, PropertyID: &missing, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Guests: 2,
    })
    require.NoError(t, err)
    assert.Empty(t, quotes)
}

func TestCheckAvailabilitySkipsPlanMinStayViolations(t *testing.T) {
    svc, _, _, _, plans, _, _ := testService()

    // The cabin's winning plan demands a week; a two-night search must
    // not quote it, or the quote would die at booking time.
    plans.plans = []model.RatePlan{{
        ID: 1, TenantID: testTenant, PropertyID: 1, Name: "week-only",
        StartDate: "2024-06-01", EndDate: "2024-08-31",
        NightlyPriceCents: 9000, Priority: 5, MinStay: 7, Active: true,
    }}

    quotes, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
        TenantID: testTenant, CheckIn: "2024-06-10", CheckOut: "2024-06-12", Guests: 2,
    })
    require.NoError(t, err)
    require.Len(t, quotes, 1, "only the unconstrained villa is quoted")
    assert.Equal(t, uint64(2), quotes[0].Property.ID)

    // A stay long enough for the plan brings the cabin back.
    quotes, err = svc.CheckAvailability(context.Background(), AvailabilityQuery{
        TenantID: testTenant, CheckIn: "2024-06-10", CheckOut: "2024-06-17", Guests: 2,
    })
    require.NoError(t, err)
    assert.Len(t, quotes, 2)
}
