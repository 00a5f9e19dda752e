package booking

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
)

func TestBlockSkipsOccupiedDates(t *testing.T) {
    svc, ledger, _, _, _, _, _ := testService()
    res := mustBook(t, svc, "guest-1") // nights 06-10 and 06-11

    // Seven dates, two already booked.
    blocked, err := svc.BlockRange(context.Background(), testTenant, 1, "2024-06-08", "2024-06-15", "deep clean")
    require.NoError(t, err)
    assert.Equal(t, int64(5), blocked)

    // The booked nights still belong to the reservation.
    rows, err := ledger.QueryRange(context.Background(), testTenant, 1, "2024-06-10", "2024-06-12")
    require.NoError(t, err)
    require.Len(t, rows, 2)
    for _, r := range rows {
        assert.Equal(t, model.LedgerStatusBooked, r.Status)
        require.NotNil(t, r.ReservationID)
        assert.Equal(t, res.ID, *r.ReservationID)
    }
}

func TestBlockedDatesConflictWithBooking(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()

    _, err := svc.BlockRange(context.Background(), testTenant, 1, "2024-06-10", "2024-06-12", "maintenance")
    require.NoError(t, err)

    _, err = svc.CreateReservation(context.Background(), CreateReservationRequest{
        TenantID: testTenant, GuestID: "guest-1", PropertyID: 1,
        CheckIn: "2024-06-11", CheckOut: "2024-06-13", Adults: 2,
    })
    assert.ErrorIs(t, err, repository.ErrDateConflict)
}

func TestUnblockIsIdempotentAndSparesBookedNights(t *testing.T) {
    svc, ledger, _, _, _, _, _ := testService()
    mustBook(t, svc, "guest-1") // 06-10, 06-11

    _, err := svc.BlockRange(context.Background(), testTenant, 1, "2024-06-08", "2024-06-15", "")
    require.NoError(t, err)

    unblocked, err := svc.UnblockRange(context.Background(), testTenant, 1, "2024-06-08", "2024-06-15")
    require.NoError(t, err)
    assert.Equal(t, int64(5), unblocked)

    // Repeating the call releases nothing further and does not error.
    unblocked, err = svc.UnblockRange(context.Background(), testTenant, 1, "2024-06-08", "2024-06-15")
    require.NoError(t, err)
    assert.Equal(t, int64(0), unblocked)

    rows, err := ledger.QueryRange(context.Background(), testTenant, 1, "2024-06-08", "2024-06-15")
    require.NoError(t, err)
    assert.Len(t, rows, 2, "booked nights survive unblock")
}

func TestBlockUnknownProperty(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()
    _, err := svc.BlockRange(context.Background(), testTenant, 99, "2024-06-10", "2024-06-12", "")
    assert.ErrorIs(t, err, repository.ErrPropertyNotFound)
}

func TestGetCalendarJoinsLedgerAndReservations(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()
    res := mustBook(t, svc, "guest-1") // 06-10, 06-11

    _, err := svc.BlockRange(context.Background(), testTenant, 1, "2024-06-14", "2024-06-16", "painting")
    require.NoError(t, err)

    cal, err := svc.GetCalendar(context.Background(), testTenant, 1, "2024-06-01", "2024-07-01")
    require.NoError(t, err)
    assert.Equal(t, "Pine Cabin", cal.Property.Name)
    require.Len(t, cal.Days, 4)

    byDate := map[string]CalendarDay{}
    for _, d := range cal.Days {
        byDate[d.StayDate] = d
    }
    booked := byDate["2024-06-10"]
    assert.Equal(t, model.LedgerStatusBooked, booked.Status)
    require.NotNil(t, booked.Reservation)
    assert.Equal(t, res.Reference, booked.Reservation.Reference)
    assert.Equal(t, "guest-1", booked.Reservation.GuestID)

    blockedDay := byDate["2024-06-14"]
    assert.Equal(t, model.LedgerStatusBlocked, blockedDay.Status)
    assert.Nil(t, blockedDay.Reservation)
    require.NotNil(t, blockedDay.Note)
    assert.Equal(t, "painting", *blockedDay.Note)
}

func TestGetCalendarValidatesRange(t *testing.T) {
    svc, _, _, _, _, _, _ := testService()
    _, err := svc.GetCalendar(context.Background(), testTenant, 1, "2024-07-01", "2024-06-01")
    var ve *ValidationError
    assert.ErrorAs(t, err, &ve)
}
