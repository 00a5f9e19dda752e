package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestTransitionMatrix(t *testing.T) {
    allowed := map[[2]string]bool{
        {ReservationStatusPending, ReservationStatusConfirmed}:    true,
        {ReservationStatusPending, ReservationStatusCancelled}:    true,
        {ReservationStatusPending, ReservationStatusNoShow}:       true,
        {ReservationStatusConfirmed, ReservationStatusCheckedIn}:  true,
        {ReservationStatusConfirmed, ReservationStatusCancelled}:  true,
        {ReservationStatusConfirmed, ReservationStatusNoShow}:     true,
        {ReservationStatusCheckedIn, ReservationStatusCheckedOut}: true,
        {ReservationStatusCheckedIn, ReservationStatusCancelled}:  true,
    }
    all := []string{
        ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn,
        ReservationStatusCheckedOut, ReservationStatusCancelled, ReservationStatusNoShow,
    }
    for _, from := range all {
        for _, to := range all {
            got := CanTransition(from, to)
            want := allowed[[2]string{from, to}]
            assert.Equal(t, want, got, "transition %s -> %s", from, to)
        }
    }
}

func TestTerminalStatesAdmitNoExit(t *testing.T) {
    for _, terminal := range []string{ReservationStatusCheckedOut, ReservationStatusCancelled, ReservationStatusNoShow} {
        for _, to := range []string{ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn, ReservationStatusCancelled} {
            assert.False(t, CanTransition(terminal, to), "%s must be terminal", terminal)
        }
    }
}

func TestActiveOnLedger(t *testing.T) {
    r := Reservation{Status: ReservationStatusNoShow}
    assert.True(t, r.ActiveOnLedger(), "no-show keeps its nights held")

    r.Status = ReservationStatusCancelled
    assert.False(t, r.ActiveOnLedger(), "cancelled releases its nights")

    r.Status = ReservationStatusConfirmed
    assert.True(t, r.ActiveOnLedger())
}

func TestValidReservationStatus(t *testing.T) {
    assert.True(t, ValidReservationStatus("checked_in"))
    assert.False(t, ValidReservationStatus("checkedin"))
    assert.False(t, ValidReservationStatus(""))
}

func TestValidAddOnBasis(t *testing.T) {
    assert.True(t, ValidAddOnBasis("per_night"))
    assert.True(t, ValidAddOnBasis("per_guest"))
    assert.False(t, ValidAddOnBasis("per_week"))
    assert.False(t, ValidAddOnBasis(""))
}

func TestAddOnQuantityByBasis(t *testing.T) {
    perNight := AddOn{Basis: AddOnBasisPerNight}
    perStay := AddOn{Basis: AddOnBasisPerStay}
    perGuest := AddOn{Basis: AddOnBasisPerGuest}

    assert.Equal(t, 3, perNight.Quantity(3, 2))
    assert.Equal(t, 1, perStay.Quantity(3, 2))
    assert.Equal(t, 2, perGuest.Quantity(3, 2))
}

func TestRatePlanCovers(t *testing.T) {
    p := RatePlan{StartDate: "2024-06-01", EndDate: "2024-06-30"}
    assert.True(t, p.Covers("2024-06-01"))
    assert.True(t, p.Covers("2024-06-30"))
    assert.False(t, p.Covers("2024-05-31"))
    assert.False(t, p.Covers("2024-07-01"))
}

func TestPropertyBookable(t *testing.T) {
    p := Property{Active: true, Status: PropertyStatusAvailable}
    assert.True(t, p.Bookable())

    p.Status = PropertyStatusMaintenance
    assert.False(t, p.Bookable())

    p.Status = PropertyStatusAvailable
    p.Active = false
    assert.False(t, p.Bookable())
}
