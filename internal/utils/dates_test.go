package utils

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestExpandStayRangeHalfOpen(t *testing.T) {
    dates, err := ExpandStayRange("2024-06-01", "2024-06-03")
    require.NoError(t, err)
    // Two nights: the check-out date itself is not occupied.
    assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, dates)
}

func TestExpandStayRangeSingleNight(t *testing.T) {
    dates, err := ExpandStayRange("2024-06-01", "2024-06-02")
    require.NoError(t, err)
    assert.Equal(t, []string{"2024-06-01"}, dates)
}

func TestExpandStayRangeCrossesMonthBoundary(t *testing.T) {
    dates, err := ExpandStayRange("2024-01-30", "2024-02-02")
    require.NoError(t, err)
    assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01"}, dates)
}

func TestExpandStayRangeRejectsBadOrder(t *testing.T) {
    _, err := ExpandStayRange("2024-06-03", "2024-06-01")
    assert.Error(t, err)

    // Equal bounds mean zero nights, which is not a stay.
    _, err = ExpandStayRange("2024-06-01", "2024-06-01")
    assert.Error(t, err)
}

func TestExpandStayRangeRejectsMalformedDates(t *testing.T) {
    _, err := ExpandStayRange("01-06-2024", "2024-06-03")
    assert.Error(t, err)
    _, err = ExpandStayRange("2024-06-01", "not-a-date")
    assert.Error(t, err)
}

func TestNights(t *testing.T) {
    n, err := Nights("2024-06-01", "2024-06-08")
    require.NoError(t, err)
    assert.Equal(t, 7, n)
}

func TestWeekdayNumbering(t *testing.T) {
    // 2024-06-02 was a Sunday.
    wd, err := Weekday("2024-06-02")
    require.NoError(t, err)
    assert.Equal(t, 0, wd)

    // 2024-06-08 was a Saturday.
    wd, err = Weekday("2024-06-08")
    require.NoError(t, err)
    assert.Equal(t, 6, wd)
}

func TestFormatDateDropsTimePart(t *testing.T) {
    ts := time.Date(2024, 6, 1, 23, 59, 1, 0, time.UTC)
    assert.Equal(t, "2024-06-01", FormatDate(ts))
}

func TestNewReservationReferenceShape(t *testing.T) {
    ref := NewReservationReference()
    require.True(t, strings.HasPrefix(ref, "RSV-"))
    assert.Len(t, ref, 12)
    assert.Equal(t, strings.ToUpper(ref), ref)
}
