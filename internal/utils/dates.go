package utils // package utils provides date arithmetic shared by services and repositories

import (
    "fmt"
    "time"
)

// DateLayout is the only layout stay dates ever use. Dates carry no
// time-of-day and no timezone; with this fixed layout lexical string
// comparison matches chronological order, which the repositories exploit
// in range queries.
const DateLayout = "2006-01-02"

// ParseDate parses a plain YYYY-MM-DD date. The returned time is midnight
// UTC and should only be used for weekday math and day arithmetic, never
// as a wall-clock instant.
func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
    }
    return t, nil
}

// FormatDate renders t as a plain date string, dropping any time part.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}

// ExpandStayRange returns every occupied night of the half-open range
// [checkIn, checkOut): the check-out date itself is not a night and is
// excluded. It errors when either bound fails to parse or when checkOut
// is not strictly after checkIn.
func ExpandStayRange(checkIn, checkOut string) ([]string, error) {
    start, err := ParseDate(checkIn)
    if err != nil {
        return nil, err
    }
    end, err := ParseDate(checkOut)
    if err != nil {
        return nil, err
    }
    if !end.After(start) {
        return nil, fmt.Errorf("check-out %s must be after check-in %s", checkOut, checkIn)
    }
    dates := make([]string, 0, int(end.Sub(start).Hours()/24))
    for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
        dates = append(dates, FormatDate(d))
    }
    return dates, nil
}

// Nights returns the night count of the half-open range [checkIn,
// checkOut). Both bounds must already be valid dates.
func Nights(checkIn, checkOut string) (int, error) {
    dates, err := ExpandStayRange(checkIn, checkOut)
    if err != nil {
        return 0, err
    }
    return len(dates), nil
}

// Weekday returns the weekday of a plain date using time.Weekday
// numbering, 0 for Sunday through 6 for Saturday.
func Weekday(date string) (int, error) {
    t, err := ParseDate(date)
    if err != nil {
        return 0, err
    }
    return int(t.Weekday()), nil
}
