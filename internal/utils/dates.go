package utils

import (
    "errors"
    "time"
)

// DayLayout is the wire format for booking dates: ISO calendar days.
const DayLayout = "2006-01-02"

var (
    // ErrBadDate is returned when a date string is not a valid ISO day.
    ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")
    // ErrBadRange is returned when the end of a range precedes its start.
    ErrBadRange = errors.New("end date before start date")
)

// ParseDay parses an ISO calendar day in UTC.
func ParseDay(s string) (time.Time, error) {
    t, err := time.Parse(DayLayout, s)
    if err != nil {
        return time.Time{}, ErrBadDate
    }
    return t.UTC(), nil
}

// ExpandDateRange returns every day of the inclusive range [start, end] as
// ISO day strings.  This is the list appended to a space's blocked dates
// when a booking is confirmed, and removed again on cancellation.
func ExpandDateRange(start, end string) ([]string, error) {
    from, err := ParseDay(start)
    if err != nil {
        return nil, err
    }
    to, err := ParseDay(end)
    if err != nil {
        return nil, err
    }
    if to.Before(from) {
        return nil, ErrBadRange
    }
    days := make([]string, 0, int(to.Sub(from).Hours()/24)+1)
    for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
        days = append(days, d.Format(DayLayout))
    }
    return days, nil
}

// RangeDays returns the inclusive number of days in [start, end].
func RangeDays(start, end string) (int, error) {
    from, err := ParseDay(start)
    if err != nil {
        return 0, err
    }
    to, err := ParseDay(end)
    if err != nil {
        return 0, err
    }
    if to.Before(from) {
        return 0, ErrBadRange
    }
    return int(to.Sub(from).Hours()/24) + 1, nil
}
