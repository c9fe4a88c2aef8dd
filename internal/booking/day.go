// Package booking holds the pure time arithmetic shared by the
// listing and booking paths: converting a local calendar day into the
// half-open UTC window used to filter appointment start instants.
package booking

import "time"

// dateLayout is the wire format for calendar dates in query strings.
const dateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string as midnight of that calendar
// day in the given location.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
    return time.ParseInLocation(dateLayout, value, loc)
}

// DayWindow converts midnight of a local calendar day into the
// half-open UTC interval [day, day+1d).  The end bound is computed
// with AddDate so that days spanning a DST transition keep their real
// length instead of a fixed 24 hours.
func DayWindow(day time.Time) (startUTC, endUTC time.Time) {
    return day.UTC(), day.AddDate(0, 0, 1).UTC()
}

// UTCDayWindow returns the half-open window covering the UTC calendar
// day that contains t.  The booking conflict check uses this window:
// a customer may hold at most one booked appointment per organization
// per UTC day.
func UTCDayWindow(t time.Time) (startUTC, endUTC time.Time) {
    y, m, d := t.UTC().Date()
    start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
    return start, start.AddDate(0, 0, 1)
}
