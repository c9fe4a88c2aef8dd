package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDayWindow_UTC(t *testing.T) {
    day, err := ParseDay("2026-09-01", time.UTC)
    require.NoError(t, err)

    start, end := DayWindow(day)
    assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
    assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestDayWindow_OffsetZone(t *testing.T) {
    loc, err := time.LoadLocation("Asia/Dushanbe") // UTC+5, no DST
    require.NoError(t, err)
    day, err := ParseDay("2026-09-01", loc)
    require.NoError(t, err)

    start, end := DayWindow(day)
    // Local midnight is the previous evening in UTC.
    assert.Equal(t, time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC), start)
    assert.Equal(t, time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC), end)
    assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDayWindow_DSTTransition(t *testing.T) {
    loc, err := time.LoadLocation("America/New_York")
    require.NoError(t, err)
    // DST begins on this day; the local day is only 23 hours long.
    day, err := ParseDay("2026-03-08", loc)
    require.NoError(t, err)

    start, end := DayWindow(day)
    assert.Equal(t, 23*time.Hour, end.Sub(start))
    assert.Equal(t, time.Date(2026, 3, 8, 5, 0, 0, 0, time.UTC), start)
}

func TestDayWindow_HalfOpen(t *testing.T) {
    day, _ := ParseDay("2026-09-01", time.UTC)
    start, end := DayWindow(day)

    inside := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)
    assert.True(t, !inside.Before(start) && inside.Before(end))

    boundary := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
    assert.False(t, boundary.Before(end), "next midnight must fall outside the window")
}

func TestUTCDayWindow(t *testing.T) {
    loc, err := time.LoadLocation("America/New_York")
    require.NoError(t, err)

    // 22:30 local on Sep 1 is already Sep 2 in UTC; the conflict
    // check windows on the UTC calendar day.
    start, end := UTCDayWindow(time.Date(2026, 9, 1, 22, 30, 0, 0, loc))
    assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), start)
    assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDay_Invalid(t *testing.T) {
    _, err := ParseDay("09/01/2026", time.UTC)
    assert.Error(t, err)
}

func TestLocalRoundTrip(t *testing.T) {
    loc, err := time.LoadLocation("Europe/Berlin")
    require.NoError(t, err)

    local := time.Date(2026, 9, 1, 9, 30, 0, 0, loc)
    stored := local.UTC()
    assert.True(t, stored.In(loc).Equal(local))
    assert.Equal(t, "2026-09-01T09:30:00+02:00", stored.In(loc).Format(time.RFC3339))
}
