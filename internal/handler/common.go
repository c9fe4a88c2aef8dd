package handler

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
)

// parseID extracts a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid " + name)
    }
    return id, nil
}

// requestLocation resolves the optional tz query parameter into a
// time.Location.  Timestamps in responses are rendered in this zone;
// without the parameter the server's local zone is used, matching a
// single-site deployment.
func requestLocation(c echo.Context) (*time.Location, error) {
    tz := c.QueryParam("tz")
    if tz == "" {
        return time.Local, nil
    }
    return time.LoadLocation(tz)
}
