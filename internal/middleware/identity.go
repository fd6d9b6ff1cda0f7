package middleware

// identity.go provides the rate limiter's view of the caller: a stable
// string identifier used in bucket keys so authenticated users are
// limited per account while guests fall back to per-IP buckets.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the principal's user id as a string, or
// "anon" for guests.
func currentUserID(c echo.Context) string {
    p := Principal(c)
    if p.Anonymous() {
        return "anon"
    }
    return strconv.FormatUint(p.UserID, 10)
}
