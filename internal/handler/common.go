package handler

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userIDFrom extracts the authenticated user's ID from the context values
// set by the JWT middleware.  JWT numeric claims decode as float64; some
// clients encode numeric strings instead.  Returns 0 when no user is
// authenticated.
func userIDFrom(c echo.Context) uint64 {
    switch v := c.Get("user_id").(type) {
    case float64:
        return uint64(v)
    case uint64:
        return v
    case string:
        if n, err := strconv.ParseUint(v, 10, 64); err == nil {
            return n
        }
    }
    return 0
}

// emailFrom extracts the authenticated user's email claim, or "".
func emailFrom(c echo.Context) string {
    if s, ok := c.Get("email").(string); ok {
        return s
    }
    return ""
}
