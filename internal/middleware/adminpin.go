package middleware

import (
    "crypto/subtle"
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireAdminPIN gates the admin dashboard behind a 4-digit PIN sent in
// the X-Admin-Pin header.  This is a cosmetic speed bump on top of the
// real role check, not a security control; real authorization is
// RequireRole("admin").
func RequireAdminPIN(pin string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            got := c.Request().Header.Get("X-Admin-Pin")
            if subtle.ConstantTimeCompare([]byte(got), []byte(pin)) != 1 {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "admin PIN required"})
            }
            return next(c)
        }
    }
}
