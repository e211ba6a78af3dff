package router

import (
    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/model"
)

// RegisterAgency registers agency-scoped endpoints under /v1/agency.  All
// routes require a valid JWT with the agency role; mutations carry the
// write rate limit.
func RegisterAgency(e *echo.Echo, sp *handler.AgencySpaceHandler, bk *handler.AgencyBookingHandler, jwtSecret string, limit echo.MiddlewareFunc) {
    g := e.Group(
        "/v1/agency",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAgency),
    )

    // ---- Listings ----
    g.GET("/spaces", sp.ListOwnSpaces)
    g.POST("/spaces", sp.CreateSpace, limit)
    g.PATCH("/spaces/:id", sp.UpdateSpace, limit)
    g.POST("/spaces/:id/availability/toggle", sp.ToggleAvailability, limit)

    // ---- Bookings ----
    g.GET("/bookings", bk.ListBookings)
    g.POST("/bookings/:id/confirm", bk.Confirm, limit)
    g.POST("/bookings/:id/reject", bk.Reject, limit)
}
