package router

import (
    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/model"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.  The
// admin role is required on every route, plus the dashboard PIN header.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret, adminPIN string, limit echo.MiddlewareFunc) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
        middleware.RequireAdminPIN(adminPIN),
    )

    // ---- Users ----
    g.GET("/users", h.ListUsers)
    g.POST("/agencies", h.CreateAgency, limit)
    g.PATCH("/agencies/:id/credentials", h.UpdateAgencyCredentials, limit)

    // ---- Listings ----
    g.POST("/spaces", h.CreateSpace, limit)
    g.PATCH("/spaces/:id", h.UpdateSpace, limit)
    g.DELETE("/spaces/:id", h.DeleteSpace, limit)

    // ---- Bookings ----
    g.GET("/bookings", h.ListBookings)
    g.POST("/bookings/:id/confirm", h.ConfirmBooking, limit)
    g.POST("/bookings/:id/reject", h.RejectBooking, limit)
    g.POST("/bookings/:id/cancel", h.CancelBooking, limit)
}
