package router

import (
    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/model"
)

// RegisterAdvertiser registers advertiser-scoped endpoints under /v1.  All
// routes require a valid JWT with the advertiser role; checkout carries
// the write rate limit.
func RegisterAdvertiser(e *echo.Echo, h *handler.AdvertiserHandler, jwtSecret string, limit echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdvertiser),
    )
    g.POST("/checkout", h.Checkout, limit)
    g.GET("/bookings", h.MyBookings)
    g.POST("/bookings/:id/cancel", h.CancelBooking, limit)
    g.POST("/spaces/:slug/reviews", h.CreateReview, limit)
}
