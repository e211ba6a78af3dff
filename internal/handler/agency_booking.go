package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/queue"
    "github.com/adplaze/ooh-marketplace/internal/repository"
    queue_publisher "github.com/adplaze/ooh-marketplace/internal/service"
)

// AgencyBookingHandler serves booking management for agencies: incoming
// requests on their spaces, confirm and reject.
type AgencyBookingHandler struct {
    Bookings *repository.BookingRepo
    Cache    *middleware.PageCache
}

func NewAgencyBookingHandler(b *repository.BookingRepo, cache *middleware.PageCache) *AgencyBookingHandler {
    return &AgencyBookingHandler{Bookings: b, Cache: cache}
}

// ListBookings returns every booking on the agency's spaces, contact
// snapshot included.
func (h *AgencyBookingHandler) ListBookings(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListForOwner(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// confirmBooking runs the shared confirm path: status transition plus
// date blocking in one transaction, then the best-effort event publish and
// cache invalidation.  ownerID 0 means an admin caller.
func confirmBooking(c echo.Context, repo *repository.BookingRepo, cache *middleware.PageCache, bookingID, ownerID uint64) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    info, err := repo.Confirm(ctx, bookingID, ownerID)
    switch err {
    case nil:
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
    case repository.ErrInvalidStatus:
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
    case repository.ErrDateConflict:
        return c.JSON(http.StatusConflict, echo.Map{"error": "dates no longer available"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
    }

    // Publish is best-effort: the confirmation already committed.
    _ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
        BookingID:       info.BookingID,
        SpaceID:         info.SpaceID,
        SpaceTitle:      info.SpaceTitle,
        City:            info.City,
        AgencyID:        info.OwnerID,
        AgencyName:      info.AgencyName,
        AdvertiserID:    info.AdvertiserID,
        AdvertiserName:  info.AdvertiserName,
        AdvertiserEmail: info.AdvertiserEmail,
        StartDate:       info.StartDate,
        EndDate:         info.EndDate,
        TotalPrice:      info.TotalPrice,
        ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
    })
    cache.Invalidate(ctx, "spaces")
    return c.JSON(http.StatusOK, echo.Map{"status": "confirmed"})
}

// rejectBooking runs the shared reject path.  ownerID 0 means admin.
func rejectBooking(c echo.Context, repo *repository.BookingRepo, bookingID, ownerID uint64) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    switch err := repo.Reject(ctx, bookingID, ownerID); err {
    case nil:
        return c.JSON(http.StatusOK, echo.Map{"status": "rejected"})
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
    case repository.ErrInvalidStatus:
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
    }
}

// Confirm accepts a pending booking on one of the agency's spaces and
// blocks its date range.
func (h *AgencyBookingHandler) Confirm(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    return confirmBooking(c, h.Bookings, h.Cache, bookingID, uid)
}

// Reject declines a pending booking on one of the agency's spaces.
func (h *AgencyBookingHandler) Reject(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    return rejectBooking(c, h.Bookings, bookingID, uid)
}
