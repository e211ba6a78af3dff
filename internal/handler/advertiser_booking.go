package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/pricing"
    "github.com/adplaze/ooh-marketplace/internal/repository"
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

// AdvertiserHandler serves the signed-in advertiser flows: checkout, my
// bookings, cancellation and reviews.
type AdvertiserHandler struct {
    Spaces   *repository.SpaceRepo
    Bookings *repository.BookingRepo
    Reviews  *repository.ReviewRepo
}

func NewAdvertiserHandler(s *repository.SpaceRepo, b *repository.BookingRepo, rv *repository.ReviewRepo) *AdvertiserHandler {
    return &AdvertiserHandler{Spaces: s, Bookings: b, Reviews: rv}
}

type checkoutItem struct {
    SpaceID   uint64 `json:"space_id"`
    StartDate string `json:"start_date"`
    EndDate   string `json:"end_date"`
}

type checkoutReq struct {
    Contact repository.Contact `json:"contact"`
    Items   []checkoutItem     `json:"items"`
}

type checkoutLineResp struct {
    BookingID  uint64  `json:"booking_id"`
    SpaceID    uint64  `json:"space_id"`
    SpaceTitle string  `json:"space_title"`
    StartDate  string  `json:"start_date"`
    EndDate    string  `json:"end_date"`
    Days       int     `json:"days"`
    Total      float64 `json:"total"`
}

// Checkout turns the advertiser's cart into one pending booking per line
// item.  Each line is priced from the space's stored daily rate over the
// inclusive day count; the response carries the per-line totals and the
// cart quote with GST.  Availability is not enforced here: the agency
// decides at confirmation time, where a date clash fails the confirm.
func (h *AdvertiserHandler) Checkout(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req checkoutReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(req.Items) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
    }
    req.Contact.Name = strings.TrimSpace(req.Contact.Name)
    req.Contact.Phone = strings.TrimSpace(req.Contact.Phone)
    if req.Contact.Name == "" || req.Contact.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "contact name and phone required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    lines := make([]repository.BookingLine, 0, len(req.Items))
    resp := make([]checkoutLineResp, 0, len(req.Items))
    totals := make([]float64, 0, len(req.Items))
    for _, it := range req.Items {
        days, err := utils.RangeDays(it.StartDate, it.EndDate)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        space, err := h.Spaces.GetByID(ctx, it.SpaceID)
        if err != nil {
            if err == sql.ErrNoRows {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
        }
        total := pricing.LineTotal(space.PricePerDay, days)
        lines = append(lines, repository.BookingLine{
            SpaceID:    space.ID,
            StartDate:  it.StartDate,
            EndDate:    it.EndDate,
            TotalPrice: total,
        })
        resp = append(resp, checkoutLineResp{
            SpaceID: space.ID, SpaceTitle: space.Title,
            StartDate: it.StartDate, EndDate: it.EndDate,
            Days: days, Total: total,
        })
        totals = append(totals, total)
    }

    reference := uuid.NewString()
    ids, err := h.Bookings.CreateBatch(ctx, uid, req.Contact, reference, lines)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
    }
    for i := range resp {
        resp[i].BookingID = ids[i]
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "reference": reference,
        "bookings":  resp,
        "quote":     pricing.QuoteFor(totals),
    })
}

// MyBookings lists the advertiser's own orders, newest first.
func (h *AdvertiserHandler) MyBookings(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListByAdvertiser(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// CancelBooking cancels one of the advertiser's pending or confirmed
// bookings.
func (h *AdvertiserHandler) CancelBooking(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    switch err := h.Bookings.Cancel(ctx, bookingID, uid); err {
    case nil:
        return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
    case repository.ErrInvalidStatus:
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }
}

type reviewReq struct {
    Rating  uint8   `json:"rating"`
    Comment *string `json:"comment"`
}

// CreateReview posts a 1..5 star review on a space, addressed by slug like
// the rest of the /spaces routes.
func (h *AdvertiserHandler) CreateReview(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req reviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Rating < 1 || req.Rating > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be 1-5"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Spaces.GetBySlug(ctx, c.Param("slug"))
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    id, err := h.Reviews.Create(ctx, det.ID, uid, req.Rating, req.Comment)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
