package handler

import (
    "context"
    "database/sql"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/config"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/model"
    "github.com/adplaze/ooh-marketplace/internal/repository"
)

// AdminHandler serves the back-office: user management, listing management
// across all agencies and booking oversight.
type AdminHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Spaces   *repository.SpaceRepo
    Bookings *repository.BookingRepo
    Cache    *middleware.PageCache
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, s *repository.SpaceRepo, b *repository.BookingRepo, cache *middleware.PageCache) *AdminHandler {
    return &AdminHandler{Cfg: cfg, Users: u, Spaces: s, Bookings: b, Cache: cache}
}

// adminUserView hides credential hashes from the dashboard payload.
type adminUserView struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    Email       string  `json:"email"`
    Phone       *string `json:"phone,omitempty"`
    Role        string  `json:"role"`
    Username    *string `json:"username,omitempty"`
    CompanyName *string `json:"company_name,omitempty"`
    Website     *string `json:"website,omitempty"`
    IsActive    bool    `json:"is_active"`
    CreatedAt   string  `json:"created_at"`
}

// ListUsers returns every account, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]adminUserView, 0, len(users))
    for _, u := range users {
        out = append(out, adminUserView{
            ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role,
            Username: u.Username, CompanyName: u.CompanyName, Website: u.Website,
            IsActive: u.IsActive, CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out})
}

type createAgencyReq struct {
    CompanyName string `json:"company_name"`
    Email       string `json:"email"`
    Username    string `json:"username"`
    Password    string `json:"password"`
}

// CreateAgency provisions an agency account with login credentials.  A
// concurrent duplicate username surfaces as a conflict from the unique
// index, not from a pre-check.
func (h *AdminHandler) CreateAgency(c echo.Context) error {
    var req createAgencyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.CompanyName = strings.TrimSpace(req.CompanyName)
    req.Username = strings.TrimSpace(req.Username)
    if req.CompanyName == "" || req.Email == "" || req.Username == "" || len(req.Password) < 6 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_name, email, username and password (min 6) required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Users.CreateAgency(ctx, req.CompanyName, req.Email, req.Username, req.Password, h.Cfg.BcryptCost)
    switch err {
    case nil:
        return c.JSON(http.StatusCreated, echo.Map{"id": id})
    case repository.ErrUsernameExists:
        return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
    case repository.ErrEmailExists:
        return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
}

type updateCredentialsReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// UpdateAgencyCredentials rotates an agency's username and password.
func (h *AdminHandler) UpdateAgencyCredentials(c echo.Context) error {
    userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    var req updateCredentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || len(req.Password) < 6 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password (min 6) required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    switch err := h.Users.UpdateAgencyCredentials(ctx, userID, req.Username, req.Password, h.Cfg.BcryptCost); err {
    case nil:
        return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "agency not found"})
    case repository.ErrUsernameExists:
        return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
}

// CreateSpace creates a listing on behalf of an agency.  The multipart
// form is the agency create form plus an owner_id field naming the agency
// the listing belongs to.
func (h *AdminHandler) CreateSpace(c echo.Context) error {
    ownerID, err := strconv.ParseUint(c.FormValue("owner_id"), 10, 64)
    if err != nil || ownerID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner_id required"})
    }
    s, err := spaceForm(c)
    if err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    owner, err := h.Users.GetByID(ctx, ownerID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "owner not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if owner.Role != model.RoleAgency {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner must be an agency"})
    }
    s.OwnerID = owner.ID

    imgs, err := uploadImages(c, h.Cfg.UploadDir)
    if err != nil {
        return err
    }
    id, err := h.Spaces.Create(ctx, &s, imgs)
    if err != nil {
        log.Printf("admin create space: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    h.Cache.Invalidate(ctx, "spaces", "locations")
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "slug": s.Slug})
}

// UpdateSpace patches any listing, ownership check bypassed.
func (h *AdminHandler) UpdateSpace(c echo.Context) error {
    spaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
    }
    var req spaceUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.PricePerDay != nil && *req.PricePerDay <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_day must be positive"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Spaces.Update(ctx, spaceID, 0, req.toUpdate()); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    h.Cache.Invalidate(ctx, "spaces")
    return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
}

// DeleteSpace removes a listing and everything referencing it: bookings,
// reviews, images, demographics, blocked dates.
func (h *AdminHandler) DeleteSpace(c echo.Context) error {
    spaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    removed, err := h.Spaces.Delete(ctx, spaceID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
        }
        log.Printf("admin delete space %d: %v", spaceID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    h.Cache.Invalidate(ctx, "spaces", "locations")
    return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "bookings_removed": removed})
}

// ListBookings returns every booking in the marketplace.
func (h *AdminHandler) ListBookings(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// ConfirmBooking confirms any pending booking, ownership check bypassed.
func (h *AdminHandler) ConfirmBooking(c echo.Context) error {
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    return confirmBooking(c, h.Bookings, h.Cache, bookingID, 0)
}

// RejectBooking rejects any pending booking.
func (h *AdminHandler) RejectBooking(c echo.Context) error {
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    return rejectBooking(c, h.Bookings, bookingID, 0)
}

// CancelBooking cancels any pending or confirmed booking, releasing blocked
// dates when the booking had them.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    switch err := h.Bookings.Cancel(ctx, bookingID, 0); err {
    case nil:
        h.Cache.Invalidate(ctx, "spaces")
        return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case repository.ErrInvalidStatus:
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }
}
