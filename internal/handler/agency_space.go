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
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

// AgencySpaceHandler serves the agency dashboard's listing management:
// own listings, create with photo upload, edit, availability toggle.
type AgencySpaceHandler struct {
    Cfg    config.Config
    Spaces *repository.SpaceRepo
    Cache  *middleware.PageCache
}

func NewAgencySpaceHandler(cfg config.Config, s *repository.SpaceRepo, cache *middleware.PageCache) *AgencySpaceHandler {
    return &AgencySpaceHandler{Cfg: cfg, Spaces: s, Cache: cache}
}

// ListOwnSpaces returns the agency's listings with blocked dates loaded,
// for the availability calendar.
func (h *AgencySpaceHandler) ListOwnSpaces(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    spaces, err := h.Spaces.ListByOwner(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"spaces": ownSpaceViews(spaces)})
}

// ownSpaceView flattens a listing for the dashboard, availability included.
type ownSpaceView struct {
    ID           uint64   `json:"id"`
    Title        string   `json:"title"`
    Slug         string   `json:"slug"`
    Type         string   `json:"type"`
    City         string   `json:"city"`
    Address      *string  `json:"address,omitempty"`
    Dimensions   *string  `json:"dimensions,omitempty"`
    PricePerDay  float64  `json:"price_per_day"`
    BlockedDates []string `json:"availability"`
}

func ownSpaceViews(spaces []model.AdSpace) []ownSpaceView {
    out := make([]ownSpaceView, 0, len(spaces))
    for _, s := range spaces {
        out = append(out, ownSpaceView{
            ID: s.ID, Title: s.Title, Slug: s.Slug, Type: s.Type,
            City: s.City, Address: s.Address, Dimensions: s.Dimensions,
            PricePerDay: s.PricePerDay, BlockedDates: s.BlockedDates,
        })
    }
    return out
}

// spaceForm reads the multipart create form shared by agency and admin
// space creation.  Demographic tags arrive as a comma-separated list and
// are filtered to the known tag set.
func spaceForm(c echo.Context) (model.AdSpace, error) {
    title := strings.TrimSpace(c.FormValue("title"))
    city := strings.TrimSpace(c.FormValue("city"))
    spaceType := strings.TrimSpace(c.FormValue("type"))
    price, perr := strconv.ParseFloat(c.FormValue("price_per_day"), 64)
    if title == "" || city == "" || perr != nil || price <= 0 {
        return model.AdSpace{}, echo.NewHTTPError(http.StatusBadRequest, "title, city and positive price_per_day required")
    }
    switch spaceType {
    case model.SpaceTypeBillboard, model.SpaceTypeDigitalScreen, model.SpaceTypeTransit, model.SpaceTypeOther:
    default:
        return model.AdSpace{}, echo.NewHTTPError(http.StatusBadRequest, "invalid space type")
    }

    s := model.AdSpace{
        Title:       title,
        Slug:        utils.Slugify(title),
        Type:        spaceType,
        City:        city,
        PricePerDay: price,
    }
    if v := strings.TrimSpace(c.FormValue("description")); v != "" {
        s.Description = &v
    }
    if v := strings.TrimSpace(c.FormValue("district")); v != "" {
        s.District = &v
    }
    if v := strings.TrimSpace(c.FormValue("address")); v != "" {
        s.Address = &v
    }
    if v := strings.TrimSpace(c.FormValue("dimensions")); v != "" {
        s.Dimensions = &v
    }
    known := map[string]bool{}
    for _, t := range model.DemographicTags {
        known[t] = true
    }
    for _, raw := range strings.Split(c.FormValue("demographics"), ",") {
        if tag := strings.TrimSpace(strings.ToLower(raw)); known[tag] {
            s.Demographics = append(s.Demographics, tag)
        }
    }
    return s, nil
}

// uploadImages stores every "images" file from the multipart form and
// returns the image rows to attach.  A decode failure rejects the request
// rather than silently dropping the photo.
func uploadImages(c echo.Context, uploadDir string) ([]model.SpaceImage, error) {
    form, err := c.MultipartForm()
    if err != nil || form == nil {
        return nil, nil // plain form without files
    }
    files := form.File["images"]
    imgs := make([]model.SpaceImage, 0, len(files))
    for _, fh := range files {
        url, thumb, err := utils.SaveListingImage(uploadDir, fh)
        if err != nil {
            return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
        }
        imgs = append(imgs, model.SpaceImage{URL: url, ThumbURL: thumb})
    }
    return imgs, nil
}

// CreateSpace creates a listing owned by the calling agency.  Accepts
// multipart form data with optional "images" file parts; each upload is
// stored with a generated thumbnail.
func (h *AgencySpaceHandler) CreateSpace(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    s, err := spaceForm(c)
    if err != nil {
        return err
    }
    s.OwnerID = uid
    imgs, err := uploadImages(c, h.Cfg.UploadDir)
    if err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    id, err := h.Spaces.Create(ctx, &s, imgs)
    if err != nil {
        log.Printf("create space: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    h.Cache.Invalidate(ctx, "spaces", "locations")
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "slug": s.Slug})
}

type spaceUpdateReq struct {
    Title       *string  `json:"title"`
    PricePerDay *float64 `json:"price_per_day"`
    Address     *string  `json:"address"`
    Description *string  `json:"description"`
    Dimensions  *string  `json:"dimensions"`
}

func (r spaceUpdateReq) toUpdate() repository.SpaceUpdate {
    return repository.SpaceUpdate{
        Title:       r.Title,
        PricePerDay: r.PricePerDay,
        Address:     r.Address,
        Description: r.Description,
        Dimensions:  r.Dimensions,
    }
}

// UpdateSpace patches one of the agency's own listings.
func (h *AgencySpaceHandler) UpdateSpace(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
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

    switch err := h.Spaces.Update(ctx, spaceID, uid, req.toUpdate()); err {
    case nil:
        h.Cache.Invalidate(ctx, "spaces")
        return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your space"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
}

type toggleReq struct {
    Date string `json:"date"`
}

// ToggleAvailability blocks the given day on the agency's space when it is
// free, and frees it when blocked.  The decision is taken against stored
// state, so two overlapping toggles end up with each applied once instead
// of the second overwriting the first.
func (h *AgencySpaceHandler) ToggleAvailability(c echo.Context) error {
    uid := userIDFrom(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    spaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
    }
    var req toggleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if _, err := utils.ParseDay(req.Date); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    blocked, dates, err := h.Spaces.ToggleBlockedDate(ctx, spaceID, uid, req.Date)
    switch err {
    case nil:
    case sql.ErrNoRows:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your space"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
    }
    h.Cache.Invalidate(ctx, "spaces")
    return c.JSON(http.StatusOK, echo.Map{
        "date":         req.Date,
        "blocked":      blocked,
        "availability": dates,
    })
}
