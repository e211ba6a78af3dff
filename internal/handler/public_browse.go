package handler

import (
    "context"
    "database/sql"
    "encoding/json"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/adplaze/ooh-marketplace/internal/recommend"
    "github.com/adplaze/ooh-marketplace/internal/repository"
)

// trendingCacheKey holds the ranked location list in Redis so the ranking
// is recomputed at most once per trendingTTL.
const (
    trendingCacheKey = "trending:locations"
    trendingTTL      = 5 * time.Minute
)

// PublicHandler serves the unauthenticated marketplace endpoints: browse,
// listing detail, reviews, trending locations and the recommendation
// wizard.
type PublicHandler struct {
    Spaces  *repository.SpaceRepo
    Reviews *repository.ReviewRepo
    RDB     *redis.Client // may be nil; trending then skips its cache
}

func NewPublicHandler(s *repository.SpaceRepo, r *repository.ReviewRepo, rdb *redis.Client) *PublicHandler {
    return &PublicHandler{Spaces: s, Reviews: r, RDB: rdb}
}

// ListSpaces returns listing summaries filtered by the query parameters
// city, type, q, min_price and max_price.
func (h *PublicHandler) ListSpaces(c echo.Context) error {
    f := repository.SpaceFilter{
        City:  c.QueryParam("city"),
        Type:  c.QueryParam("type"),
        Query: c.QueryParam("q"),
    }
    if v := c.QueryParam("min_price"); v != "" {
        if p, err := strconv.ParseFloat(v, 64); err == nil {
            f.MinPrice = p
        }
    }
    if v := c.QueryParam("max_price"); v != "" {
        if p, err := strconv.ParseFloat(v, 64); err == nil {
            f.MaxPrice = p
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    spaces, err := h.Spaces.List(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"spaces": spaces})
}

// GetSpace returns the full listing page for one slug.
func (h *PublicHandler) GetSpace(c echo.Context) error {
    slug := c.Param("slug")

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Spaces.GetBySlug(ctx, slug)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, det)
}

// ListSpaceReviews returns a space's reviews and average rating.
func (h *PublicHandler) ListSpaceReviews(c echo.Context) error {
    slug := c.Param("slug")

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Spaces.GetBySlug(ctx, slug)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    reviews, avg, err := h.Reviews.ListBySpace(ctx, det.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "reviews":        reviews,
        "average_rating": avg,
    })
}

// TrendingLocations returns up to ten locations ranked by inventory
// frequency, padded with the seed list.  The ranking is cached in Redis.
func (h *PublicHandler) TrendingLocations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if h.RDB != nil {
        if raw, err := h.RDB.Get(ctx, trendingCacheKey).Bytes(); err == nil {
            var cached []string
            if json.Unmarshal(raw, &cached) == nil {
                return c.JSON(http.StatusOK, echo.Map{"locations": cached})
            }
        }
    }

    spaces, err := h.Spaces.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    locations := recommend.TrendingLocations(spaces)

    if h.RDB != nil {
        if raw, err := json.Marshal(locations); err == nil {
            _ = h.RDB.SetEx(ctx, trendingCacheKey, raw, trendingTTL).Err()
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"locations": locations})
}

type wizardReq struct {
    BusinessType string   `json:"business_type"`
    Audience     []string `json:"audience"`
    Budget       float64  `json:"budget"`
    Goal         string   `json:"goal"`
}

type wizardMatch struct {
    repository.SpaceSummary
    Demographics []string `json:"demographics"`
    Score        int      `json:"score"`
}

// Wizard scores every listing against the advertiser's budget and target
// audience and returns the top three matches.
func (h *PublicHandler) Wizard(c echo.Context) error {
    var req wizardReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Budget <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    spaces, err := h.Spaces.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    scored := recommend.Recommend(spaces, req.Budget, req.Audience)
    matches := make([]wizardMatch, 0, len(scored))
    for _, sc := range scored {
        m := wizardMatch{
            SpaceSummary: repository.SpaceSummary{
                ID:          sc.Space.ID,
                Title:       sc.Space.Title,
                Slug:        sc.Space.Slug,
                Type:        sc.Space.Type,
                City:        sc.Space.City,
                Address:     sc.Space.Address,
                PricePerDay: sc.Space.PricePerDay,
            },
            Demographics: sc.Space.Demographics,
            Score:        sc.Score,
        }
        matches = append(matches, m)
    }
    return c.JSON(http.StatusOK, echo.Map{"recommendations": matches})
}
