// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check and the uploaded listing images.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
    e.GET("/healthz", handler.Health)
    e.Static("/uploads", uploadDir)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me and the revoke-all logout at
// /v1/logout require a valid access token.  /v1/auth/logout stays open so
// a client whose access token already expired can still revoke its
// refresh token by sending it in the body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, o *handler.OAuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/logout", a.Logout)
    g.GET("/google", o.Redirect)
    g.GET("/google/callback", o.Callback)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated marketplace browse
// endpoints.  Listing pages are cached under the "spaces" page group and
// the trending ranking under "locations"; mutation handlers invalidate
// those groups after a successful write.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache *middleware.PageCache) {
    e.GET("/v1/spaces", p.ListSpaces, cache.Middleware("spaces"))
    e.GET("/v1/spaces/:slug", p.GetSpace, cache.Middleware("spaces"))
    e.GET("/v1/spaces/:slug/reviews", p.ListSpaceReviews)
    e.GET("/v1/locations/trending", p.TrendingLocations, cache.Middleware("locations"))
    e.POST("/v1/wizard/recommendations", p.Wizard)
}
