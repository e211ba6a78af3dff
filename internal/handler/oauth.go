package handler

import (
    "context"
    "database/sql"
    "encoding/json"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "golang.org/x/oauth2"
    "golang.org/x/oauth2/google"

    "github.com/adplaze/ooh-marketplace/internal/config"
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

const (
    oauthStateCookie = "oauth_state"
    userinfoURL      = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// OAuthHandler implements the advertiser sign-in flow against Google.
// A successful callback finds-or-creates an advertiser account keyed by
// email and returns the same JWT pair the credentials login issues.
type OAuthHandler struct {
    Cfg  config.Config
    Auth *AuthHandler
}

func NewOAuthHandler(cfg config.Config, auth *AuthHandler) *OAuthHandler {
    return &OAuthHandler{Cfg: cfg, Auth: auth}
}

func (h *OAuthHandler) oauthConfig() *oauth2.Config {
    return &oauth2.Config{
        ClientID:     h.Cfg.GoogleClientID,
        ClientSecret: h.Cfg.GoogleClientSecret,
        RedirectURL:  h.Cfg.GoogleRedirectURL,
        Scopes:       []string{"openid", "email", "profile"},
        Endpoint:     google.Endpoint,
    }
}

func (h *OAuthHandler) configured() bool {
    return h.Cfg.GoogleClientID != "" && h.Cfg.GoogleClientSecret != "" && h.Cfg.GoogleRedirectURL != ""
}

// Redirect returns the provider's consent URL.  A random state value is
// stored in a short-lived cookie and checked again in the callback.
func (h *OAuthHandler) Redirect(c echo.Context) error {
    if !h.configured() {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google sign-in not configured"})
    }
    state, err := utils.NewRefreshToken(1) // reuse the random-hex generator
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "state generation failed"})
    }
    c.SetCookie(&http.Cookie{
        Name:     oauthStateCookie,
        Value:    state.Raw[:32],
        Path:     "/",
        MaxAge:   int((10 * time.Minute).Seconds()),
        HttpOnly: true,
    })
    return c.JSON(http.StatusOK, echo.Map{
        "url": h.oauthConfig().AuthCodeURL(state.Raw[:32]),
    })
}

// googleProfile is the subset of the userinfo response we consume.
type googleProfile struct {
    Email   string `json:"email"`
    Name    string `json:"name"`
    Picture string `json:"picture"`
}

// Callback exchanges the authorization code, loads the Google profile and
// signs the advertiser in, creating the user record on first sign-in.
func (h *OAuthHandler) Callback(c echo.Context) error {
    if !h.configured() {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google sign-in not configured"})
    }
    code := c.QueryParam("code")
    state := c.QueryParam("state")
    if code == "" || state == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code/state required"})
    }
    if cookie, err := c.Cookie(oauthStateCookie); err != nil || cookie.Value != state {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    conf := h.oauthConfig()
    tok, err := conf.Exchange(ctx, code)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code exchange failed"})
    }

    resp, err := conf.Client(ctx, tok).Get(userinfoURL)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "profile fetch failed"})
    }
    defer resp.Body.Close()
    var profile googleProfile
    if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Email == "" {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "profile decode failed"})
    }

    // Find-or-create the advertiser by email.
    u, err := h.Auth.Users.GetByEmail(ctx, profile.Email)
    if err == sql.ErrNoRows {
        name := profile.Name
        if name == "" {
            name = profile.Email
        }
        var img *string
        if profile.Picture != "" {
            img = &profile.Picture
        }
        if _, cerr := h.Auth.Users.CreateAdvertiser(ctx, name, profile.Email, img); cerr != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
        }
        u, err = h.Auth.Users.GetByEmail(ctx, profile.Email)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    pair, err := h.Auth.issuePair(ctx, u)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
    }
    return c.JSON(http.StatusOK, pair)
}
