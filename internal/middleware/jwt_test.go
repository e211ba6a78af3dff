package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/adplaze/ooh-marketplace/internal/utils"
)

func TestJWTAuthValidToken(t *testing.T) {
    const secret = "unit-secret"
    tok, err := utils.NewAccessToken(secret, 7, "advertiser", "ad@example.com", 5)
    require.NoError(t, err)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set("Authorization", "Bearer "+tok.Token)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var gotID, gotRole, gotEmail interface{}
    h := JWTAuth(secret)(func(c echo.Context) error {
        gotID = c.Get("user_id")
        gotRole = c.Get("role")
        gotEmail = c.Get("email")
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(7), gotID)
    assert.Equal(t, "advertiser", gotRole)
    assert.Equal(t, "ad@example.com", gotEmail)
}

func TestJWTAuthRejects(t *testing.T) {
    const secret = "unit-secret"
    wrong, err := utils.NewAccessToken("other-secret", 7, "advertiser", "ad@example.com", 5)
    require.NoError(t, err)

    cases := []struct {
        name   string
        header string
    }{
        {"missing header", ""},
        {"not bearer", "Basic abc"},
        {"garbage token", "Bearer not.a.jwt"},
        {"wrong secret", "Bearer " + wrong.Token},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            e := echo.New()
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            if tc.header != "" {
                req.Header.Set("Authorization", tc.header)
            }
            rec := httptest.NewRecorder()
            c := e.NewContext(req, rec)

            h := JWTAuth(secret)(func(c echo.Context) error {
                t.Fatal("handler must not run")
                return nil
            })
            require.NoError(t, h(c))
            assert.Equal(t, http.StatusUnauthorized, rec.Code)
        })
    }
}
