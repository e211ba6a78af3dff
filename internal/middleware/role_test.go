package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if role != nil {
        c.Set("role", role)
    }
    h := mw(func(c echo.Context) error {
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec
}

func TestRequireRole(t *testing.T) {
    cases := []struct {
        name    string
        allowed []string
        role    interface{}
        want    int
    }{
        {"matching role", []string{"agency"}, "agency", http.StatusOK},
        {"one of several", []string{"agency", "admin"}, "admin", http.StatusOK},
        {"wrong role", []string{"admin"}, "advertiser", http.StatusForbidden},
        {"missing role", []string{"admin"}, nil, http.StatusForbidden},
        {"non-string role claim", []string{"admin"}, 42, http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec := runWithRole(t, RequireRole(tc.allowed...), tc.role)
            assert.Equal(t, tc.want, rec.Code)
        })
    }
}

func TestRequireAdminPIN(t *testing.T) {
    e := echo.New()
    mw := RequireAdminPIN("2233")
    h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

    cases := []struct {
        name string
        pin  string
        want int
    }{
        {"correct pin", "2233", http.StatusOK},
        {"wrong pin", "0000", http.StatusForbidden},
        {"missing header", "", http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            if tc.pin != "" {
                req.Header.Set("X-Admin-Pin", tc.pin)
            }
            rec := httptest.NewRecorder()
            require.NoError(t, h(e.NewContext(req, rec)))
            assert.Equal(t, tc.want, rec.Code)
        })
    }
}
