package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
)

func ctxWith(values map[string]interface{}) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    c := e.NewContext(req, httptest.NewRecorder())
    for k, v := range values {
        c.Set(k, v)
    }
    return c
}

func TestUserIDFrom(t *testing.T) {
    cases := []struct {
        name string
        val  interface{}
        want uint64
    }{
        {"float64 claim", float64(42), 42},
        {"uint64 value", uint64(7), 7},
        {"numeric string", "19", 19},
        {"non-numeric string", "abc", 0},
        {"missing", nil, 0},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            vals := map[string]interface{}{}
            if tc.val != nil {
                vals["user_id"] = tc.val
            }
            assert.Equal(t, tc.want, userIDFrom(ctxWith(vals)))
        })
    }
}

func TestEmailFrom(t *testing.T) {
    assert.Equal(t, "x@y.z", emailFrom(ctxWith(map[string]interface{}{"email": "x@y.z"})))
    assert.Equal(t, "", emailFrom(ctxWith(nil)))
    assert.Equal(t, "", emailFrom(ctxWith(map[string]interface{}{"email": 5})))
}
