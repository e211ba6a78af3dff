package router

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/adplaze/ooh-marketplace/internal/config"
    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/repository"
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

func authTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock, config.Config) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { _ = db.Close() })

    cfg := config.Config{JWTSecret: "route-secret", AccessTTLMin: 5, RefreshTTLDays: 1}
    a := handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
    o := handler.NewOAuthHandler(cfg, a)

    e := echo.New()
    RegisterAuth(e, a, o, cfg.JWTSecret)
    return e, mock, cfg
}

func TestLogoutWithoutTokenOrBody(t *testing.T) {
    e, _, _ := authTestServer(t)

    req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticatedLogoutRejectsMissingBearer(t *testing.T) {
    e, _, _ := authTestServer(t)

    req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedLogoutRevokesAllSessions(t *testing.T) {
    e, mock, cfg := authTestServer(t)

    tok, err := utils.NewAccessToken(cfg.JWTSecret, 7, "advertiser", "ad@example.com", cfg.AccessTTLMin)
    require.NoError(t, err)

    // A bearer token with an empty body revokes every session of the user.
    mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
        WillReturnResult(sqlmock.NewResult(0, 2))

    req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
    req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}
