package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
    const secret = "test-secret"
    tok, err := NewAccessToken(secret, 42, "agency", "media@example.com", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 2*time.Second)

    parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims := parsed.Claims.(jwt.MapClaims)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "agency", claims["role"])
    assert.Equal(t, "media@example.com", claims["email"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    tok, err := NewAccessToken("right", 1, "advertiser", "a@b.c", 5)
    require.NoError(t, err)
    _, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
        return []byte("wrong"), nil
    })
    assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.Len(t, rt.Raw, 96) // 48 random bytes hex-encoded

    h1 := HashRefreshRaw(rt.Raw)
    h2 := HashRefreshRaw(rt.Raw)
    assert.Equal(t, h1, h2)
    assert.Len(t, h1, 64)
    assert.NotEqual(t, rt.Raw, h1)

    other, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.NotEqual(t, HashRefreshRaw(other.Raw), h1)
}
