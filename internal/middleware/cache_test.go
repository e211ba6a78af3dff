package middleware

import (
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestCachePayloadRoundTrip(t *testing.T) {
    hdr := http.Header{
        "Content-Type": {"application/json"},
        "X-Custom":     {"a", "b"},
    }
    body := []byte(`{"spaces":[]}`)

    payload, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, hdr, gotHdr)
    assert.Equal(t, body, gotBody)
}

func TestCachePayloadEmptyBody(t *testing.T) {
    payload, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
    require.NoError(t, err)

    status, _, body, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusNoContent, status)
    assert.Empty(t, body)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{0, 0})
    assert.False(t, ok)

    // header length pointing past the buffer
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'})
    assert.False(t, ok)
}
