package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
    statuses := []string{
        BookingPending, BookingConfirmed, BookingRejected,
        BookingCancelled, BookingCompleted,
    }
    allowed := map[[2]string]bool{
        {BookingPending, BookingConfirmed}:   true,
        {BookingPending, BookingRejected}:    true,
        {BookingPending, BookingCancelled}:   true,
        {BookingConfirmed, BookingCancelled}: true,
        {BookingConfirmed, BookingCompleted}: true,
    }
    for _, from := range statuses {
        for _, to := range statuses {
            want := allowed[[2]string{from, to}]
            assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
        }
    }
}

func TestCanTransitionUnknownStatus(t *testing.T) {
    assert.False(t, CanTransition("draft", BookingConfirmed))
    assert.False(t, CanTransition(BookingPending, "archived"))
}
