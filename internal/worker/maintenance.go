// Package worker runs periodic maintenance over the booking store.
package worker

import (
    "context"
    "time"

    "github.com/sirupsen/logrus"

    "github.com/adplaze/ooh-marketplace/internal/repository"
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

// DefaultInterval is how often the maintenance pass runs.
const DefaultInterval = time.Hour

// Maintenance advances confirmed bookings whose end date has passed to
// completed and purges long-expired refresh tokens.
type Maintenance struct {
    Bookings *repository.BookingRepo
    Tokens   *repository.TokenRepo
    Interval time.Duration
}

func NewMaintenance(b *repository.BookingRepo, t *repository.TokenRepo) *Maintenance {
    return &Maintenance{Bookings: b, Tokens: t, Interval: DefaultInterval}
}

// Run executes one pass immediately, then once per interval until the
// context is cancelled.
func (m *Maintenance) Run(ctx context.Context) {
    interval := m.Interval
    if interval <= 0 {
        interval = DefaultInterval
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()

    m.pass(ctx)
    for {
        select {
        case <-ctx.Done():
            logrus.Info("maintenance: stopping")
            return
        case <-ticker.C:
            m.pass(ctx)
        }
    }
}

func (m *Maintenance) pass(ctx context.Context) {
    ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
    defer cancel()

    today := time.Now().UTC().Format(utils.DayLayout)
    if n, err := m.Bookings.CompleteExpired(ctx, today); err != nil {
        logrus.Errorf("maintenance: complete expired bookings: %v", err)
    } else if n > 0 {
        logrus.Infof("maintenance: completed %d finished bookings", n)
    }

    // Keep revoked/expired tokens around for a week for auditing, then drop.
    cutoff := time.Now().UTC().AddDate(0, 0, -7)
    if n, err := m.Tokens.PurgeExpired(ctx, cutoff); err != nil {
        logrus.Errorf("maintenance: purge refresh tokens: %v", err)
    } else if n > 0 {
        logrus.Infof("maintenance: purged %d expired refresh tokens", n)
    }
}
