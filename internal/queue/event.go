// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is confirmed by the
// agency or an admin.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
    BookingID       uint64  `json:"booking_id"`
    SpaceID         uint64  `json:"space_id"`
    SpaceTitle      string  `json:"space_title"`
    City            string  `json:"city"`
    AgencyID        uint64  `json:"agency_id"`
    AgencyName      string  `json:"agency_name"`
    AdvertiserID    uint64  `json:"advertiser_id"`
    AdvertiserName  string  `json:"advertiser_name"`
    AdvertiserEmail string  `json:"advertiser_email"`
    StartDate       string  `json:"start_date"`
    EndDate         string  `json:"end_date"`
    TotalPrice      float64 `json:"total_price"`
    ConfirmedAt     string  `json:"confirmed_at"`
}
