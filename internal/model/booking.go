package model

import "time"

// Booking status values stored in bookings.status.  The lifecycle is:
// pending -> confirmed, rejected or cancelled; confirmed -> cancelled or
// completed.  Completion happens automatically once the booked range has
// passed.
const (
    BookingPending   = "pending"
    BookingConfirmed = "confirmed"
    BookingRejected  = "rejected"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
)

// CanTransition reports whether a booking may move from one status to
// another.  Handlers reject any transition not allowed here.
func CanTransition(from, to string) bool {
    switch from {
    case BookingPending:
        return to == BookingConfirmed || to == BookingRejected || to == BookingCancelled
    case BookingConfirmed:
        return to == BookingCancelled || to == BookingCompleted
    }
    return false
}

// Booking records an advertiser's reservation of a single ad space for an
// inclusive date range.  One checkout produces one booking per cart line
// item.  Contact details are snapshotted at creation so later profile
// edits do not rewrite past orders.
//
// Fields:
//  ID             – primary key identifier.
//  SpaceID        – ad space being booked.
//  AdvertiserID   – user who placed the booking.
//  StartDate      – first booked day (inclusive), ISO YYYY-MM-DD.
//  EndDate        – last booked day (inclusive), ISO YYYY-MM-DD.
//  Status         – state of the booking (see constants above).
//  TotalPrice     – daily price multiplied by the inclusive day count.
//  ContactName    – snapshot of the advertiser's contact name.
//  ContactPhone   – snapshot of the advertiser's phone number.
//  ContactAddress – snapshot of the advertiser's billing address.
//  Reference      – opaque checkout reference shared by bookings created together.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Booking struct {
    ID             uint64    // bookings.id
    SpaceID        uint64    // bookings.space_id
    AdvertiserID   uint64    // bookings.advertiser_id
    StartDate      string    // bookings.start_date
    EndDate        string    // bookings.end_date
    Status         string    // bookings.status
    TotalPrice     float64   // bookings.total_price
    ContactName    string    // bookings.contact_name
    ContactPhone   string    // bookings.contact_phone
    ContactAddress string    // bookings.contact_address
    Reference      string    // bookings.reference
    CreatedAt      time.Time // bookings.created_at
    UpdatedAt      time.Time // bookings.updated_at
}
