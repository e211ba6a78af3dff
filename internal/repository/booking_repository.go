package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/adplaze/ooh-marketplace/internal/model"
    "github.com/adplaze/ooh-marketplace/internal/utils"
)

// BookingRepo provides CRUD and lifecycle operations for bookings.  Status
// transitions that touch a space's blocked dates (confirm, cancel) lock the
// booking row and perform the date mutation in the same transaction, so a
// concurrent confirm and cancel on the same space cannot interleave.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingLine is one cart line item at checkout, priced by the handler
// from the space's stored daily rate.
type BookingLine struct {
    SpaceID    uint64
    StartDate  string
    EndDate    string
    TotalPrice float64
}

// Contact is the advertiser contact snapshot stored on each booking.
type Contact struct {
    Name    string `json:"name"`
    Phone   string `json:"phone"`
    Address string `json:"address"`
}

// CreateBatch inserts one pending booking per cart line item inside a
// single transaction and returns the new IDs in input order.  All bookings
// created together share the checkout reference.
func (r *BookingRepo) CreateBatch(ctx context.Context, advertiserID uint64, contact Contact, reference string, lines []BookingLine) ([]uint64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    defer func() { _ = tx.Rollback() }()

    ids := make([]uint64, 0, len(lines))
    for _, ln := range lines {
        res, err := tx.ExecContext(ctx,
            `INSERT INTO bookings (space_id, advertiser_id, start_date, end_date, status, total_price,
                                   contact_name, contact_phone, contact_address, reference)
             VALUES (?,?,?,?,?,?,?,?,?,?)`,
            ln.SpaceID, advertiserID, ln.StartDate, ln.EndDate, model.BookingPending, ln.TotalPrice,
            contact.Name, contact.Phone, contact.Address, reference)
        if err != nil {
            return nil, err
        }
        id, err := res.LastInsertId()
        if err != nil {
            return nil, err
        }
        ids = append(ids, uint64(id))
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    return ids, nil
}

// BookingDetail is the projection returned by the booking list endpoints.
// Advertiser-facing lists omit the contact snapshot; owner and admin lists
// include it together with the advertiser identity.
type BookingDetail struct {
    ID              uint64   `json:"id"`
    SpaceID         uint64   `json:"space_id"`
    SpaceTitle      string   `json:"space_title"`
    SpaceSlug       string   `json:"space_slug"`
    City            string   `json:"city"`
    StartDate       string   `json:"start_date"`
    EndDate         string   `json:"end_date"`
    Status          string   `json:"status"`
    TotalPrice      float64  `json:"total_price"`
    Reference       string   `json:"reference"`
    AdvertiserID    uint64   `json:"advertiser_id,omitempty"`
    AdvertiserName  string   `json:"advertiser_name,omitempty"`
    AdvertiserEmail string   `json:"advertiser_email,omitempty"`
    Contact         *Contact `json:"contact,omitempty"`
    CreatedAt       string   `json:"created_at"`
}

const bookingDetailQ = `SELECT b.id, b.space_id, s.title, s.slug, s.city,
                               DATE_FORMAT(b.start_date, '%Y-%m-%d'), DATE_FORMAT(b.end_date, '%Y-%m-%d'),
                               b.status, b.total_price, b.reference,
                               b.advertiser_id, u.name, u.email,
                               b.contact_name, b.contact_phone, b.contact_address,
                               b.created_at
                        FROM bookings b
                        JOIN spaces s ON s.id = b.space_id
                        JOIN users u ON u.id = b.advertiser_id`

func (r *BookingRepo) listDetails(ctx context.Context, where string, includeContact bool, args ...interface{}) ([]BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, bookingDetailQ+where+" ORDER BY b.created_at DESC", args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookingDetail, 0)
    for rows.Next() {
        var d BookingDetail
        var c Contact
        var createdAt time.Time
        if err := rows.Scan(&d.ID, &d.SpaceID, &d.SpaceTitle, &d.SpaceSlug, &d.City,
            &d.StartDate, &d.EndDate, &d.Status, &d.TotalPrice, &d.Reference,
            &d.AdvertiserID, &d.AdvertiserName, &d.AdvertiserEmail,
            &c.Name, &c.Phone, &c.Address, &createdAt); err != nil {
            return nil, err
        }
        d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        if includeContact {
            d.Contact = &c
        } else {
            d.AdvertiserID = 0
            d.AdvertiserName = ""
            d.AdvertiserEmail = ""
        }
        details = append(details, d)
    }
    return details, rows.Err()
}

// ListByAdvertiser returns the advertiser's own bookings, newest first.
func (r *BookingRepo) ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]BookingDetail, error) {
    return r.listDetails(ctx, " WHERE b.advertiser_id = ?", false, advertiserID)
}

// ListForOwner returns every booking on spaces owned by the given agency.
func (r *BookingRepo) ListForOwner(ctx context.Context, ownerID uint64) ([]BookingDetail, error) {
    return r.listDetails(ctx, " WHERE s.owner_id = ?", true, ownerID)
}

// ListAll returns every booking in the marketplace, for the admin dashboard.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
    return r.listDetails(ctx, "", true)
}

// ConfirmedInfo carries everything the booking.confirmed event needs, so
// the publisher does not have to query again.
type ConfirmedInfo struct {
    BookingID       uint64
    SpaceID         uint64
    SpaceTitle      string
    City            string
    OwnerID         uint64
    AgencyName      string
    AdvertiserID    uint64
    AdvertiserName  string
    AdvertiserEmail string
    StartDate       string
    EndDate         string
    TotalPrice      float64
}

// lockBooking loads a booking row FOR UPDATE along with its space's owner.
func lockBooking(ctx context.Context, tx *sql.Tx, bookingID uint64) (b model.Booking, ownerID uint64, err error) {
    err = tx.QueryRowContext(ctx,
        `SELECT b.id, b.space_id, b.advertiser_id,
                DATE_FORMAT(b.start_date, '%Y-%m-%d'), DATE_FORMAT(b.end_date, '%Y-%m-%d'),
                b.status, b.total_price, s.owner_id
         FROM bookings b JOIN spaces s ON s.id = b.space_id
         WHERE b.id = ? FOR UPDATE`, bookingID).Scan(
        &b.ID, &b.SpaceID, &b.AdvertiserID, &b.StartDate, &b.EndDate,
        &b.Status, &b.TotalPrice, &ownerID)
    return b, ownerID, err
}

// Confirm moves a pending booking to confirmed and blocks every day of its
// inclusive range on the space.  When ownerID is non-zero the booking's
// space must belong to that agency.  The insert uses INSERT IGNORE against
// the (space_id, day) unique index, so a day can never be blocked twice; if
// any day of the range is already blocked by another confirmed booking the
// whole confirmation fails with ErrDateConflict and nothing is written.
func (r *BookingRepo) Confirm(ctx context.Context, bookingID, ownerID uint64) (*ConfirmedInfo, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    defer func() { _ = tx.Rollback() }()

    b, actualOwner, err := lockBooking(ctx, tx, bookingID)
    if err != nil {
        return nil, err
    }
    if ownerID != 0 && actualOwner != ownerID {
        return nil, ErrForbidden
    }
    if !model.CanTransition(b.Status, model.BookingConfirmed) {
        return nil, ErrInvalidStatus
    }

    days, err := utils.ExpandDateRange(b.StartDate, b.EndDate)
    if err != nil {
        return nil, err
    }
    var clash int
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM space_blocked_dates
         WHERE space_id = ? AND day BETWEEN ? AND ?`,
        b.SpaceID, b.StartDate, b.EndDate).Scan(&clash); err != nil {
        return nil, err
    }
    if clash > 0 {
        return nil, ErrDateConflict
    }
    for _, day := range days {
        if _, err := tx.ExecContext(ctx,
            "INSERT IGNORE INTO space_blocked_dates (space_id, day) VALUES (?,?)",
            b.SpaceID, day); err != nil {
            return nil, err
        }
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE id=?", model.BookingConfirmed, bookingID); err != nil {
        return nil, err
    }

    info := &ConfirmedInfo{
        BookingID: b.ID, SpaceID: b.SpaceID, OwnerID: actualOwner,
        AdvertiserID: b.AdvertiserID, StartDate: b.StartDate, EndDate: b.EndDate,
        TotalPrice: b.TotalPrice,
    }
    if err := tx.QueryRowContext(ctx,
        `SELECT s.title, s.city, o.name, a.name, a.email
         FROM spaces s, users o, users a
         WHERE s.id = ? AND o.id = s.owner_id AND a.id = ?`,
        b.SpaceID, b.AdvertiserID).Scan(
        &info.SpaceTitle, &info.City, &info.AgencyName,
        &info.AdvertiserName, &info.AdvertiserEmail); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    return info, nil
}

// Reject moves a pending booking to rejected.  No dates are touched because
// pending bookings never blocked any.
func (r *BookingRepo) Reject(ctx context.Context, bookingID, ownerID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    b, actualOwner, err := lockBooking(ctx, tx, bookingID)
    if err != nil {
        return err
    }
    if ownerID != 0 && actualOwner != ownerID {
        return ErrForbidden
    }
    if !model.CanTransition(b.Status, model.BookingRejected) {
        return ErrInvalidStatus
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE id=?", model.BookingRejected, bookingID); err != nil {
        return err
    }
    return tx.Commit()
}

// Cancel moves a pending or confirmed booking to cancelled.  For a
// confirmed booking exactly the days of its range are released from the
// space's blocked dates in the same transaction; a pending booking never
// blocked any, and its range may belong to another confirmed booking, so
// no dates are touched.  When advertiserID is non-zero the booking must
// belong to that advertiser; admin callers pass 0.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, advertiserID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    b, _, err := lockBooking(ctx, tx, bookingID)
    if err != nil {
        return err
    }
    if advertiserID != 0 && b.AdvertiserID != advertiserID {
        return ErrForbidden
    }
    if !model.CanTransition(b.Status, model.BookingCancelled) {
        return ErrInvalidStatus
    }
    if b.Status == model.BookingConfirmed {
        if _, err := tx.ExecContext(ctx,
            "DELETE FROM space_blocked_dates WHERE space_id=? AND day BETWEEN ? AND ?",
            b.SpaceID, b.StartDate, b.EndDate); err != nil {
            return err
        }
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE id=?", model.BookingCancelled, bookingID); err != nil {
        return err
    }
    return tx.Commit()
}

// CompleteExpired advances confirmed bookings whose end date has passed to
// completed and returns the number of rows affected.  Blocked dates stay in
// place; past days are inert.  Called periodically by the maintenance
// worker.
func (r *BookingRepo) CompleteExpired(ctx context.Context, today string) (int64, error) {
    res, err := r.db.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE status=? AND end_date < ?",
        model.BookingCompleted, model.BookingConfirmed, today)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
