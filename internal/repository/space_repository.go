package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/adplaze/ooh-marketplace/internal/model"
)

// SpaceRepo provides CRUD operations for ad space listings and their side
// tables (images, demographic tags, blocked dates).  All multi-table writes
// run inside a transaction so a listing can never be half-created or
// half-deleted.
type SpaceRepo struct {
    db *sql.DB
}

// NewSpaceRepo returns a new SpaceRepo bound to the given database.
func NewSpaceRepo(db *sql.DB) *SpaceRepo { return &SpaceRepo{db: db} }

// SpaceSummary is the listing-card projection used by browse endpoints.
type SpaceSummary struct {
    ID          uint64  `json:"id"`
    Title       string  `json:"title"`
    Slug        string  `json:"slug"`
    Type        string  `json:"type"`
    City        string  `json:"city"`
    Address     *string `json:"address,omitempty"`
    Dimensions  *string `json:"dimensions,omitempty"`
    PricePerDay float64 `json:"price_per_day"`
    CoverURL    *string `json:"image_url,omitempty"`
}

// SpaceDetail is the full listing page projection: the space itself plus
// owner summary, images, demographic tags and blocked dates.
type SpaceDetail struct {
    ID           uint64             `json:"id"`
    Title        string             `json:"title"`
    Slug         string             `json:"slug"`
    Type         string             `json:"type"`
    Description  *string            `json:"description,omitempty"`
    City         string             `json:"city"`
    District     *string            `json:"district,omitempty"`
    Address      *string            `json:"address,omitempty"`
    Dimensions   *string            `json:"dimensions,omitempty"`
    PricePerDay  float64            `json:"price_per_day"`
    Demographics []string           `json:"demographics"`
    BlockedDates []string           `json:"availability"`
    Images       []model.SpaceImage `json:"-"`
    ImageURLs    []string           `json:"image_urls"`
    Owner        struct {
        ID          uint64  `json:"id"`
        Name        string  `json:"name"`
        Email       string  `json:"email"`
        Phone       *string `json:"phone,omitempty"`
        CompanyName *string `json:"company_name,omitempty"`
    } `json:"owner"`
}

// SpaceFilter narrows the public browse query.  Zero values mean "no
// constraint".
type SpaceFilter struct {
    City     string
    Type     string
    Query    string  // matches title and address
    MinPrice float64
    MaxPrice float64
}

// Create inserts a listing with its demographic tags and images in one
// transaction and returns the new ID.
func (r *SpaceRepo) Create(ctx context.Context, s *model.AdSpace, images []model.SpaceImage) (uint64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    defer func() { _ = tx.Rollback() }()

    res, err := tx.ExecContext(ctx,
        `INSERT INTO spaces (owner_id, title, slug, type, description, city, district, address, dimensions, price_per_day)
         VALUES (?,?,?,?,?,?,?,?,?,?)`,
        s.OwnerID, s.Title, s.Slug, s.Type, s.Description, s.City, s.District, s.Address, s.Dimensions, s.PricePerDay)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    spaceID := uint64(id)

    for _, tag := range s.Demographics {
        if _, err := tx.ExecContext(ctx,
            "INSERT IGNORE INTO space_demographics (space_id, tag) VALUES (?,?)", spaceID, tag); err != nil {
            return 0, err
        }
    }
    for i, img := range images {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO space_images (space_id, url, thumb_url, position) VALUES (?,?,?,?)",
            spaceID, img.URL, img.ThumbURL, i); err != nil {
            return 0, err
        }
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    return spaceID, nil
}

// List returns listing summaries matching the filter, newest first.  The
// cover image is the first attached photo when present.
func (r *SpaceRepo) List(ctx context.Context, f SpaceFilter) ([]SpaceSummary, error) {
    q := `SELECT s.id, s.title, s.slug, s.type, s.city, s.address, s.dimensions, s.price_per_day,
                 (SELECT url FROM space_images si WHERE si.space_id = s.id ORDER BY si.position LIMIT 1)
          FROM spaces s WHERE 1=1`
    args := []interface{}{}
    if f.City != "" {
        q += " AND s.city = ?"
        args = append(args, f.City)
    }
    if f.Type != "" {
        q += " AND s.type = ?"
        args = append(args, f.Type)
    }
    if f.Query != "" {
        q += " AND (s.title LIKE ? OR s.address LIKE ? OR s.city LIKE ?)"
        like := "%" + strings.TrimSpace(f.Query) + "%"
        args = append(args, like, like, like)
    }
    if f.MinPrice > 0 {
        q += " AND s.price_per_day >= ?"
        args = append(args, f.MinPrice)
    }
    if f.MaxPrice > 0 {
        q += " AND s.price_per_day <= ?"
        args = append(args, f.MaxPrice)
    }
    q += " ORDER BY s.created_at DESC"

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]SpaceSummary, 0)
    for rows.Next() {
        var s SpaceSummary
        if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Type, &s.City, &s.Address,
            &s.Dimensions, &s.PricePerDay, &s.CoverURL); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// ListAll returns every listing with demographics loaded.  The trending
// ranking and the recommendation wizard both score over the full inventory.
func (r *SpaceRepo) ListAll(ctx context.Context) ([]model.AdSpace, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, owner_id, title, slug, type, description, city, district, address, dimensions, price_per_day, created_at, updated_at
         FROM spaces ORDER BY created_at DESC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    spaces := make([]model.AdSpace, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var s model.AdSpace
        if err := rows.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Slug, &s.Type, &s.Description,
            &s.City, &s.District, &s.Address, &s.Dimensions, &s.PricePerDay,
            &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        s.Demographics = []string{}
        index[s.ID] = len(spaces)
        spaces = append(spaces, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(spaces) == 0 {
        return spaces, nil
    }
    drows, err := r.db.QueryContext(ctx, "SELECT space_id, tag FROM space_demographics")
    if err != nil {
        return nil, err
    }
    defer drows.Close()
    for drows.Next() {
        var spaceID uint64
        var tag string
        if err := drows.Scan(&spaceID, &tag); err != nil {
            return nil, err
        }
        if idx, ok := index[spaceID]; ok {
            spaces[idx].Demographics = append(spaces[idx].Demographics, tag)
        }
    }
    return spaces, drows.Err()
}

// GetBySlug loads the full listing page projection for one space.  It
// returns sql.ErrNoRows when the slug does not exist.
func (r *SpaceRepo) GetBySlug(ctx context.Context, slug string) (*SpaceDetail, error) {
    const q = `SELECT s.id, s.title, s.slug, s.type, s.description, s.city, s.district, s.address,
                      s.dimensions, s.price_per_day,
                      u.id, u.name, u.email, u.phone, u.company_name
               FROM spaces s
               JOIN users u ON u.id = s.owner_id
               WHERE s.slug = ?`
    var det SpaceDetail
    if err := r.db.QueryRowContext(ctx, q, slug).Scan(
        &det.ID, &det.Title, &det.Slug, &det.Type, &det.Description, &det.City, &det.District,
        &det.Address, &det.Dimensions, &det.PricePerDay,
        &det.Owner.ID, &det.Owner.Name, &det.Owner.Email, &det.Owner.Phone, &det.Owner.CompanyName,
    ); err != nil {
        return nil, err
    }
    var err error
    if det.Demographics, err = r.demographics(ctx, det.ID); err != nil {
        return nil, err
    }
    if det.BlockedDates, err = r.BlockedDates(ctx, det.ID); err != nil {
        return nil, err
    }
    if det.Images, err = r.images(ctx, det.ID); err != nil {
        return nil, err
    }
    det.ImageURLs = make([]string, 0, len(det.Images))
    for _, img := range det.Images {
        det.ImageURLs = append(det.ImageURLs, img.URL)
    }
    return &det, nil
}

// GetByID returns the bare spaces row.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (model.AdSpace, error) {
    var s model.AdSpace
    err := r.db.QueryRowContext(ctx,
        `SELECT id, owner_id, title, slug, type, description, city, district, address, dimensions, price_per_day, created_at, updated_at
         FROM spaces WHERE id=? LIMIT 1`, id).Scan(
        &s.ID, &s.OwnerID, &s.Title, &s.Slug, &s.Type, &s.Description,
        &s.City, &s.District, &s.Address, &s.Dimensions, &s.PricePerDay,
        &s.CreatedAt, &s.UpdatedAt)
    return s, err
}

// SpaceUpdate carries the editable listing fields.  Nil pointers leave the
// stored value untouched.
type SpaceUpdate struct {
    Title       *string
    PricePerDay *float64
    Address     *string
    Description *string
    Dimensions  *string
}

// Update patches a listing.  It returns sql.ErrNoRows when the space does
// not exist.  When ownerID is non-zero the space must also belong to that
// agency; ErrForbidden is returned otherwise.  Admin callers pass ownerID 0
// to bypass the ownership check.
func (r *SpaceRepo) Update(ctx context.Context, spaceID, ownerID uint64, upd SpaceUpdate) error {
    var actual uint64
    if err := r.db.QueryRowContext(ctx,
        "SELECT owner_id FROM spaces WHERE id=?", spaceID).Scan(&actual); err != nil {
        return err
    }
    if ownerID != 0 && actual != ownerID {
        return ErrForbidden
    }
    sets := []string{}
    args := []interface{}{}
    if upd.Title != nil {
        sets = append(sets, "title=?")
        args = append(args, *upd.Title)
    }
    if upd.PricePerDay != nil {
        sets = append(sets, "price_per_day=?")
        args = append(args, *upd.PricePerDay)
    }
    if upd.Address != nil {
        sets = append(sets, "address=?")
        args = append(args, *upd.Address)
    }
    if upd.Description != nil {
        sets = append(sets, "description=?")
        args = append(args, *upd.Description)
    }
    if upd.Dimensions != nil {
        sets = append(sets, "dimensions=?")
        args = append(args, *upd.Dimensions)
    }
    if len(sets) == 0 {
        return nil
    }
    args = append(args, spaceID)
    _, err := r.db.ExecContext(ctx,
        "UPDATE spaces SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
    return err
}

// Delete removes a space and everything referencing it: bookings, reviews,
// images, demographic tags and blocked dates, all in one transaction.  A
// concurrent checkout either lands before the delete (and is removed with
// the rest) or fails its foreign key.  It returns the number of bookings
// deleted and sql.ErrNoRows when the space does not exist.
func (r *SpaceRepo) Delete(ctx context.Context, spaceID uint64) (int64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    defer func() { _ = tx.Rollback() }()

    var exists uint64
    if err := tx.QueryRowContext(ctx,
        "SELECT id FROM spaces WHERE id=? FOR UPDATE", spaceID).Scan(&exists); err != nil {
        return 0, err
    }
    res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE space_id=?", spaceID)
    if err != nil {
        return 0, err
    }
    removed, _ := res.RowsAffected()
    for _, q := range []string{
        "DELETE FROM reviews WHERE space_id=?",
        "DELETE FROM space_images WHERE space_id=?",
        "DELETE FROM space_demographics WHERE space_id=?",
        "DELETE FROM space_blocked_dates WHERE space_id=?",
        "DELETE FROM spaces WHERE id=?",
    } {
        if _, err := tx.ExecContext(ctx, q, spaceID); err != nil {
            return 0, err
        }
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    return removed, nil
}

// ListByOwner returns an agency's own listings with blocked dates loaded,
// for the availability calendar on the agency dashboard.
func (r *SpaceRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.AdSpace, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, owner_id, title, slug, type, description, city, district, address, dimensions, price_per_day, created_at, updated_at
         FROM spaces WHERE owner_id=? ORDER BY created_at DESC`, ownerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    spaces := make([]model.AdSpace, 0)
    for rows.Next() {
        var s model.AdSpace
        if err := rows.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Slug, &s.Type, &s.Description,
            &s.City, &s.District, &s.Address, &s.Dimensions, &s.PricePerDay,
            &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        spaces = append(spaces, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    for i := range spaces {
        dates, err := r.BlockedDates(ctx, spaces[i].ID)
        if err != nil {
            return nil, err
        }
        spaces[i].BlockedDates = dates
    }
    return spaces, nil
}

// ToggleBlockedDate adds the day to the space's blocked dates when absent
// and removes it when present, returning whether the day is blocked after
// the call together with the current list.  The decision is made against
// the stored state inside a transaction, not against a client-supplied
// snapshot, so concurrent toggles cannot clobber each other.  When ownerID
// is non-zero the space must belong to that agency.
func (r *SpaceRepo) ToggleBlockedDate(ctx context.Context, spaceID, ownerID uint64, day string) (bool, []string, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return false, nil, err
    }
    defer func() { _ = tx.Rollback() }()

    var actual uint64
    if err := tx.QueryRowContext(ctx,
        "SELECT owner_id FROM spaces WHERE id=? FOR UPDATE", spaceID).Scan(&actual); err != nil {
        return false, nil, err
    }
    if ownerID != 0 && actual != ownerID {
        return false, nil, ErrForbidden
    }

    res, err := tx.ExecContext(ctx,
        "DELETE FROM space_blocked_dates WHERE space_id=? AND day=?", spaceID, day)
    if err != nil {
        return false, nil, err
    }
    deleted, _ := res.RowsAffected()
    blocked := false
    if deleted == 0 {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO space_blocked_dates (space_id, day) VALUES (?,?)", spaceID, day); err != nil {
            return false, nil, err
        }
        blocked = true
    }

    rows, err := tx.QueryContext(ctx,
        "SELECT DATE_FORMAT(day, '%Y-%m-%d') FROM space_blocked_dates WHERE space_id=? ORDER BY day", spaceID)
    if err != nil {
        return false, nil, err
    }
    defer rows.Close()
    dates := make([]string, 0)
    for rows.Next() {
        var d string
        if err := rows.Scan(&d); err != nil {
            return false, nil, err
        }
        dates = append(dates, d)
    }
    if err := rows.Err(); err != nil {
        return false, nil, err
    }
    if err := tx.Commit(); err != nil {
        return false, nil, err
    }
    return blocked, dates, nil
}

// BlockedDates returns the space's blocked days as sorted ISO day strings.
func (r *SpaceRepo) BlockedDates(ctx context.Context, spaceID uint64) ([]string, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT DATE_FORMAT(day, '%Y-%m-%d') FROM space_blocked_dates WHERE space_id=? ORDER BY day", spaceID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    dates := make([]string, 0)
    for rows.Next() {
        var d string
        if err := rows.Scan(&d); err != nil {
            return nil, err
        }
        dates = append(dates, d)
    }
    return dates, rows.Err()
}

func (r *SpaceRepo) demographics(ctx context.Context, spaceID uint64) ([]string, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT tag FROM space_demographics WHERE space_id=? ORDER BY tag", spaceID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    tags := make([]string, 0)
    for rows.Next() {
        var t string
        if err := rows.Scan(&t); err != nil {
            return nil, err
        }
        tags = append(tags, t)
    }
    return tags, rows.Err()
}

func (r *SpaceRepo) images(ctx context.Context, spaceID uint64) ([]model.SpaceImage, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, space_id, url, thumb_url, position FROM space_images WHERE space_id=? ORDER BY position", spaceID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    imgs := make([]model.SpaceImage, 0)
    for rows.Next() {
        var im model.SpaceImage
        if err := rows.Scan(&im.ID, &im.SpaceID, &im.URL, &im.ThumbURL, &im.Position); err != nil {
            return nil, err
        }
        imgs = append(imgs, im)
    }
    return imgs, rows.Err()
}
