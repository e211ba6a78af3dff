package repository

import (
    "context"
    "database/sql"
    "time"
)

// ReviewRepo provides create and list operations for ad space reviews.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns its ID.  The rating must already be
// validated to the 1..5 range by the handler.
func (r *ReviewRepo) Create(ctx context.Context, spaceID, userID uint64, rating uint8, comment *string) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO reviews (space_id, user_id, rating, comment) VALUES (?,?,?,?)",
        spaceID, userID, rating, comment)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// ReviewDetail is the projection shown on the listing page: the review
// plus its author's display name.
type ReviewDetail struct {
    ID        uint64  `json:"id"`
    Rating    uint8   `json:"rating"`
    Comment   *string `json:"comment,omitempty"`
    Author    string  `json:"author"`
    CreatedAt string  `json:"created_at"`
}

// ListBySpace returns a space's reviews, newest first, along with the
// average rating (0 when there are none).
func (r *ReviewRepo) ListBySpace(ctx context.Context, spaceID uint64) ([]ReviewDetail, float64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT r.id, r.rating, r.comment, u.name, r.created_at
         FROM reviews r JOIN users u ON u.id = r.user_id
         WHERE r.space_id = ? ORDER BY r.created_at DESC`, spaceID)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()
    reviews := make([]ReviewDetail, 0)
    var sum float64
    for rows.Next() {
        var d ReviewDetail
        var createdAt time.Time
        if err := rows.Scan(&d.ID, &d.Rating, &d.Comment, &d.Author, &createdAt); err != nil {
            return nil, 0, err
        }
        d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        sum += float64(d.Rating)
        reviews = append(reviews, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    avg := 0.0
    if len(reviews) > 0 {
        avg = sum / float64(len(reviews))
    }
    return reviews, avg, nil
}
