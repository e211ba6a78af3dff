package model

import "time"

// Review is an advertiser's rating of an ad space they have dealt with.
//
// Fields:
//  ID        – primary key identifier.
//  SpaceID   – ad space being reviewed.
//  UserID    – author of the review.
//  Rating    – star rating between 1 and 5.
//  Comment   – optional free-form text.
//  CreatedAt – creation timestamp.
type Review struct {
    ID        uint64    // reviews.id
    SpaceID   uint64    // reviews.space_id
    UserID    uint64    // reviews.user_id
    Rating    uint8     // reviews.rating
    Comment   *string   // reviews.comment (nullable)
    CreatedAt time.Time // reviews.created_at
}
