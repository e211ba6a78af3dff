package model

import "time"

// Ad space type values stored in spaces.type.
const (
    SpaceTypeBillboard     = "billboard"
    SpaceTypeDigitalScreen = "digital_screen"
    SpaceTypeTransit       = "transit"
    SpaceTypeOther         = "other"
)

// DemographicTags lists the audience tags a listing may target.  The
// recommendation wizard scores listings by overlap with these tags.
var DemographicTags = []string{
    "students", "professionals", "families", "tourists", "gen_z", "hnw",
}

// AdSpace represents a bookable out-of-home advertising slot (billboard,
// digital screen, transit ad) owned by one agency.  This struct corresponds
// to a row in the `spaces` table; images, demographic tags and blocked
// dates live in side tables and are loaded on demand.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the owning agency.
//  Title       – listing headline.
//  Slug        – unique URL slug derived from the title.
//  Type        – one of billboard, digital_screen, transit, other.
//  Description – free-form listing description.
//  City        – city or town the space is located in.
//  District    – district or state (optional).
//  Address     – specific spot or landmark (optional).
//  Dimensions  – physical size, e.g. "20x10 ft" (optional).
//  PricePerDay – daily rental price.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type AdSpace struct {
    ID          uint64    // spaces.id
    OwnerID     uint64    // spaces.owner_id
    Title       string    // spaces.title
    Slug        string    // spaces.slug
    Type        string    // spaces.type
    Description *string   // spaces.description (nullable)
    City        string    // spaces.city
    District    *string   // spaces.district (nullable)
    Address     *string   // spaces.address (nullable)
    Dimensions  *string   // spaces.dimensions (nullable)
    PricePerDay float64   // spaces.price_per_day
    CreatedAt   time.Time // spaces.created_at
    UpdatedAt   time.Time // spaces.updated_at

    // Loaded from side tables when requested.
    Demographics []string // space_demographics.tag
    BlockedDates []string // space_blocked_dates.day, ISO YYYY-MM-DD
}

// SpaceImage is one uploaded photo of an ad space.  Position preserves
// the order images were attached in; the first image is the cover shown
// on listing cards.
//
// Fields:
//  ID       – primary key identifier.
//  SpaceID  – space this image belongs to.
//  URL      – public path of the stored original.
//  ThumbURL – public path of the generated thumbnail.
//  Position – zero-based display order.
type SpaceImage struct {
    ID       uint64 // space_images.id
    SpaceID  uint64 // space_images.space_id
    URL      string // space_images.url
    ThumbURL string // space_images.thumb_url
    Position uint32 // space_images.position
}
