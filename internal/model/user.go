package model

import "time"

// Role values stored in users.role.  Advertisers book ad spaces, agencies
// own and manage them, and admins oversee the whole marketplace.
const (
    RoleAdvertiser = "advertiser"
    RoleAgency     = "agency"
    RoleAdmin      = "admin"
)

// User represents an application user record as stored in the `users`
// table.  Advertisers are created on first OAuth sign-in and have no
// credentials of their own; agencies are created by an admin and log in
// with a username and bcrypt-hashed password.  The agency profile fields
// (CompanyName, Website) are only populated for the agency role.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name (company name for agencies).
//  Email        – unique email address.
//  Phone        – optional contact phone number.
//  Role         – one of advertiser, agency, admin.
//  Username     – unique login name, agencies only (nil otherwise).
//  PasswordHash – bcrypt hash of the agency password (nil otherwise).
//  CompanyName  – agency profile: registered company name.
//  Website      – agency profile: company website URL.
//  ImageURL     – profile image URL supplied by the OAuth provider.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    Phone        *string   // users.phone (nullable)
    Role         string    // users.role
    Username     *string   // users.username (nullable, agency login)
    PasswordHash *string   // users.password_hash (nullable, agency login)
    CompanyName  *string   // users.company_name (nullable, agency profile)
    Website      *string   // users.website (nullable, agency profile)
    ImageURL     *string   // users.image_url (nullable)
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
