package model

import "time"

// Roles carried in the users table and the access token.
const (
    RoleAdmin = "ADMIN"
    RoleStaff = "STAFF"
)

// User represents a back-office account as stored in the `users` table.
// PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
    ID           uint64    `json:"id"`           // users.id
    Username     string    `json:"username"`     // users.username
    PasswordHash string    `json:"-"`            // users.password_hash
    Role         string    `json:"role"`         // users.role (ADMIN or STAFF)
    IsActive     bool      `json:"is_active"`    // users.is_active
    CreatedAt    time.Time `json:"created_at"`   // users.created_at
    UpdatedAt    time.Time `json:"updated_at"`   // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}

func ValidRole(r string) bool {
    return r == RoleAdmin || r == RoleStaff
}
