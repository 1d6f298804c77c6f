package models

import (
	"database/sql"
	"time"
)

// User is the persistence model for a user row. Nullable columns use
// database/sql types; the domain type uses pointers instead.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	AuthProvider string         `db:"auth_provider"`
	IsVerified   bool           `db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
