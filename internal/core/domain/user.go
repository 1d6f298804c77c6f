package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash *string      `json:"-" db:"password_hash"` // nil for external providers
	AuthProvider AuthProvider `json:"authProvider" db:"auth_provider"`
	IsVerified   bool         `json:"isVerified" db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete

	// Refresh token state, stored hashed.
	RefreshTokenHash       *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// PrincipalID implements Principal.
func (u *User) PrincipalID() string { return u.UserID }

// PrincipalEmail implements Principal.
func (u *User) PrincipalEmail() string { return u.Email }

// Principal is the authenticated identity the authorization engine is written
// against. The concrete user type is injected at composition time; anything
// that is not a recognized principal is denied every action.
type Principal interface {
	PrincipalID() string
	PrincipalEmail() string
}

var _ Principal = (*User)(nil)

// GoogleUserInfo holds the subset of Google's userinfo payload the
// application cares about.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
