package domain

import (
	"strings"
	"time"
)

// Invitation is an email-based offer to join a workspace. AcceptedAt and
// DeclinedAt are mutually exclusive and terminal; expiry is evaluated lazily
// when someone tries to respond, never by a background sweep.
type Invitation struct {
	InvitationID string     `json:"invitationID" db:"invitation_id"` // External identifier (UUID)
	WorkspaceID  string     `json:"workspaceID" db:"workspace_id"`
	Email        string     `json:"email"`               // Case-normalized at creation
	RoleSlug     *string    `json:"roleSlug" db:"role_slug"` // Role granted on acceptance, optional
	ExpiresAt    *time.Time `json:"expiresAt" db:"expires_at"`
	AcceptedAt   *time.Time `json:"acceptedAt" db:"accepted_at"`
	DeclinedAt   *time.Time `json:"declinedAt" db:"declined_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsResolved reports whether the invitation was already accepted or declined.
func (i *Invitation) IsResolved() bool {
	return i.AcceptedAt != nil || i.DeclinedAt != nil
}

// IsExpired reports whether the invitation is past its expiry at the given time.
// Invitations without an expiry never expire.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// IsPending reports whether the invitation can still be responded to.
func (i *Invitation) IsPending(now time.Time) bool {
	return !i.IsResolved() && !i.IsExpired(now)
}

// EmailMatches compares the invitee email with the given address, ignoring
// case and surrounding whitespace.
func (i *Invitation) EmailMatches(email string) bool {
	return i.Email != "" && i.Email == NormalizeEmail(email)
}

// NormalizeEmail lowercases and trims an email address. All invitee emails
// are stored in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
