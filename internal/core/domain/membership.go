package domain

import "time"

// Membership is the soft-deletable association between a Workspace and a User.
// A membership row is never hard-deleted once created: removal only sets
// RemovedAt, and re-adding a previously removed user reactivates the existing
// row instead of inserting a duplicate.
type Membership struct {
	MembershipID string     `json:"membershipID" db:"membership_id"` // External identifier (UUID)
	WorkspaceID  string     `json:"workspaceID" db:"workspace_id"`
	UserID       string     `json:"userID" db:"user_id"`
	RoleSlugs    []string   `json:"roleSlugs" db:"role_slugs"` // Ordered role assignments, workspace scope
	LastJoinedAt time.Time  `json:"lastJoinedAt" db:"last_joined_at"`
	RemovedAt    *time.Time `json:"removedAt" db:"removed_at"` // nil = active
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the member has not been soft-removed.
func (m *Membership) IsActive() bool {
	return m.RemovedAt == nil
}
