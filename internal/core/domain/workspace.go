package domain

// Workspace is a named tenant container that groups members under role-based
// permissions. The owner is a single mandatory user who never appears in the
// membership table; billing may be delegated to a member.
type Workspace struct {
	WorkspaceID      string         `json:"workspaceID" db:"workspace_id"` // Primary Key (UUID)
	Name             string         `json:"name"`
	Slug             *string        `json:"slug"` // Optional URL-safe identifier, unique when set
	Meta             map[string]any `json:"meta"` // Free-form metadata
	OwnerID          string         `json:"ownerID" db:"owner_id"`
	BillingContactID *string        `json:"billingContactID" db:"billing_contact_id"` // Falls back to owner when unset
	AuditFields
}

// IsOwnedBy reports whether the given user is the workspace owner.
func (w *Workspace) IsOwnedBy(userID string) bool {
	return userID != "" && w.OwnerID == userID
}

// WorkspaceAction identifies an operation subject to authorization.
type WorkspaceAction string

const (
	ActionView              WorkspaceAction = "view"
	ActionCreate            WorkspaceAction = "create"
	ActionUpdate            WorkspaceAction = "update"
	ActionDelete            WorkspaceAction = "delete"
	ActionViewMembers       WorkspaceAction = "view-members"
	ActionManageMembers     WorkspaceAction = "manage-members"
	ActionManageInvitations WorkspaceAction = "manage-invitations"
)
