package domain

import "slices"

// RoleScopeWorkspace is the default scope for workspace roles. The scope is
// configurable so an embedding application can partition its role table.
const RoleScopeWorkspace = "workspace"

// Role is a permission-bearing role resolved via the role store.
type Role struct {
	RoleID      string   `json:"roleID" db:"role_id"` // Primary Key (UUID)
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Scope       string   `json:"scope"`
	Permissions []string `json:"permissions"` // Action names this role grants
}

// HasPermission reports whether the role grants the given workspace action.
func (r *Role) HasPermission(action WorkspaceAction) bool {
	return slices.Contains(r.Permissions, string(action))
}

// Default role slugs seeded by EnsureDefaultRoles.
const (
	RoleSlugAdmin  = "workspace-admin"
	RoleSlugEditor = "workspace-editor"
	RoleSlugViewer = "workspace-viewer"
)

// DefaultRoles returns the built-in workspace roles. Deletion of a workspace
// is owner-only and is deliberately absent from every permission set.
func DefaultRoles() []Role {
	return []Role{
		{
			Name:  "Workspace Admin",
			Slug:  RoleSlugAdmin,
			Scope: RoleScopeWorkspace,
			Permissions: []string{
				string(ActionView),
				string(ActionUpdate),
				string(ActionViewMembers),
				string(ActionManageMembers),
				string(ActionManageInvitations),
			},
		},
		{
			Name:  "Workspace Editor",
			Slug:  RoleSlugEditor,
			Scope: RoleScopeWorkspace,
			Permissions: []string{
				string(ActionView),
				string(ActionUpdate),
				string(ActionViewMembers),
			},
		},
		{
			Name:  "Workspace Viewer",
			Slug:  RoleSlugViewer,
			Scope: RoleScopeWorkspace,
			Permissions: []string{
				string(ActionView),
				string(ActionViewMembers),
			},
		},
	}
}
