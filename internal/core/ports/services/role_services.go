package services

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// RoleResolverSvc resolves role identifiers against the role/permission
// store, scoped to the configured workspace scope.
type RoleResolverSvc interface {
	// RoleExists reports whether a role with the slug exists in the scope.
	RoleExists(ctx context.Context, slug, scope string) (bool, error)

	// RolesForMember retrieves the roles granted to the user within the
	// workspace, read fresh from the store.
	RolesForMember(ctx context.Context, workspaceID, userID string) ([]domain.Role, error)

	// GrantHasPermission reports whether any of the roles grants the action.
	GrantHasPermission(roles []domain.Role, action domain.WorkspaceAction) bool
}

// RoleBootstrapSvc seeds the built-in workspace roles. Called exactly once
// during process startup; safe to call again (idempotent inserts).
type RoleBootstrapSvc interface {
	EnsureDefaultRoles(ctx context.Context) error
}

// RoleSvcFacade combines role resolution and bootstrap.
type RoleSvcFacade interface {
	RoleResolverSvc
	RoleBootstrapSvc
}
