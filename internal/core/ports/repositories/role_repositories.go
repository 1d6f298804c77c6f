package repositories

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// RoleReader defines read operations against the role/permission store.
// Role data is always read fresh; authorization decisions never work from a
// cross-request cache.
type RoleReader interface {
	// FindRoleBySlug retrieves a role by slug within the given scope.
	FindRoleBySlug(ctx context.Context, slug, scope string) (*domain.Role, error)

	// FindRolesByMembership retrieves the roles granted to a user within a
	// workspace, in grant order.
	FindRolesByMembership(ctx context.Context, workspaceID, userID string) ([]domain.Role, error)
}

// RoleWriter defines write operations for role data
type RoleWriter interface {
	// SaveRole persists a role; existing slugs within the scope are left
	// untouched, making bootstrap idempotent.
	SaveRole(ctx context.Context, role domain.Role) error
}

// RoleRepositoryFacade combines all role repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}
