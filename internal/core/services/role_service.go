package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// roleService implements the RoleSvcFacade interface over the pluggable
// role/permission store.
type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewRoleService creates a new role service with the provided dependencies.
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade) portssvc.RoleSvcFacade {
	return &roleService{roleRepo: roleRepo}
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

// RoleExists reports whether a role with the slug exists in the scope.
func (s *roleService) RoleExists(ctx context.Context, slug, scope string) (bool, error) {
	_, err := s.roleRepo.FindRoleBySlug(ctx, slug, scope)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to look up role",
			slog.String("role_slug", slug),
			slog.String("scope", scope))
		return false, err
	}
	return true, nil
}

// RolesForMember retrieves the roles granted to the user within the
// workspace, in grant order.
func (s *roleService) RolesForMember(ctx context.Context, workspaceID, userID string) ([]domain.Role, error) {
	roles, err := s.roleRepo.FindRolesByMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to resolve member roles",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return roles, nil
}

// GrantHasPermission reports whether any of the roles grants the action.
func (s *roleService) GrantHasPermission(roles []domain.Role, action domain.WorkspaceAction) bool {
	for i := range roles {
		if roles[i].HasPermission(action) {
			return true
		}
	}
	return false
}

// EnsureDefaultRoles seeds the built-in workspace roles. Inserts are
// idempotent, so calling this on every startup is safe.
func (s *roleService) EnsureDefaultRoles(ctx context.Context) error {
	for _, role := range domain.DefaultRoles() {
		role.RoleID = uuid.NewString()
		if err := s.roleRepo.SaveRole(ctx, role); err != nil {
			s.LogError(ctx, err, "Failed to seed default role",
				slog.String("role_slug", role.Slug))
			return err
		}
	}
	s.LogInfo(ctx, "Default workspace roles ensured",
		slog.Int("count", len(domain.DefaultRoles())))
	return nil
}
