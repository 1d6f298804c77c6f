package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
)

// authorizationService implements the AuthorizationSvcFacade interface.
// It combines three sources, in order: the ownership shortcut, explicit
// per-workspace role grants, and active membership (for view-style actions).
// Membership and role data are read fresh on every decision.
type authorizationService struct {
	BaseService
	membershipRepo portsrepo.MembershipReader
	roleResolver   portssvc.RoleResolverSvc
}

// NewAuthorizationService creates a new authorization engine with the
// provided dependencies.
func NewAuthorizationService(
	membershipRepo portsrepo.MembershipReader,
	roleResolver portssvc.RoleResolverSvc,
) portssvc.AuthorizationSvcFacade {
	return &authorizationService{
		membershipRepo: membershipRepo,
		roleResolver:   roleResolver,
	}
}

var _ portssvc.AuthorizationSvcFacade = (*authorizationService)(nil)

// Decide reports whether the principal may perform the action on the
// workspace. The owner is a superuser for their workspace; delete is
// owner-only and never reachable through a role grant.
func (s *authorizationService) Decide(ctx context.Context, principal domain.Principal, workspace *domain.Workspace, action domain.WorkspaceAction) (bool, error) {
	if principal == nil || principal.PrincipalID() == "" {
		return false, nil
	}

	// No workspace in scope yet: creation only requires a recognized principal.
	if action == domain.ActionCreate {
		return true, nil
	}

	if workspace == nil {
		return false, nil
	}

	userID := principal.PrincipalID()

	if workspace.IsOwnedBy(userID) {
		return true, nil
	}

	// Nobody but the owner may delete a workspace, role grants included.
	if action == domain.ActionDelete {
		return false, nil
	}

	roles, err := s.roleResolver.RolesForMember(ctx, workspace.WorkspaceID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to resolve roles for authorization decision",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspace.WorkspaceID))
		return false, err
	}

	if s.roleResolver.GrantHasPermission(roles, action) {
		return true, nil
	}

	// View-style actions are also granted by plain active membership.
	if action == domain.ActionView || action == domain.ActionViewMembers {
		membership, err := s.membershipRepo.FindMembership(ctx, workspace.WorkspaceID, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return false, nil
			}
			s.LogError(ctx, err, "Failed to look up membership for authorization decision",
				slog.String("user_id", userID),
				slog.String("workspace_id", workspace.WorkspaceID))
			return false, err
		}
		return membership.IsActive(), nil
	}

	return false, nil
}

// Authorize is Decide with a denial error.
func (s *authorizationService) Authorize(ctx context.Context, principal domain.Principal, workspace *domain.Workspace, action domain.WorkspaceAction) error {
	allowed, err := s.Decide(ctx, principal, workspace, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.LogDebug(ctx, "Authorization denied",
			slog.String("action", string(action)))
		return apperrors.ErrForbidden
	}
	return nil
}
