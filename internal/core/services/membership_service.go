package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// membershipService implements the MembershipSvcFacade interface. It is the
// soft-delete-aware join table between workspaces and users: rows are marked
// removed, never deleted, and re-adding a removed user reactivates the
// existing row.
type membershipService struct {
	BaseService
	membershipRepo portsrepo.MembershipRepositoryFacade
	workspaceRepo  portsrepo.WorkspaceReader
	userRepo       portsrepo.UserReader
	roleResolver   portssvc.RoleResolverSvc
	authorizer     portssvc.AuthorizationSvcFacade
}

// NewMembershipService creates a new membership service with the provided
// dependencies.
func NewMembershipService(
	membershipRepo portsrepo.MembershipRepositoryFacade,
	workspaceRepo portsrepo.WorkspaceReader,
	userRepo portsrepo.UserReader,
	roleResolver portssvc.RoleResolverSvc,
	authorizer portssvc.AuthorizationSvcFacade,
) portssvc.MembershipSvcFacade {
	return &membershipService{
		membershipRepo: membershipRepo,
		workspaceRepo:  workspaceRepo,
		userRepo:       userRepo,
		roleResolver:   roleResolver,
		authorizer:     authorizer,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

func (s *membershipService) requireWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}
	return workspace, nil
}

func (s *membershipService) authorize(ctx context.Context, workspace *domain.Workspace, requestingUserID string, action domain.WorkspaceAction) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	return s.authorizer.Authorize(ctx, requester, workspace, action)
}

// ListActiveMembers retrieves the non-removed members of a workspace.
func (s *membershipService) ListActiveMembers(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.Membership, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionViewMembers); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListActiveMembers(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active members",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if members == nil {
		members = []domain.Membership{}
	}
	return members, nil
}

// ListMembersIncludingRemoved retrieves every membership row of the
// workspace. This is the administrative visibility mode; it requires the
// manage-members permission.
func (s *membershipService) ListMembersIncludingRemoved(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.Membership, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionManageMembers); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListMembersIncludingRemoved(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members including removed",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if members == nil {
		members = []domain.Membership{}
	}
	return members, nil
}

// ListMembersPage pages through membership rows, newest first. The removed
// rows are administrative data, so includeRemoved raises the required
// permission from view-members to manage-members.
func (s *membershipService) ListMembersPage(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string, requestingUserID string) ([]domain.Membership, *string, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	action := domain.ActionViewMembers
	if includeRemoved {
		action = domain.ActionManageMembers
	}
	if err := s.authorize(ctx, workspace, requestingUserID, action); err != nil {
		return nil, nil, err
	}

	members, newToken, err := s.membershipRepo.ListMembershipsPage(ctx, workspaceID, includeRemoved, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to page members",
			slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}
	if members == nil {
		members = []domain.Membership{}
	}
	return members, newToken, nil
}

// GetMembership retrieves the row for (workspace, user) regardless of
// removal state.
func (s *membershipService) GetMembership(ctx context.Context, workspaceID, userID string, requestingUserID string) (*domain.Membership, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionViewMembers); err != nil {
		return nil, err
	}
	return s.membershipRepo.FindMembership(ctx, workspaceID, userID)
}

// AddMember adds the user to the workspace. If a row (including a removed
// one) already exists for the pair, it is reactivated: removed_at cleared,
// last_joined_at refreshed, role replaced when given. The owner can never be
// added as a member row.
func (s *membershipService) AddMember(ctx context.Context, workspaceID, targetUserID string, roleSlug *string, requestingUserID string) (*domain.Membership, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionManageMembers); err != nil {
		return nil, err
	}

	if workspace.IsOwnedBy(targetUserID) {
		s.LogWarn(ctx, "Attempt to add workspace owner as member",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return nil, apperrors.ErrInvalidOperation
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	var roleSlugs []string
	if roleSlug != nil && *roleSlug != "" {
		exists, err := s.roleResolver.RoleExists(ctx, *roleSlug, domain.RoleScopeWorkspace)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationFailedError("unknown role: " + *roleSlug)
		}
		roleSlugs = []string{*roleSlug}
	}

	now := time.Now()
	membership, err := s.membershipRepo.UpsertMembership(ctx, domain.Membership{
		MembershipID: uuid.NewString(),
		WorkspaceID:  workspaceID,
		UserID:       targetUserID,
		RoleSlugs:    roleSlugs,
		LastJoinedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add member",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Member added to workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID))
	return membership, nil
}

// UpdateMemberRole replaces the role grants of an active member. Plain
// membership without an active row fails with ErrNotFound.
func (s *membershipService) UpdateMemberRole(ctx context.Context, workspaceID, targetUserID, roleSlug string, requestingUserID string) (*domain.Membership, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionManageMembers); err != nil {
		return nil, err
	}

	exists, err := s.roleResolver.RoleExists(ctx, roleSlug, domain.RoleScopeWorkspace)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewValidationFailedError("unknown role: " + roleSlug)
	}

	membership, err := s.membershipRepo.FindMembership(ctx, workspaceID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !membership.IsActive() {
		return nil, apperrors.ErrNotFound
	}

	if err := s.membershipRepo.UpdateMembershipRoles(ctx, workspaceID, targetUserID, []string{roleSlug}); err != nil {
		s.LogError(ctx, err, "Failed to update member role",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}

	return s.membershipRepo.FindMembership(ctx, workspaceID, targetUserID)
}

// RemoveMember soft-removes the member. Removing an already-removed member
// is a no-op; removing the owner fails with ErrInvalidOperation.
func (s *membershipService) RemoveMember(ctx context.Context, workspaceID, targetUserID string, requestingUserID string) error {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, workspace, requestingUserID, domain.ActionManageMembers); err != nil {
		return err
	}

	if workspace.IsOwnedBy(targetUserID) {
		s.LogWarn(ctx, "Attempt to remove workspace owner",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return apperrors.ErrInvalidOperation
	}

	if err := s.membershipRepo.MarkMembershipRemoved(ctx, workspaceID, targetUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to remove member",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return err
	}

	s.LogInfo(ctx, "Member removed from workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID))
	return nil
}
