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

// invitationService implements the InvitationSvcFacade interface: the state
// machine pending → accepted | declined, with lazy expiry and pre-resolution
// revocation. Acceptance and the resulting membership write happen in one
// repository transaction, so a failure on either side leaves the invitation
// unresolved.
type invitationService struct {
	BaseService
	invitationRepo portsrepo.InvitationRepositoryFacade
	workspaceRepo  portsrepo.WorkspaceReader
	userRepo       portsrepo.UserReader
	roleResolver   portssvc.RoleResolverSvc
	authorizer     portssvc.AuthorizationSvcFacade
}

// NewInvitationService creates a new invitation service with the provided
// dependencies.
func NewInvitationService(
	invitationRepo portsrepo.InvitationRepositoryFacade,
	workspaceRepo portsrepo.WorkspaceReader,
	userRepo portsrepo.UserReader,
	roleResolver portssvc.RoleResolverSvc,
	authorizer portssvc.AuthorizationSvcFacade,
) portssvc.InvitationSvcFacade {
	return &invitationService{
		invitationRepo: invitationRepo,
		workspaceRepo:  workspaceRepo,
		userRepo:       userRepo,
		roleResolver:   roleResolver,
		authorizer:     authorizer,
	}
}

var _ portssvc.InvitationSvcFacade = (*invitationService)(nil)

func (s *invitationService) requireWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
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

func (s *invitationService) authorizeManage(ctx context.Context, workspace *domain.Workspace, requestingUserID string) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	return s.authorizer.Authorize(ctx, requester, workspace, domain.ActionManageInvitations)
}

// ListInvitations retrieves a page of the workspace's invitations, newest
// first.
func (s *invitationService) ListInvitations(ctx context.Context, workspaceID string, limit int, nextToken *string, requestingUserID string) ([]domain.Invitation, *string, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizeManage(ctx, workspace, requestingUserID); err != nil {
		return nil, nil, err
	}

	invitations, newToken, err := s.invitationRepo.ListInvitationsByWorkspaceID(ctx, workspaceID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invitations",
			slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}
	if invitations == nil {
		invitations = []domain.Invitation{}
	}
	return invitations, newToken, nil
}

// Invite creates a pending invitation for the normalized email. A pending
// invitation for the same (workspace, email) pair is superseded in place:
// its role and expiry are replaced rather than a second row appearing.
func (s *invitationService) Invite(ctx context.Context, workspaceID, email string, roleSlug *string, expiresAt *time.Time, requestingUserID string) (*domain.Invitation, error) {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(ctx, workspace, requestingUserID); err != nil {
		return nil, err
	}

	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, apperrors.NewValidationFailedError("invitee email must not be empty")
	}

	if roleSlug != nil && *roleSlug != "" {
		exists, err := s.roleResolver.RoleExists(ctx, *roleSlug, domain.RoleScopeWorkspace)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationFailedError("unknown role: " + *roleSlug)
		}
	} else {
		roleSlug = nil
	}

	now := time.Now()
	invitation, err := s.invitationRepo.UpsertPendingInvitation(ctx, domain.Invitation{
		InvitationID: uuid.NewString(),
		WorkspaceID:  workspaceID,
		Email:        normalized,
		RoleSlug:     roleSlug,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invitation",
			slog.String("workspace_id", workspaceID),
			slog.String("email", normalized))
		return nil, err
	}

	s.LogInfo(ctx, "Invitation created",
		slog.String("workspace_id", workspaceID),
		slog.String("invitation_id", invitation.InvitationID))
	return invitation, nil
}

// Accept resolves the invitation for the responding user, creating or
// reactivating their membership in the same transaction. Expiry is checked
// here, lazily; an expired invitation fails with ErrExpired but stays in the
// store until revoked.
func (s *invitationService) Accept(ctx context.Context, invitationID string, respondingUser *domain.User) (*domain.Membership, error) {
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if respondingUser == nil || !invitation.EmailMatches(respondingUser.Email) {
		return nil, apperrors.ErrForbidden
	}
	if invitation.IsResolved() {
		return nil, apperrors.ErrAlreadyResolved
	}
	now := time.Now()
	if invitation.IsExpired(now) {
		return nil, apperrors.ErrExpired
	}

	workspace, err := s.requireWorkspace(ctx, invitation.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.IsOwnedBy(respondingUser.UserID) {
		// The owner is never a member row; an owner accepting their own
		// workspace's invitation is a structural error.
		return nil, apperrors.ErrInvalidOperation
	}

	var roleSlugs []string
	if invitation.RoleSlug != nil && *invitation.RoleSlug != "" {
		exists, err := s.roleResolver.RoleExists(ctx, *invitation.RoleSlug, domain.RoleScopeWorkspace)
		if err != nil {
			return nil, err
		}
		if exists {
			roleSlugs = []string{*invitation.RoleSlug}
		} else {
			// Role deleted between invite and accept: membership proceeds
			// without a grant.
			s.LogWarn(ctx, "Invitation role no longer exists, accepting without grant",
				slog.String("invitation_id", invitationID),
				slog.String("role_slug", *invitation.RoleSlug))
		}
	}

	membership, err := s.invitationRepo.MarkAccepted(ctx, invitationID, now, domain.Membership{
		MembershipID: uuid.NewString(),
		WorkspaceID:  invitation.WorkspaceID,
		UserID:       respondingUser.UserID,
		RoleSlugs:    roleSlugs,
		LastJoinedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to accept invitation",
			slog.String("invitation_id", invitationID))
		return nil, err
	}

	s.LogInfo(ctx, "Invitation accepted",
		slog.String("invitation_id", invitationID),
		slog.String("workspace_id", invitation.WorkspaceID),
		slog.String("user_id", respondingUser.UserID))
	return membership, nil
}

// Decline terminally refuses the invitation. No membership side effect.
func (s *invitationService) Decline(ctx context.Context, invitationID string, respondingUser *domain.User) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if respondingUser == nil || !invitation.EmailMatches(respondingUser.Email) {
		return nil, apperrors.ErrForbidden
	}
	if invitation.IsResolved() {
		return nil, apperrors.ErrAlreadyResolved
	}
	now := time.Now()
	if invitation.IsExpired(now) {
		return nil, apperrors.ErrExpired
	}

	if err := s.invitationRepo.MarkDeclined(ctx, invitationID, now); err != nil {
		s.LogError(ctx, err, "Failed to decline invitation",
			slog.String("invitation_id", invitationID))
		return nil, err
	}

	s.LogInfo(ctx, "Invitation declined",
		slog.String("invitation_id", invitationID))
	return s.invitationRepo.FindInvitationByID(ctx, invitationID)
}

// Revoke deletes a not-yet-resolved invitation belonging to the workspace.
func (s *invitationService) Revoke(ctx context.Context, workspaceID, invitationID string, requestingUserID string) error {
	workspace, err := s.requireWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := s.authorizeManage(ctx, workspace, requestingUserID); err != nil {
		return err
	}

	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation.WorkspaceID != workspaceID {
		// Do not reveal invitations of other workspaces.
		return apperrors.ErrNotFound
	}
	if invitation.IsResolved() {
		return apperrors.ErrAlreadyResolved
	}

	if err := s.invitationRepo.DeleteInvitation(ctx, invitationID); err != nil {
		s.LogError(ctx, err, "Failed to revoke invitation",
			slog.String("invitation_id", invitationID))
		return err
	}

	s.LogInfo(ctx, "Invitation revoked",
		slog.String("workspace_id", workspaceID),
		slog.String("invitation_id", invitationID))
	return nil
}
