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
	"github.com/bhhaskin/workspaces_app/internal/dto"
	"github.com/google/uuid"
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo  portsrepo.WorkspaceRepositoryFacade
	membershipRepo portsrepo.MembershipReader
	userRepo       portsrepo.UserReader
	authorizer     portssvc.AuthorizationSvcFacade
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	membershipRepo portsrepo.MembershipReader,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizationSvcFacade,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo:  workspaceRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		authorizer:     authorizer,
	}
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

func (s *workspaceService) requirePrincipal(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return user, nil
}

// GetWorkspaceByID retrieves a workspace, enforcing the view permission.
func (s *workspaceService) GetWorkspaceByID(ctx context.Context, workspaceID string, requestingUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace by ID",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	requester, err := s.requirePrincipal(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, requester, workspace, domain.ActionView); err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Workspace retrieved successfully",
		slog.String("workspace_id", workspace.WorkspaceID))
	return workspace, nil
}

// ListUserWorkspaces retrieves all workspaces the user owns or is an active
// member of.
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if workspaces == nil {
		return []domain.Workspace{}, nil
	}

	s.LogDebug(ctx, "Workspaces listed successfully",
		slog.Int("count", len(workspaces)),
		slog.String("user_id", userID))
	return workspaces, nil
}

// CreateWorkspace persists a new workspace with the creator as owner. The
// owner holds every permission implicitly and never appears as a member row.
func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	creator, err := s.requirePrincipal(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, creator, nil, domain.ActionCreate); err != nil {
		return nil, err
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Meta:        req.Meta,
		OwnerID:     creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID))
	return &workspace, nil
}

// UpdateWorkspace applies a partial update, restricted to the owner or
// holders of an update grant.
func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	requester, err := s.requirePrincipal(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, requester, workspace, domain.ActionUpdate); err != nil {
		return nil, err
	}

	if req.Name != nil {
		workspace.Name = *req.Name
	}
	if req.Slug != nil {
		workspace.Slug = req.Slug
	}
	if req.Meta != nil {
		workspace.Meta = *req.Meta
	}
	workspace.LastUpdatedAt = time.Now()
	workspace.LastUpdatedBy = requestingUserID

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		s.LogError(ctx, err, "Failed to update workspace",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

// DeleteWorkspace removes the workspace. Owner-only: no role grant ever
// confers deletion. Memberships and invitations cascade in the store.
func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	requester, err := s.requirePrincipal(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(ctx, requester, workspace, domain.ActionDelete); err != nil {
		return err
	}

	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace",
			slog.String("workspace_id", workspaceID))
		return err
	}

	s.LogInfo(ctx, "Workspace deleted",
		slog.String("workspace_id", workspaceID),
		slog.String("requesting_user_id", requestingUserID))
	return nil
}

// IsMember reports whether the user is an active member of the workspace.
// The owner is not a member row and reports false here; callers interested
// in the owner check the workspace's owner reference.
func (s *workspaceService) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	membership, err := s.membershipRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.IsActive(), nil
}

// BillingContact resolves the billable party for the workspace: the
// designated contact while still an active member, otherwise the owner.
func (s *workspaceService) BillingContact(ctx context.Context, workspaceID string) (*domain.User, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if workspace.BillingContactID != nil {
		active, err := s.IsMember(ctx, workspaceID, *workspace.BillingContactID)
		if err != nil {
			return nil, err
		}
		if active {
			contact, err := s.userRepo.FindUserByID(ctx, *workspace.BillingContactID)
			if err == nil {
				return contact, nil
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		}
	}

	return s.userRepo.FindUserByID(ctx, workspace.OwnerID)
}

// SetBillingContact designates a member as the billable party. The user must
// be an active member; nil clears the designation so billing falls back to
// the owner.
func (s *workspaceService) SetBillingContact(ctx context.Context, workspaceID string, userID *string, requestingUserID string) error {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	requester, err := s.requirePrincipal(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(ctx, requester, workspace, domain.ActionUpdate); err != nil {
		return err
	}

	if userID != nil {
		active, err := s.IsMember(ctx, workspaceID, *userID)
		if err != nil {
			return err
		}
		if !active {
			return apperrors.ErrInvalidOperation
		}
	}

	if err := s.workspaceRepo.UpdateBillingContact(ctx, workspaceID, userID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to set billing contact",
			slog.String("workspace_id", workspaceID))
		return err
	}

	return nil
}
