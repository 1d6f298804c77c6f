package services

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/bhhaskin/workspaces_app/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// GetWorkspaceByID retrieves a workspace, enforcing the view permission
	// for the requesting user.
	GetWorkspaceByID(ctx context.Context, workspaceID string, requestingUserID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces the user owns or is an active
	// member of.
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace with the creator as owner.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// UpdateWorkspace applies a partial update; restricted to the owner or
	// holders of an update grant.
	UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error)

	// DeleteWorkspace removes the workspace and cascades memberships and
	// invitations; owner-only.
	DeleteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error
}

// WorkspaceBillingSvc exposes the only hooks an external billing subsystem
// needs: the billable party and the membership check.
type WorkspaceBillingSvc interface {
	// BillingContact resolves the billing contact for the workspace; returns
	// the contact when still an active member, otherwise the owner.
	BillingContact(ctx context.Context, workspaceID string) (*domain.User, error)

	// SetBillingContact designates a member as the billable party, or clears
	// the designation when userID is nil.
	SetBillingContact(ctx context.Context, workspaceID string, userID *string, requestingUserID string) error

	// IsMember reports whether the user is an active member of the workspace.
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
// This is a facade for clients that need access to all operations
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceBillingSvc
}
