package repositories

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// FindWorkspaceBySlug retrieves a workspace by its unique slug.
	FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces the user owns or is an
	// active member of, newest first.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace updates name, slug and meta of an existing workspace.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateBillingContact sets or clears the billing contact reference.
	UpdateBillingContact(ctx context.Context, workspaceID string, billingContactID *string, updatedBy string) error

	// DeleteWorkspace removes the workspace; memberships and invitations
	// cascade at the database level.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
// This is a facade for clients that need access to all operations
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
