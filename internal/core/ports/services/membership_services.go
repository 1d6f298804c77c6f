package services

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// MembershipReaderSvc defines the membership queries.
type MembershipReaderSvc interface {
	// ListActiveMembers retrieves the non-removed members of a workspace;
	// requires the view-members permission.
	ListActiveMembers(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.Membership, error)

	// ListMembersIncludingRemoved retrieves every membership row of the
	// workspace, removed ones included; requires the manage-members permission.
	ListMembersIncludingRemoved(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.Membership, error)

	// ListMembersPage pages through the workspace's membership rows, newest
	// first. Removed rows are included when includeRemoved is set, which
	// requires the manage-members permission; active-only listing requires
	// view-members.
	ListMembersPage(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string, requestingUserID string) ([]domain.Membership, *string, error)

	// GetMembership retrieves the row for (workspace, user) regardless of
	// removal state.
	GetMembership(ctx context.Context, workspaceID, userID string, requestingUserID string) (*domain.Membership, error)
}

// MembershipWriterSvc defines the membership mutations. The workspace owner
// is never a membership row: adding or removing the owner fails with
// ErrInvalidOperation.
type MembershipWriterSvc interface {
	// AddMember adds the user to the workspace, reactivating a previously
	// removed row when one exists. An optional role slug is granted within
	// workspace scope.
	AddMember(ctx context.Context, workspaceID, targetUserID string, roleSlug *string, requestingUserID string) (*domain.Membership, error)

	// UpdateMemberRole replaces the role grants of an active member.
	UpdateMemberRole(ctx context.Context, workspaceID, targetUserID, roleSlug string, requestingUserID string) (*domain.Membership, error)

	// RemoveMember soft-removes the member; idempotent when already removed.
	RemoveMember(ctx context.Context, workspaceID, targetUserID string, requestingUserID string) error
}

// MembershipSvcFacade combines all membership-related service interfaces
type MembershipSvcFacade interface {
	MembershipReaderSvc
	MembershipWriterSvc
}
