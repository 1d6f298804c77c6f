package repositories

import (
	"context"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// MembershipReader defines the membership queries. Normal listings exclude
// soft-removed rows; the including-removed variant exists for administrative
// lookups such as resolving a removed billing contact.
type MembershipReader interface {
	// FindMembership retrieves the row for (workspace, user) regardless of
	// removal state.
	FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error)

	// ListActiveMembers retrieves all non-removed memberships of the workspace.
	ListActiveMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error)

	// ListMembersIncludingRemoved retrieves every membership row of the
	// workspace, removed ones included.
	ListMembersIncludingRemoved(ctx context.Context, workspaceID string) ([]domain.Membership, error)

	// ListMembershipsPage pages through the workspace's membership rows,
	// newest first, keyed on (created_at, membership_id). Removed rows are
	// included when includeRemoved is set. Returns the page and the token
	// for the next one, nil when exhausted.
	ListMembershipsPage(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error)
}

// MembershipWriter defines mutations of the membership join table. All
// mutations are serialized per (workspace, user) pair by the database-level
// unique constraint; rows are never hard-deleted.
type MembershipWriter interface {
	// UpsertMembership inserts a new active row or reactivates an existing
	// one (clears removed_at, refreshes last_joined_at, replaces roles when
	// roleSlugs is non-nil). Returns the resulting row.
	UpsertMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error)

	// UpdateMembershipRoles replaces the role grants of an active membership.
	UpdateMembershipRoles(ctx context.Context, workspaceID, userID string, roleSlugs []string) error

	// MarkMembershipRemoved sets removed_at on the row. Idempotent: a row
	// that is already removed stays removed with its original timestamp.
	MarkMembershipRemoved(ctx context.Context, workspaceID, userID string, removedAt time.Time) error
}

// MembershipRepositoryFacade combines all membership repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}
