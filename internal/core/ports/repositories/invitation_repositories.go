package repositories

import (
	"context"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// InvitationReader defines read operations for invitation data
type InvitationReader interface {
	// FindInvitationByID retrieves a specific invitation by its ID.
	FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error)

	// FindPendingInvitation retrieves the pending invitation for
	// (workspace, email), if any.
	FindPendingInvitation(ctx context.Context, workspaceID, email string) (*domain.Invitation, error)

	// ListInvitationsByWorkspaceID retrieves a page of the workspace's
	// invitations, newest first, using token-based pagination. It returns
	// the invitations and a token for the next page.
	ListInvitationsByWorkspaceID(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Invitation, *string, error)
}

// InvitationWriter defines mutations of invitation rows.
type InvitationWriter interface {
	// UpsertPendingInvitation inserts a pending invitation, or supersedes an
	// existing pending one for the same (workspace, email): role and expiry
	// are replaced on the surviving row. Backed by a partial unique index so
	// concurrent invites collapse into a single pending row.
	UpsertPendingInvitation(ctx context.Context, invitation domain.Invitation) (*domain.Invitation, error)

	// MarkAccepted atomically resolves the invitation and creates or
	// reactivates the membership in a single transaction. Returns
	// ErrAlreadyResolved if a concurrent responder won the race.
	MarkAccepted(ctx context.Context, invitationID string, acceptedAt time.Time, membership domain.Membership) (*domain.Membership, error)

	// MarkDeclined resolves the invitation with declined_at set. Returns
	// ErrAlreadyResolved if the invitation was resolved concurrently.
	MarkDeclined(ctx context.Context, invitationID string, declinedAt time.Time) error

	// DeleteInvitation removes an invitation outright (revocation).
	DeleteInvitation(ctx context.Context, invitationID string) error
}

// InvitationRepositoryFacade combines all invitation repository interfaces
type InvitationRepositoryFacade interface {
	InvitationReader
	InvitationWriter
}
