package services

import (
	"context"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// InvitationSvcFacade drives the invitation state machine: pending →
// accepted | declined, with lazy expiry and revocation while pending.
type InvitationSvcFacade interface {
	// ListInvitations retrieves a page of the workspace's invitations,
	// newest first; requires the manage-invitations permission. Returns the
	// invitations and a token for the next page.
	ListInvitations(ctx context.Context, workspaceID string, limit int, nextToken *string, requestingUserID string) ([]domain.Invitation, *string, error)

	// Invite creates a pending invitation for the (normalized) email. A
	// pending invitation for the same address is superseded: role and expiry
	// are replaced on the existing row. The optional role slug must exist in
	// workspace scope.
	Invite(ctx context.Context, workspaceID, email string, roleSlug *string, expiresAt *time.Time, requestingUserID string) (*domain.Invitation, error)

	// Accept resolves the invitation for the responding user and creates or
	// reactivates their membership atomically. Fails with ErrForbidden on an
	// email mismatch, ErrExpired past the deadline, ErrAlreadyResolved when
	// accepted or declined before.
	Accept(ctx context.Context, invitationID string, respondingUser *domain.User) (*domain.Membership, error)

	// Decline terminally refuses the invitation; no membership side effect.
	Decline(ctx context.Context, invitationID string, respondingUser *domain.User) (*domain.Invitation, error)

	// Revoke deletes a not-yet-resolved invitation belonging to the
	// workspace.
	Revoke(ctx context.Context, workspaceID, invitationID string, requestingUserID string) error
}
