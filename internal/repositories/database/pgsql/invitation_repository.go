package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	"github.com/bhhaskin/workspaces_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvitationRepository struct {
	BaseRepository
}

// newPgxInvitationRepository creates a new repository for invitation data.
func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvitationRepository implements portsrepo.InvitationRepositoryFacade
var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

var FULL_INVITATION_SELECT_QUERY = `
SELECT
	i.invitation_id, i.workspace_id, i.email, i.role_slug,
	i.expires_at, i.accepted_at, i.declined_at, i.created_at, i.updated_at
FROM workspace_invitations i
`

func (r *PgxInvitationRepository) getInvitations(ctx context.Context, filterQuery string, args ...any) ([]domain.Invitation, error) {
	query := FULL_INVITATION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invitations", err)
	}
	defer rows.Close()
	invitations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Invitation{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invitation rows", err)
	}

	return invitations, nil
}

func (r *PgxInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	query := `WHERE i.invitation_id = $1`
	invitations, err := r.getInvitations(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	if len(invitations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invitations[0], nil
}

// FindPendingInvitation returns the unresolved invitation for the pair, if
// any. Expiry is not considered here; it is evaluated at respond time.
func (r *PgxInvitationRepository) FindPendingInvitation(ctx context.Context, workspaceID, email string) (*domain.Invitation, error) {
	query := `WHERE i.workspace_id = $1 AND i.email = $2 AND i.accepted_at IS NULL AND i.declined_at IS NULL`
	invitations, err := r.getInvitations(ctx, query, workspaceID, email)
	if err != nil {
		return nil, err
	}
	if len(invitations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invitations[0], nil
}

// ListInvitationsByWorkspaceID pages through the workspace's invitations
// newest first, keyed on (created_at, invitation_id).
func (r *PgxInvitationRepository) ListInvitationsByWorkspaceID(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Invitation, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	filter := `WHERE i.workspace_id = $1`
	args := []any{workspaceID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		filter += ` AND (i.created_at, i.invitation_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}

	// Fetch one extra row to know whether another page exists.
	filter += ` ORDER BY i.created_at DESC, i.invitation_id DESC LIMIT ` + fmt.Sprintf("$%d", len(args)+1) + `;`
	args = append(args, limit+1)

	invitations, err := r.getInvitations(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var newToken *string
	if len(invitations) > limit {
		invitations = invitations[:limit]
		last := invitations[len(invitations)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvitationID)
		newToken = &token
	}
	return invitations, newToken, nil
}

// UpsertPendingInvitation inserts a pending invitation or supersedes the
// existing pending row for (workspace, email). The conflict target is the
// partial unique index over unresolved rows, so resolved invitations never
// block a new invite.
func (r *PgxInvitationRepository) UpsertPendingInvitation(ctx context.Context, invitation domain.Invitation) (*domain.Invitation, error) {
	query := `
		INSERT INTO workspace_invitations (
			invitation_id, workspace_id, email, role_slug,
			expires_at, accepted_at, declined_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL, $6, $6)
		ON CONFLICT (workspace_id, email) WHERE accepted_at IS NULL AND declined_at IS NULL
		DO UPDATE SET
			role_slug = EXCLUDED.role_slug,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		RETURNING invitation_id, workspace_id, email, role_slug,
			expires_at, accepted_at, declined_at, created_at, updated_at;
	`
	rows, err := r.Pool.Query(ctx, query,
		invitation.InvitationID,
		invitation.WorkspaceID,
		invitation.Email,
		invitation.RoleSlug,
		invitation.ExpiresAt,
		invitation.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert invitation", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect upserted invitation row", err)
	}
	return &saved, nil
}

// MarkAccepted resolves the invitation and creates or reactivates the
// membership in one transaction. The conditional UPDATE serializes racing
// responders: whoever loses sees zero rows affected and gets
// ErrAlreadyResolved.
func (r *PgxInvitationRepository) MarkAccepted(ctx context.Context, invitationID string, acceptedAt time.Time, membership domain.Membership) (*domain.Membership, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	resolveQuery := `
		UPDATE workspace_invitations
		SET accepted_at = $1, updated_at = $1
		WHERE invitation_id = $2 AND accepted_at IS NULL AND declined_at IS NULL;
	`
	result, err := tx.Exec(ctx, resolveQuery, acceptedAt, invitationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to resolve invitation "+invitationID, err)
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrAlreadyResolved
	}

	// Same role_slugs convention as the membership upsert: NULL means no
	// roles were supplied, so fresh inserts get an empty array and an
	// existing row keeps its grants.
	upsertQuery := `
		INSERT INTO workspace_memberships (
			membership_id, workspace_id, user_id, role_slugs,
			last_joined_at, removed_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, COALESCE($4::TEXT[], '{}'), $5, NULL, $6, $6)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET
			role_slugs = COALESCE($4::TEXT[], workspace_memberships.role_slugs),
			last_joined_at = EXCLUDED.last_joined_at,
			removed_at = NULL,
			updated_at = EXCLUDED.updated_at
		RETURNING membership_id, workspace_id, user_id, role_slugs,
			last_joined_at, removed_at, created_at, updated_at;
	`
	rows, err := tx.Query(ctx, upsertQuery,
		membership.MembershipID,
		membership.WorkspaceID,
		membership.UserID,
		membership.RoleSlugs,
		membership.LastJoinedAt,
		membership.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert membership for invitation "+invitationID, err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect membership row for invitation "+invitationID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &saved, nil
}

// MarkDeclined resolves the invitation with declined_at set.
func (r *PgxInvitationRepository) MarkDeclined(ctx context.Context, invitationID string, declinedAt time.Time) error {
	query := `
		UPDATE workspace_invitations
		SET declined_at = $1, updated_at = $1
		WHERE invitation_id = $2 AND accepted_at IS NULL AND declined_at IS NULL;
	`
	result, err := r.Pool.Exec(ctx, query, declinedAt, invitationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decline invitation "+invitationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyResolved
	}
	return nil
}

// DeleteInvitation removes an invitation outright.
func (r *PgxInvitationRepository) DeleteInvitation(ctx context.Context, invitationID string) error {
	query := `DELETE FROM workspace_invitations WHERE invitation_id = $1;`
	result, err := r.Pool.Exec(ctx, query, invitationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invitation "+invitationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
