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

type PgxMembershipRepository struct {
	BaseRepository
}

// newPgxMembershipRepository creates a new repository for membership data.
func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMembershipRepository implements portsrepo.MembershipRepositoryFacade
var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

var FULL_MEMBERSHIP_SELECT_QUERY = `
SELECT
	m.membership_id, m.workspace_id, m.user_id, m.role_slugs,
	m.last_joined_at, m.removed_at, m.created_at, m.updated_at
FROM workspace_memberships m
`

func (r *PgxMembershipRepository) getMemberships(ctx context.Context, filterQuery string, args ...any) ([]domain.Membership, error) {
	query := FULL_MEMBERSHIP_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships", err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Membership{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}

	return memberships, nil
}

// FindMembership returns the (workspace, user) row regardless of removal state.
func (r *PgxMembershipRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
	query := `WHERE m.workspace_id = $1 AND m.user_id = $2`
	memberships, err := r.getMemberships(ctx, query, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &memberships[0], nil
}

func (r *PgxMembershipRepository) ListActiveMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	query := `
		WHERE m.workspace_id = $1 AND m.removed_at IS NULL
		ORDER BY m.last_joined_at DESC;
	`
	return r.getMemberships(ctx, query, workspaceID)
}

func (r *PgxMembershipRepository) ListMembersIncludingRemoved(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	query := `
		WHERE m.workspace_id = $1
		ORDER BY m.last_joined_at DESC;
	`
	return r.getMemberships(ctx, query, workspaceID)
}

// ListMembershipsPage pages through the workspace's membership rows newest
// first, keyed on (created_at, membership_id).
func (r *PgxMembershipRepository) ListMembershipsPage(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	filter := `WHERE m.workspace_id = $1`
	args := []any{workspaceID}

	if !includeRemoved {
		filter += ` AND m.removed_at IS NULL`
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		filter += fmt.Sprintf(` AND (m.created_at, m.membership_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, lastCreatedAt, lastID)
	}

	// Fetch one extra row to know whether another page exists.
	filter += ` ORDER BY m.created_at DESC, m.membership_id DESC LIMIT ` + fmt.Sprintf("$%d", len(args)+1) + `;`
	args = append(args, limit+1)

	memberships, err := r.getMemberships(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var newToken *string
	if len(memberships) > limit {
		memberships = memberships[:limit]
		last := memberships[len(memberships)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MembershipID)
		newToken = &token
	}
	return memberships, newToken, nil
}

// UpsertMembership inserts an active membership or reactivates the existing
// row for the pair: removed_at is cleared and last_joined_at refreshed. The
// original membership_id and created_at survive reactivation. A nil RoleSlugs
// reaches the server as NULL, meaning "no roles supplied": fresh inserts
// coalesce it to an empty array and reactivation keeps the prior grants
// instead of wiping them.
func (r *PgxMembershipRepository) UpsertMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
	query := `
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
	rows, err := r.Pool.Query(ctx, query,
		membership.MembershipID,
		membership.WorkspaceID,
		membership.UserID,
		membership.RoleSlugs,
		membership.LastJoinedAt,
		membership.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert membership", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect upserted membership row", err)
	}
	return &saved, nil
}

// UpdateMembershipRoles replaces the role grants of an active membership.
func (r *PgxMembershipRepository) UpdateMembershipRoles(ctx context.Context, workspaceID, userID string, roleSlugs []string) error {
	query := `
		UPDATE workspace_memberships
		SET role_slugs = $1, updated_at = NOW()
		WHERE workspace_id = $2 AND user_id = $3 AND removed_at IS NULL;
	`
	result, err := r.Pool.Exec(ctx, query, roleSlugs, workspaceID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update membership roles", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkMembershipRemoved soft-removes the member. Removing an already removed
// member is a no-op so the original removal timestamp is preserved.
func (r *PgxMembershipRepository) MarkMembershipRemoved(ctx context.Context, workspaceID, userID string, removedAt time.Time) error {
	query := `
		UPDATE workspace_memberships
		SET removed_at = $1, updated_at = $1
		WHERE workspace_id = $2 AND user_id = $3 AND removed_at IS NULL;
	`
	_, err := r.Pool.Exec(ctx, query, removedAt, workspaceID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark membership removed", err)
	}
	return nil
}
